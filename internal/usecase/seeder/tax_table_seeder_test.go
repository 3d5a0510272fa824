package seeder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/simaogato/yieldcompare-backend/internal/domain"
)

// MockTaxTableRepository is a mock implementation of TaxTableRepository
type MockTaxTableRepository struct {
	mock.Mock
}

func (m *MockTaxTableRepository) Load(ctx context.Context) (*domain.TaxTables, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxTables), args.Error(1)
}

func (m *MockTaxTableRepository) Save(ctx context.Context, tables *domain.TaxTables) error {
	args := m.Called(ctx, tables)
	return args.Error(0)
}

func TestTaxTableSeeder_Seed_TablesMissing(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTaxTableRepository)
	defaults := domain.DefaultTaxTables()
	seeder := NewTaxTableSeeder(mockRepo, defaults)

	mockRepo.On("Load", ctx).Return(nil, domain.ErrTaxTablesNotFound)
	mockRepo.On("Save", ctx, defaults).Return(nil)

	tables, err := seeder.Seed(ctx)

	assert.NoError(t, err)
	assert.Same(t, defaults, tables)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestTaxTableSeeder_Seed_TablesExist(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTaxTableRepository)
	seeder := NewTaxTableSeeder(mockRepo, domain.DefaultTaxTables())

	stored, err := domain.NewTaxTables(
		[]domain.FederalBracket{{Label: "22%", Rate: 22}},
		nil,
	)
	assert.NoError(t, err)
	mockRepo.On("Load", ctx).Return(stored, nil)

	tables, err := seeder.Seed(ctx)

	assert.NoError(t, err)
	assert.Same(t, stored, tables)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTaxTableSeeder_Seed_LoadFails(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTaxTableRepository)
	seeder := NewTaxTableSeeder(mockRepo, domain.DefaultTaxTables())

	mockRepo.On("Load", ctx).Return(nil, errors.New("permission denied"))

	tables, err := seeder.Seed(ctx)

	assert.Nil(t, tables)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load tax tables")
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTaxTableSeeder_Seed_SaveFails(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTaxTableRepository)
	seeder := NewTaxTableSeeder(mockRepo, domain.DefaultTaxTables())

	mockRepo.On("Load", ctx).Return(nil, domain.ErrTaxTablesNotFound)
	mockRepo.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

	tables, err := seeder.Seed(ctx)

	assert.Nil(t, tables)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to seed tax tables")
	mockRepo.AssertExpectations(t)
}
