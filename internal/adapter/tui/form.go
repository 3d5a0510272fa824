// Package tui is the interactive terminal front end for a single comparison.
//
// The form mirrors the comparison inputs: two yield fields that step by
// domain.YieldStepPct, three selects fed by the active tax tables and a
// Calculate button. Only pressing the button calls the service.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/simaogato/yieldcompare-backend/internal/domain"
	"github.com/simaogato/yieldcompare-backend/internal/usecase/report"
)

const (
	defaultTreasuryYield = "5.0"
	defaultCDYield       = "6.0"
)

// Comparer is the part of the comparison service the form needs
type Comparer interface {
	Compare(ctx context.Context, input domain.CalculationInput) (*domain.Comparison, error)
	Options() domain.FormOptions
}

type focusTarget int

const (
	focusTreasury focusTarget = iota
	focusCD
	focusFederal
	focusState
	focusIncome
	focusCalculate
	focusCount
)

type selectField struct {
	label   string
	options []string
	index   int
}

func (s *selectField) value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.index]
}

func (s *selectField) move(delta int) {
	n := len(s.options)
	if n == 0 {
		return
	}
	s.index = ((s.index+delta)%n + n) % n
}

// resultMsg carries the outcome of one Calculate press back into Update
type resultMsg struct {
	comparison *domain.Comparison
	err        error
}

// Model is the bubbletea model of the comparison form
type Model struct {
	service Comparer

	treasury textinput.Model
	cd       textinput.Model
	federal  selectField
	state    selectField
	income   selectField

	focus       focusTarget
	calculating bool
	report      *report.Report
	errMsg      string
	styles      styles
}

// NewModel builds the form with its defaults: 5.0% Treasury, 6.0% CD
// and the first entry of every select.
func NewModel(service Comparer) Model {
	options := service.Options()

	incomeBrackets := make([]string, 0, len(options.IncomeBrackets))
	for _, b := range options.IncomeBrackets {
		incomeBrackets = append(incomeBrackets, string(b))
	}

	m := Model{
		service:  service,
		treasury: newYieldInput(defaultTreasuryYield),
		cd:       newYieldInput(defaultCDYield),
		federal:  selectField{label: "Federal Tax Bracket", options: options.FederalBrackets},
		state:    selectField{label: "State", options: options.States},
		income:   selectField{label: "Income Level", options: incomeBrackets},
		styles:   defaultStyles(),
	}
	m.treasury.Focus()
	return m
}

func newYieldInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = 8
	ti.CharLimit = 6
	ti.SetValue(value)
	return ti
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.calculating = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.report = nil
			return m, nil
		}
		r := report.New(msg.comparison.Result)
		m.report = &r
		m.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			m.setFocus((m.focus + 1) % focusCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + focusCount - 1) % focusCount)
			return m, nil
		case "left", "right":
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.adjust(delta)
			return m, nil
		case "enter":
			if m.focus == focusCalculate {
				return m.calculate()
			}
			m.setFocus(m.focus + 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusTreasury:
		m.treasury, cmd = m.treasury.Update(msg)
	case focusCD:
		m.cd, cmd = m.cd.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(target focusTarget) {
	m.focus = target
	m.treasury.Blur()
	m.cd.Blur()
	switch target {
	case focusTreasury:
		m.treasury.Focus()
	case focusCD:
		m.cd.Focus()
	}
}

// adjust steps the focused yield by one increment or cycles the focused select
func (m *Model) adjust(delta int) {
	switch m.focus {
	case focusTreasury:
		m.treasury.SetValue(stepYield(m.treasury.Value(), delta))
	case focusCD:
		m.cd.SetValue(stepYield(m.cd.Value(), delta))
	case focusFederal:
		m.federal.move(delta)
	case focusState:
		m.state.move(delta)
	case focusIncome:
		m.income.move(delta)
	}
}

// calculate validates the typed yields and returns the single command that runs the comparison
func (m Model) calculate() (tea.Model, tea.Cmd) {
	if m.calculating {
		return m, nil
	}

	treasury, err := parseYield(m.treasury.Value())
	if err != nil {
		m.errMsg = fmt.Sprintf("Treasury Yield: %v", err)
		return m, nil
	}
	cd, err := parseYield(m.cd.Value())
	if err != nil {
		m.errMsg = fmt.Sprintf("CD Yield: %v", err)
		return m, nil
	}

	input := domain.CalculationInput{
		TreasuryYieldPct: treasury,
		CDYieldPct:       cd,
		FederalBracket:   m.federal.value(),
		State:            m.state.value(),
		IncomeBracket:    domain.IncomeBracket(m.income.value()),
	}

	m.calculating = true
	service := m.service
	return m, func() tea.Msg {
		cmp, err := service.Compare(context.Background(), input)
		return resultMsg{comparison: cmp, err: err}
	}
}

func parseYield(value string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", value)
	}
	return d.InexactFloat64(), nil
}

// stepYield moves value by delta increments, clamped to the allowed range.
// Unparseable input restarts from the minimum.
func stepYield(value string, delta int) string {
	minYield := decimal.NewFromFloat(domain.MinYieldPct)
	maxYield := decimal.NewFromFloat(domain.MaxYieldPct)

	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		d = minYield
	}

	d = d.Add(decimal.NewFromFloat(domain.YieldStepPct).Mul(decimal.NewFromInt(int64(delta))))
	if d.LessThan(minYield) {
		d = minYield
	}
	if d.GreaterThan(maxYield) {
		d = maxYield
	}

	places := -d.Exponent()
	if places < 1 {
		places = 1
	}
	return d.StringFixed(places)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("CD vs Treasury Cost-Benefit Analysis"))
	b.WriteString("\n")

	m.writeField(&b, "Treasury Yield (%)", m.treasury.View(), focusTreasury)
	m.writeField(&b, "CD Yield (%)", m.cd.View(), focusCD)
	m.writeField(&b, m.federal.label, m.selectView(&m.federal, focusFederal), focusFederal)
	m.writeField(&b, m.state.label, m.selectView(&m.state, focusState), focusState)
	m.writeField(&b, m.income.label, m.selectView(&m.income, focusIncome), focusIncome)

	button := m.styles.button
	if m.focus == focusCalculate {
		button = m.styles.focusedButton
	}
	b.WriteString(button.Render("Calculate"))
	b.WriteString("\n")

	if m.calculating {
		b.WriteString("\nCalculating...\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.err.Render("⚠ " + m.errMsg))
		b.WriteString("\n")
	}

	if m.report != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.heading.Render("Results"))
		b.WriteString("\n")
		for _, line := range m.report.Figures {
			b.WriteString(line.String())
			b.WriteString("\n")
		}
		b.WriteString(m.styles.recommendation.Render(m.report.Recommendation.String()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("tab/↑↓ move • ←/→ adjust • enter calculate • esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) writeField(b *strings.Builder, label, value string, target focusTarget) {
	style := m.styles.field
	if m.focus == target {
		style = m.styles.focusedField
	}
	b.WriteString(m.styles.label.Render(label))
	b.WriteString("\n")
	b.WriteString(style.Render(value))
	b.WriteString("\n")
}

func (m Model) selectView(s *selectField, target focusTarget) string {
	if m.focus == target {
		return "◀ " + s.value() + " ▶"
	}
	return s.value()
}

// Run starts the form on the terminal and blocks until the user quits
func Run(ctx context.Context, service Comparer) error {
	p := tea.NewProgram(NewModel(service), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run terminal form: %w", err)
	}
	return nil
}
