// Package tui is the interactive simulation form.
package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rustyeddy/tradesim/input"
	"github.com/rustyeddy/tradesim/pkg/id"
	"github.com/rustyeddy/tradesim/sim"
)

// Form fields, in display order.
const (
	FieldStartBalance = iota
	FieldWinRate
	FieldTakeProfit
	FieldStopLoss
	FieldTradeCount
	FieldLimitFee
	FieldMarketFee

	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Starting Balance USD",
	"Win Rate %",
	"Take Profit %",
	"Stop Loss %",
	"Number of Trades",
	"Limit Order Fee %",
	"Market Order Fee %",
}

// RecordFunc receives every finished simulation.
type RecordFunc func(p sim.Params, seed int64, trades []sim.Trade) error

// Options configures a Model.
type Options struct {
	Params sim.Params

	// Seed for the first run; later runs use Seed+1, Seed+2 and so on.
	// Zero draws a fresh seed for every run.
	Seed int64

	Record RecordFunc
}

// Model is the Bubble Tea model for the simulation form.
type Model struct {
	inputs []textinput.Model
	focus  int

	seed   int64
	runs   int
	record RecordFunc

	params  sim.Params
	trades  []sim.Trade
	lastRun int64
	ran     bool
	err     error

	width int
}

// NewModel creates a form filled with opts.Params.
func NewModel(opts Options) Model {
	p := opts.Params
	values := [fieldCount]string{
		formatNumber(p.StartBalance),
		formatNumber(p.WinRate),
		formatNumber(p.TakeProfit),
		formatNumber(p.StopLoss),
		strconv.Itoa(p.TradeCount),
		formatNumber(p.LimitOrderFeeRate),
		formatNumber(p.MarketOrderFeeRate),
	}

	m := Model{
		inputs: make([]textinput.Model, fieldCount),
		seed:   opts.Seed,
		record: opts.Record,
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 12
		ti.CharLimit = 16
		if i == FieldWinRate {
			ti.CharLimit = input.PercentMaxLength
		}
		ti.SetValue(values[i])
		ti.CursorEnd()
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "tab", "down":
			return m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m.setFocus(m.focus - 1)
		case "enter":
			m.run()
			return m, nil
		}
		if msg.Type == tea.KeyRunes && !numeric(msg.Runes) {
			return m, nil
		}
		return m.updateFocused(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) setFocus(i int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = (i + fieldCount) % fieldCount
	return m, m.inputs[m.focus].Focus()
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	prev := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if m.focus == FieldWinRate {
		v := m.inputs[m.focus].Value()
		if v != prev {
			n, ok := input.NormalizePercentage(input.Truncate(v, input.PercentMaxLength))
			if !ok {
				n = prev
			}
			if n != v {
				m.inputs[m.focus].SetValue(n)
				m.inputs[m.focus].CursorEnd()
			}
		}
	}
	return m, cmd
}

// Params reads the current form values.
func (m Model) Params() sim.Params {
	v := func(i int) float64 { return input.ParseNumber(m.inputs[i].Value()) }
	return sim.Params{
		StartBalance:       v(FieldStartBalance),
		WinRate:            input.ApplyPercentageEdit(m.inputs[FieldWinRate].Value()),
		TakeProfit:         v(FieldTakeProfit),
		StopLoss:           v(FieldStopLoss),
		TradeCount:         int(v(FieldTradeCount)),
		LimitOrderFeeRate:  v(FieldLimitFee),
		MarketOrderFeeRate: v(FieldMarketFee),
	}
}

// Trades returns the result of the last run.
func (m Model) Trades() []sim.Trade {
	return m.trades
}

// LastSeed is the seed of the last run.
func (m Model) LastSeed() int64 {
	return m.lastRun
}

// run simulates the form values. A trade count of zero or less does nothing:
// the previous result stays, no seed is used and nothing is recorded.
func (m *Model) run() {
	p := m.Params()
	if p.TradeCount <= 0 {
		return
	}

	seed := m.seed + int64(m.runs)
	if m.seed == 0 {
		seed = id.Seed()
	}
	m.runs++

	m.params = p
	m.trades = sim.Run(m.params, seed)
	m.lastRun = seed
	m.ran = true
	m.err = nil

	if m.record != nil {
		m.err = m.record(m.params, seed, m.trades)
	}
}

func numeric(rs []rune) bool {
	for _, r := range rs {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
