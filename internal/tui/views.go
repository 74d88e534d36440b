package tui

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradesim/report"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Trade Simulator"))
	b.WriteString("\n\n")

	for i, ti := range m.inputs {
		cursor := "  "
		label := LabelStyle.Render(fieldLabels[i])
		if i == m.focus {
			cursor = FocusedStyle.Render("> ")
			label = FocusedStyle.Inherit(LabelStyle).Render(fieldLabels[i])
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, label, ti.View())
	}

	b.WriteString("\n")
	b.WriteString("[ Run Strategy ]")
	if headline := report.Headline(m.trades, m.params.StartBalance); headline != "" {
		style := LossStyle
		if strings.HasPrefix(headline, "+") {
			style = ProfitStyle
		}
		b.WriteString("   ")
		b.WriteString(style.Render(headline))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	if m.ran {
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render(fmt.Sprintf("seed %d", m.lastRun)))
		b.WriteString("\n\n")
		report.PrintTrades(&b, m.trades, report.Options{Color: true})
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("tab/↑/↓: move • enter: run strategy • q/esc: quit"))
	b.WriteString("\n")
	return b.String()
}
