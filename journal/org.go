package journal

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

var runOrgFuncs = template.FuncMap{
	"short": shortID,
	"money": func(x float64) string { return fmt.Sprintf("%.2f", x) },
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

var runOrgTemplate = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// RunOrgTemplate renders a run as an Org-mode block. The data is a struct
// with Run (RunRecord) and Trades ([]TradeRecord).
const RunOrgTemplate = `* SIMULATION: {{short .Run.RunID}} {{if .Run.Summary.Profitable}}+{{else}}-{{end}}{{printf "%.0f" .Run.Summary.EndBalance}} USD
:PROPERTIES:
:RUN_ID:      {{.Run.RunID}}
:SEED:        {{.Run.Seed}}
:START_BAL:   {{money .Run.Params.StartBalance}}
:END_BAL:     {{money .Run.Summary.EndBalance}}
:NET_PL:      {{money .Run.Summary.NetPL}}
:RETURN_PCT:  {{money .Run.Summary.ReturnPct}}
:MAX_DD_PCT:  {{money .Run.Summary.MaxDrawdownPct}}
:TRADES:      {{.Run.Summary.Trades}}
:WINS:        {{.Run.Summary.Wins}}
:LOSSES:      {{.Run.Summary.Losses}}
:WIN_RATE:    {{money .Run.Summary.RealizedWinRate}}
:TOTAL_FEES:  {{money .Run.Summary.TotalFees}}
:CREATED:     [{{(orTime .Run.Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Parameters
| Parameter          | Value |
|--------------------+-------|
| Win Rate %         | {{money .Run.Params.WinRate}} |
| Take Profit %      | {{money .Run.Params.TakeProfit}} |
| Stop Loss %        | {{money .Run.Params.StopLoss}} |
| Number of Trades   | {{.Run.Params.TradeCount}} |
| Limit Order Fee %  | {{.Run.Params.LimitOrderFeeRate}} |
| Market Order Fee % | {{.Run.Params.MarketOrderFeeRate}} |
{{- if .Trades}}

** Trades
| # | Outcome | Fee | New Balance |
|---+---------+-----+-------------|
{{- range .Trades}}
| {{.Seq}} | {{title .Outcome.String}} | {{money .FeesPaid}} | {{.Balance}} |
{{- end}}
{{- end}}
`

// FormatRunOrg renders a run and its trades as an Org-mode block.
func FormatRunOrg(run RunRecord, trades []TradeRecord) (string, error) {
	var buf bytes.Buffer
	err := runOrgTemplate.Execute(&buf, struct {
		Run    RunRecord
		Trades []TradeRecord
	}{run, trades})
	if err != nil {
		return "", fmt.Errorf("render org: %w", err)
	}
	return buf.String(), nil
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
