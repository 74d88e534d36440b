package sim

// Summary is derived from a finished run; nothing in it is stored on the
// trades themselves.
type Summary struct {
	Trades    int     `json:"trades" yaml:"trades"`
	Wins      int     `json:"wins" yaml:"wins"`
	Losses    int     `json:"losses" yaml:"losses"`
	TotalFees float64 `json:"total_fees" yaml:"total_fees"`

	StartBalance float64 `json:"start_balance" yaml:"start_balance"`
	EndBalance   float64 `json:"end_balance" yaml:"end_balance"`
	NetPL        float64 `json:"net_pl" yaml:"net_pl"`
	ReturnPct    float64 `json:"return_pct" yaml:"return_pct"`

	RealizedWinRate float64 `json:"realized_win_rate" yaml:"realized_win_rate"`
	MaxDrawdownPct  float64 `json:"max_drawdown_pct" yaml:"max_drawdown_pct"`
	Profitable      bool    `json:"profitable" yaml:"profitable"`
}

// Summarize computes run statistics for trades produced from p.
func Summarize(p Params, trades []Trade) Summary {
	s := Summary{
		Trades:       len(trades),
		StartBalance: p.StartBalance,
		EndBalance:   p.StartBalance,
		Profitable:   Profitable(trades, p.StartBalance),
	}

	for _, t := range trades {
		if t.Outcome == Win {
			s.Wins++
		} else {
			s.Losses++
		}
		s.TotalFees += t.FeesPaid
	}

	if len(trades) > 0 {
		s.EndBalance = float64(trades[len(trades)-1].Balance)
		s.RealizedWinRate = float64(s.Wins) / float64(len(trades)) * 100
	}
	s.NetPL = s.EndBalance - s.StartBalance
	if s.StartBalance > 0 {
		s.ReturnPct = s.NetPL / s.StartBalance * 100
	}
	s.MaxDrawdownPct = maxDrawdown(p.StartBalance, trades) * 100
	return s
}

// maxDrawdown returns the largest peak-to-trough decline as a fraction of the
// peak, starting from start.
func maxDrawdown(start float64, trades []Trade) float64 {
	peak := start
	maxDD := 0.0
	for _, t := range trades {
		v := float64(t.Balance)
		if v > peak {
			peak = v
		}
		if peak <= 0 {
			continue
		}
		if dd := (peak - v) / peak; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
