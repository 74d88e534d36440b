package sim

import "math"

// Simulator runs trade-outcome simulations. Each Simulator owns its Source,
// so a Simulator must not be shared between goroutines.
type Simulator struct {
	src Source
}

// New returns a Simulator drawing coin flips from src.
func New(src Source) *Simulator {
	return &Simulator{src: src}
}

// NewSeeded returns a Simulator whose draws are reproducible for seed.
func NewSeeded(seed int64) *Simulator {
	return New(NewSource(seed))
}

// Run simulates p.TradeCount trades and returns them in order. A trade count
// of zero or less yields nil and draws nothing from the source.
//
// Run trusts p: negative rates or a win rate above 100 are not rejected and
// produce whatever the arithmetic gives.
func (s *Simulator) Run(p Params) []Trade {
	if p.TradeCount <= 0 {
		return nil
	}

	var (
		quotas  = p.Quotas()
		fees    = p.Fees()
		balance = p.StartBalance
		wins    int
		losses  int
		flip    = func() bool { return coinFlip(s.src) }
	)

	trades := make([]Trade, 0, p.TradeCount)
	for i := 0; i < p.TradeCount; i++ {
		outcome := quotas.Decide(wins, losses, flip)

		end := grossBalance(outcome, balance, p.TakeProfit, p.StopLoss)
		net, paid := fees.Charge(outcome, balance, end)
		balance = net

		trades = append(trades, Trade{
			Outcome:  outcome,
			Balance:  int64(math.Floor(balance)),
			FeesPaid: paid,
		})

		if outcome == Win {
			wins++
		} else {
			losses++
		}
	}
	return trades
}

// Run is a convenience for NewSeeded(seed).Run(p).
func Run(p Params, seed int64) []Trade {
	return NewSeeded(seed).Run(p)
}

// Profitable reports whether the run ended above startBalance. An empty run
// is never profitable.
func Profitable(trades []Trade, startBalance float64) bool {
	if len(trades) == 0 {
		return false
	}
	return float64(trades[len(trades)-1].Balance) > startBalance
}
