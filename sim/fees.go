package sim

import "math"

// MinFee is the smallest fee charged on a trade once fees are enabled.
const MinFee = 1.0

// FeeSchedule holds the percent fee rates for limit and market order legs.
type FeeSchedule struct {
	LimitRate  float64
	MarketRate float64
}

// Enabled reports whether any fees are charged. Fees are tied to the market
// rate alone: a schedule with only a limit rate charges nothing.
func (f FeeSchedule) Enabled() bool {
	return f.MarketRate != 0 && !math.IsNaN(f.MarketRate)
}

// OpenFee is the fee for opening a position worth posStart. Positions open
// with a market order when a market rate is set, otherwise with a limit order.
func (f FeeSchedule) OpenFee(posStart float64) float64 {
	switch {
	case f.MarketRate != 0:
		return posStart * f.MarketRate / 100
	case f.LimitRate != 0:
		return posStart * f.LimitRate / 100
	default:
		return 0
	}
}

// CloseFee is the fee for closing a position worth posEnd. Winners close on
// a take-profit limit order, losers on a stop-loss market order.
func (f FeeSchedule) CloseFee(o Outcome, posEnd float64) float64 {
	if o == Win {
		return posEnd * f.LimitRate / 100
	}
	return posEnd * f.MarketRate / 100
}

// Charge returns the balance left after paying fees on a position that went
// from posStart to posEnd, and the fees paid. Fees below MinFee are raised
// to MinFee.
func (f FeeSchedule) Charge(o Outcome, posStart, posEnd float64) (netProfit, feesPaid float64) {
	if !f.Enabled() {
		return posEnd, 0
	}

	feesPaid = f.OpenFee(posStart) + f.CloseFee(o, posEnd)
	if !(feesPaid >= MinFee) {
		feesPaid = MinFee
	}
	return posEnd - feesPaid, feesPaid
}
