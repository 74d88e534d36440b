package sim

// grossBalance applies take-profit or stop-loss to balance, before fees.
func grossBalance(o Outcome, balance, takeProfit, stopLoss float64) float64 {
	if o == Win {
		return balance + (balance*takeProfit)/100
	}
	return balance - (balance*stopLoss)/100
}
