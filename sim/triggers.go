package sim

// Quotas bound how many wins and losses a run may produce. MaxWins is not
// rounded, so a fractional quota lets the coin flip run one trade longer.
type Quotas struct {
	MaxWins   float64
	MaxLosses float64
}

// Decide picks the outcome of the next trade given the counts so far. flip is
// only called when both quotas still have room; winRate never weights it.
func (q Quotas) Decide(wins, losses int, flip func() bool) Outcome {
	w := float64(wins)
	switch {
	case w == q.MaxWins:
		return Loss
	case w < q.MaxWins:
		if float64(losses) < q.MaxLosses {
			if flip() {
				return Win
			}
			return Loss
		}
		return Win
	default:
		return Loss
	}
}
