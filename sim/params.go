package sim

// Params holds the inputs of one simulation run. Rates and percentages are
// expressed in percent (5 means 5%).
type Params struct {
	StartBalance       float64 `json:"start_balance" yaml:"start_balance" mapstructure:"start_balance" validate:"gte=0" jsonschema:"title=Starting Balance,description=Starting capital in USD,minimum=0"`
	WinRate            float64 `json:"win_rate" yaml:"win_rate" mapstructure:"win_rate" validate:"gte=0,lte=100" jsonschema:"title=Win Rate,description=Target percentage of winning trades,minimum=0,maximum=100"`
	TakeProfit         float64 `json:"take_profit" yaml:"take_profit" mapstructure:"take_profit" validate:"gte=0" jsonschema:"title=Take Profit,description=Percent gain applied to the balance on a win,minimum=0"`
	StopLoss           float64 `json:"stop_loss" yaml:"stop_loss" mapstructure:"stop_loss" validate:"gte=0" jsonschema:"title=Stop Loss,description=Percent loss applied to the balance on a loss,minimum=0"`
	TradeCount         int     `json:"trade_count" yaml:"trade_count" mapstructure:"trade_count" validate:"gte=0" jsonschema:"title=Number of Trades,minimum=0"`
	LimitOrderFeeRate  float64 `json:"limit_order_fee_rate" yaml:"limit_order_fee_rate" mapstructure:"limit_order_fee_rate" validate:"gte=0" jsonschema:"title=Limit Order Fee,description=Percent fee for a limit order leg,minimum=0"`
	MarketOrderFeeRate float64 `json:"market_order_fee_rate" yaml:"market_order_fee_rate" mapstructure:"market_order_fee_rate" validate:"gte=0" jsonschema:"title=Market Order Fee,description=Percent fee for a market order leg. Zero disables all fees,minimum=0"`
}

// Quotas returns the win/loss caps derived from the trade count and win rate.
func (p Params) Quotas() Quotas {
	maxWins := float64(p.TradeCount) * (p.WinRate / 100)
	return Quotas{
		MaxWins:   maxWins,
		MaxLosses: float64(p.TradeCount) - maxWins,
	}
}

// Fees returns the fee schedule described by the params.
func (p Params) Fees() FeeSchedule {
	return FeeSchedule{
		LimitRate:  p.LimitOrderFeeRate,
		MarketRate: p.MarketOrderFeeRate,
	}
}
