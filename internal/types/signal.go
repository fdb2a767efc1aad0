package types

import "time"

type SignalType string

const (
	// SignalTypeBuy tells the engine to open a position at the bar close.
	SignalTypeBuy SignalType = "buy"
	// SignalTypeSell tells the engine to liquidate the held position.
	SignalTypeSell SignalType = "sell"
	// SignalTypeHold tells the engine to take no action for the bar.
	SignalTypeHold SignalType = "hold"
)

type Signal struct {
	// Time is the time of the bar the signal was generated for.
	Time time.Time
	// Type is the type of the signal.
	Type SignalType
	// Name is the name of the strategy that generated the signal.
	Name string
	// Reason is a human readable explanation for the signal.
	Reason string
	// RawValue carries the indicator values behind the decision.
	RawValue map[string]float64
	// Symbol is the instrument the signal applies to.
	Symbol string
}

// Hold is a convenience constructor for a no-action signal.
func Hold(t time.Time, name, symbol string) Signal {
	return Signal{
		Time:   t,
		Type:   SignalTypeHold,
		Name:   name,
		Symbol: symbol,
	}
}
