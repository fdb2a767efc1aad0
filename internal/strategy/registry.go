package strategy

import (
	"sort"

	"github.com/moznion/go-optional"
	"github.com/quantframe/quantframe/pkg/errors"
)

// Info describes a registered strategy for listing and documentation.
type Info struct {
	// Key is the registry lookup name.
	Key string `yaml:"key"`
	// Name is the human readable strategy name.
	Name string `yaml:"name"`
	// Description summarizes the trading rule.
	Description string `yaml:"description"`
	// Scenario names the market regime the strategy suits.
	Scenario string `yaml:"scenario"`
	// DefaultParams are merged under any user supplied parameters.
	DefaultParams map[string]float64 `yaml:"default_params"`
}

// Factory builds a strategy from a fully merged parameter map.
type Factory func(params map[string]float64) (Strategy, error)

type registration struct {
	info    Info
	factory Factory
}

// Registry maps strategy keys to factories and their default parameters.
type Registry struct {
	entries map[string]registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]registration),
	}
}

// Register adds a strategy factory under info.Key.
func (r *Registry) Register(info Info, factory Factory) error {
	if _, exists := r.entries[info.Key]; exists {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "strategy %q already registered", info.Key)
	}

	r.entries[info.Key] = registration{
		info:    info,
		factory: factory,
	}

	return nil
}

// Get returns the info for a registered strategy, or none.
func (r *Registry) Get(key string) optional.Option[Info] {
	entry, ok := r.entries[key]
	if !ok {
		return optional.None[Info]()
	}

	return optional.Some(entry.info)
}

// List returns the registered strategy infos sorted by key.
func (r *Registry) List() []Info {
	infos := make([]Info, 0, len(r.entries))
	for _, entry := range r.entries {
		infos = append(infos, entry.info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Key < infos[j].Key
	})

	return infos
}

// Create instantiates a strategy by key. Parameters omitted by the caller
// fall back to the registered defaults; a parameter key the strategy does not
// declare is a configuration error.
func (r *Registry) Create(key string, params map[string]float64) (Strategy, error) {
	entry, ok := r.entries[key]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownStrategy, "unknown strategy %q, available: %v", key, r.keys())
	}

	merged := make(map[string]float64, len(entry.info.DefaultParams))
	for k, v := range entry.info.DefaultParams {
		merged[k] = v
	}

	for k, v := range params {
		if _, known := merged[k]; !known {
			return nil, errors.Newf(errors.ErrCodeUnknownParameterKey, "strategy %q has no parameter %q", key, k)
		}

		merged[k] = v
	}

	return entry.factory(merged)
}

func (r *Registry) keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// DefaultRegistry returns a registry preloaded with the built-in strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	//nolint:errcheck // keys are distinct literals, Register cannot fail here
	r.Register(Info{
		Key:         "double_ma",
		Name:        "Dual Moving Average",
		Description: "buy when the short MA crosses above the long MA, sell on the opposite cross",
		Scenario:    "trending markets",
		DefaultParams: map[string]float64{
			"short_window": 5,
			"long_window":  20,
		},
	}, func(params map[string]float64) (Strategy, error) {
		return NewDoubleMA(DoubleMAConfig{
			ShortWindow: int(params["short_window"]),
			LongWindow:  int(params["long_window"]),
		})
	})

	//nolint:errcheck
	r.Register(Info{
		Key:         "macd",
		Name:        "MACD Crossover",
		Description: "trade crossings of the MACD line and its signal line",
		Scenario:    "medium and long term trend following",
		DefaultParams: map[string]float64{
			"fast_period":   12,
			"slow_period":   26,
			"signal_period": 9,
		},
	}, func(params map[string]float64) (Strategy, error) {
		return NewMACD(MACDConfig{
			FastPeriod:   int(params["fast_period"]),
			SlowPeriod:   int(params["slow_period"]),
			SignalPeriod: int(params["signal_period"]),
		})
	})

	//nolint:errcheck
	r.Register(Info{
		Key:         "turtle",
		Name:        "Turtle Breakout",
		Description: "Donchian channel breakout entry with a shorter channel exit",
		Scenario:    "trend following",
		DefaultParams: map[string]float64{
			"entry_window": 20,
			"exit_window":  10,
			"atr_period":   20,
		},
	}, func(params map[string]float64) (Strategy, error) {
		return NewTurtle(TurtleConfig{
			EntryWindow: int(params["entry_window"]),
			ExitWindow:  int(params["exit_window"]),
			ATRPeriod:   int(params["atr_period"]),
		})
	})

	//nolint:errcheck
	r.Register(Info{
		Key:         "rsi",
		Name:        "RSI Reversal",
		Description: "buy leaving the oversold zone, sell leaving the overbought zone",
		Scenario:    "range bound markets",
		DefaultParams: map[string]float64{
			"period":     14,
			"oversold":   30,
			"overbought": 70,
		},
	}, func(params map[string]float64) (Strategy, error) {
		return NewRSI(RSIConfig{
			Period:     int(params["period"]),
			Oversold:   params["oversold"],
			Overbought: params["overbought"],
		})
	})

	//nolint:errcheck
	r.Register(Info{
		Key:         "bollinger",
		Name:        "Bollinger Bands",
		Description: "mean reversion between the lower and upper bands",
		Scenario:    "mean reverting markets",
		DefaultParams: map[string]float64{
			"period":  20,
			"std_dev": 2.0,
		},
	}, func(params map[string]float64) (Strategy, error) {
		return NewBollinger(BollingerConfig{
			Period: int(params["period"]),
			StdDev: params["std_dev"],
		})
	})

	return r
}
