package backtest

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v2"

	"github.com/quantframe/quantframe/pkg/errors"
)

// Config holds the run parameters of a backtest. Omitted fields keep the
// defaults of DefaultConfig; only Symbol and InitialCash must be supplied.
type Config struct {
	// Symbol is the instrument the backtest simulates.
	Symbol string `yaml:"symbol" json:"symbol" validate:"required" jsonschema:"title=Symbol,description=Instrument symbol the backtest simulates"`
	// InitialCash is the starting capital.
	InitialCash float64 `yaml:"initial_cash" json:"initial_cash" validate:"required,gt=0" jsonschema:"title=Initial Cash,description=Starting capital,minimum=0"`
	// CommissionRate applies to the gross amount of every fill.
	CommissionRate float64 `yaml:"commission_rate" json:"commission_rate" validate:"gte=0" jsonschema:"title=Commission Rate,description=Commission as a fraction of gross amount,minimum=0"`
	// TaxRate applies to the gross amount of sell fills only.
	TaxRate float64 `yaml:"tax_rate" json:"tax_rate" validate:"gte=0" jsonschema:"title=Tax Rate,description=Transaction tax on sells as a fraction of gross amount,minimum=0"`
	// CashUtilization caps the cash committed to a single buy.
	CashUtilization float64 `yaml:"cash_utilization" json:"cash_utilization" validate:"gt=0,lte=1" jsonschema:"title=Cash Utilization,description=Fraction of cash committed to a buy,minimum=0,maximum=1"`
	// LotSize is the minimum tradable quantity; buys round down to it.
	LotSize int64 `yaml:"lot_size" json:"lot_size" validate:"gt=0" jsonschema:"title=Lot Size,description=Quantity granularity of fills,minimum=1"`
	// RiskFreeRate is the annual rate used by ratio metrics.
	RiskFreeRate float64 `yaml:"risk_free_rate" json:"risk_free_rate" validate:"gte=0" jsonschema:"title=Risk Free Rate,description=Annual risk free rate for Sharpe and Sortino"`
	// StartTime optionally clips the series to bars at or after it.
	StartTime optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional inclusive start of the backtest window"`
	// EndTime optionally clips the series to bars at or before it.
	EndTime optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional inclusive end of the backtest window"`
}

// DefaultConfig returns a config with every rate at its conventional default.
// Symbol and InitialCash are left unset and must come from the caller.
func DefaultConfig() Config {
	return Config{
		CommissionRate:  0.0003,
		TaxRate:         0.001,
		CashUtilization: 0.95,
		LotSize:         100,
		RiskFreeRate:    0.03,
		StartTime:       optional.None[time.Time](),
		EndTime:         optional.None[time.Time](),
	}
}

// UnmarshalYAML implements custom unmarshaling so omitted fields keep their
// defaults and the optional time bounds map onto Option values.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain struct {
		Symbol          *string    `yaml:"symbol"`
		InitialCash     *float64   `yaml:"initial_cash"`
		CommissionRate  *float64   `yaml:"commission_rate"`
		TaxRate         *float64   `yaml:"tax_rate"`
		CashUtilization *float64   `yaml:"cash_utilization"`
		LotSize         *int64     `yaml:"lot_size"`
		RiskFreeRate    *float64   `yaml:"risk_free_rate"`
		StartTime       *time.Time `yaml:"start_time"`
		EndTime         *time.Time `yaml:"end_time"`
	}

	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}

	if p.Symbol != nil {
		c.Symbol = *p.Symbol
	}

	if p.InitialCash != nil {
		c.InitialCash = *p.InitialCash
	}

	if p.CommissionRate != nil {
		c.CommissionRate = *p.CommissionRate
	}

	if p.TaxRate != nil {
		c.TaxRate = *p.TaxRate
	}

	if p.CashUtilization != nil {
		c.CashUtilization = *p.CashUtilization
	}

	if p.LotSize != nil {
		c.LotSize = *p.LotSize
	}

	if p.RiskFreeRate != nil {
		c.RiskFreeRate = *p.RiskFreeRate
	}

	if p.StartTime != nil {
		c.StartTime = optional.Some(*p.StartTime)
	}

	if p.EndTime != nil {
		c.EndTime = optional.Some(*p.EndTime)
	}

	return nil
}

// ParseConfig parses a YAML document on top of the defaults and validates it.
func ParseConfig(content string) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks the config against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "backtest-config"
	schema.Description = "Configuration schema for the backtest engine"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates the JSON schema string for the Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to generate schema", err)
	}

	return string(schemaBytes), nil
}
