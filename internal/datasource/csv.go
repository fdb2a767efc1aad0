package datasource

import (
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/quantframe/quantframe/internal/types"
	"github.com/quantframe/quantframe/pkg/errors"
)

// dateLayouts are tried in order when parsing the time column. End-of-day
// files usually carry bare dates, exports from other tools carry timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	time.DateOnly,
}

type csvDate struct {
	time.Time
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (d *csvDate) UnmarshalCSV(value string) error {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			d.Time = t

			return nil
		}
	}

	return errors.Newf(errors.ErrCodeDataLoadFailed, "unparseable time %q", value)
}

type csvBar struct {
	Time   csvDate `csv:"time"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume float64 `csv:"volume"`
}

// LoadCSV reads an OHLCV file into a validated Series for symbol. The file
// must have a header row with time, open, high, low, close and volume columns.
func LoadCSV(path, symbol string) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataLoadFailed, err, "open %s", path)
	}
	defer file.Close()

	var rows []csvBar
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataLoadFailed, err, "parse %s", path)
	}

	bars := make([]types.MarketData, len(rows))
	for i, row := range rows {
		bars[i] = types.MarketData{
			Time:   row.Time.Time,
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		}
	}

	return NewSeries(symbol, bars)
}
