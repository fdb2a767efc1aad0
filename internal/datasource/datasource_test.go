package datasource

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/quantframe/quantframe/internal/types"
	"github.com/quantframe/quantframe/pkg/errors"
)

type DataSourceTestSuite struct {
	suite.Suite
}

func TestDataSourceSuite(t *testing.T) {
	suite.Run(t, new(DataSourceTestSuite))
}

func dailyBars(start time.Time, closes ...float64) []types.MarketData {
	bars := make([]types.MarketData, len(closes))
	for i, c := range closes {
		bars[i] = types.MarketData{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}

	return bars
}

var seriesStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func (suite *DataSourceTestSuite) TestNewSeriesRejectsEmpty() {
	_, err := NewSeries("600000", nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyPriceSeries))
}

func (suite *DataSourceTestSuite) TestNewSeriesRejectsUnordered() {
	bars := dailyBars(seriesStart, 10, 11, 12)
	bars[2].Time = bars[0].Time.AddDate(0, 0, -1)

	_, err := NewSeries("600000", bars)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnorderedPriceSeries))
}

func (suite *DataSourceTestSuite) TestNewSeriesRejectsDuplicateTimestamps() {
	bars := dailyBars(seriesStart, 10, 11)
	bars[1].Time = bars[0].Time

	_, err := NewSeries("600000", bars)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnorderedPriceSeries))
}

func (suite *DataSourceTestSuite) TestNewSeriesRejectsBadClose() {
	bars := dailyBars(seriesStart, 10, 11, 12)
	bars[1].Close = 0

	_, err := NewSeries("600000", bars)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingClosePrice))

	bars[1].Close = math.NaN()
	_, err = NewSeries("600000", bars)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingClosePrice))
}

func (suite *DataSourceTestSuite) TestNewSeriesCopiesInput() {
	bars := dailyBars(seriesStart, 10, 11, 12)

	series, err := NewSeries("600000", bars)
	suite.Require().NoError(err)

	bars[0].Close = 999
	suite.InDelta(10, series.Bars()[0].Close, 1e-9)
	suite.Equal("600000", series.Symbol())
	suite.Equal(3, series.Len())
}

func (suite *DataSourceTestSuite) TestBetween() {
	series, err := NewSeries("600000", dailyBars(seriesStart, 10, 11, 12, 13, 14))
	suite.Require().NoError(err)

	window, err := series.Between(
		optional.Some(seriesStart.AddDate(0, 0, 1)),
		optional.Some(seriesStart.AddDate(0, 0, 3)),
	)
	suite.Require().NoError(err)
	suite.Equal(3, window.Len())
	suite.InDelta(11, window.Bars()[0].Close, 1e-9)
	suite.InDelta(13, window.Bars()[2].Close, 1e-9)
}

func (suite *DataSourceTestSuite) TestBetweenOpenBounds() {
	series, err := NewSeries("600000", dailyBars(seriesStart, 10, 11, 12))
	suite.Require().NoError(err)

	window, err := series.Between(optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Equal(3, window.Len())
}

func (suite *DataSourceTestSuite) TestBetweenEmptyWindow() {
	series, err := NewSeries("600000", dailyBars(seriesStart, 10, 11, 12))
	suite.Require().NoError(err)

	_, err = series.Between(optional.Some(seriesStart.AddDate(1, 0, 0)), optional.None[time.Time]())
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyPriceSeries))
}

func (suite *DataSourceTestSuite) writeCSV(content string) string {
	path := filepath.Join(suite.T().TempDir(), "bars.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	return path
}

func (suite *DataSourceTestSuite) TestLoadCSV() {
	path := suite.writeCSV(`time,open,high,low,close,volume
2024-01-02,10,10.5,9.5,10,1000
2024-01-03,10,11.5,9.8,11,1200
`)

	series, err := LoadCSV(path, "600000")
	suite.Require().NoError(err)
	suite.Equal(2, series.Len())
	suite.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), series.Bars()[0].Time)
	suite.InDelta(11, series.Bars()[1].Close, 1e-9)
	suite.InDelta(1200, series.Bars()[1].Volume, 1e-9)
}

func (suite *DataSourceTestSuite) TestLoadCSVTimestampLayout() {
	path := suite.writeCSV(`time,open,high,low,close,volume
2024-01-02 09:30:00,10,10.5,9.5,10,1000
`)

	series, err := LoadCSV(path, "600000")
	suite.Require().NoError(err)
	suite.Equal(9, series.Bars()[0].Time.Hour())
}

func (suite *DataSourceTestSuite) TestLoadCSVBadTime() {
	path := suite.writeCSV(`time,open,high,low,close,volume
02/01/2024,10,10.5,9.5,10,1000
`)

	_, err := LoadCSV(path, "600000")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataLoadFailed))
}

func (suite *DataSourceTestSuite) TestLoadCSVMissingFile() {
	_, err := LoadCSV(filepath.Join(suite.T().TempDir(), "nope.csv"), "600000")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataLoadFailed))
}

func (suite *DataSourceTestSuite) TestLoadCSVUnordered() {
	path := suite.writeCSV(`time,open,high,low,close,volume
2024-01-03,10,10.5,9.5,10,1000
2024-01-02,10,11.5,9.8,11,1200
`)

	_, err := LoadCSV(path, "600000")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnorderedPriceSeries))
}
