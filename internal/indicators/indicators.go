// Package indicators computes technical indicators over daily candles.
package indicators

import (
	"time"

	techanbig "github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"

	"github.com/go-petr/paper-trade/internal/domain"
)

// Window lengths matching the charts shown alongside price history.
const (
	smaWindow = 20
	emaWindow = 20
	rsiWindow = 14
)

// Point is the indicator values for one day. An indicator whose window
// is not yet filled at that day is left empty.
type Point struct {
	Date time.Time `json:"date"`
	SMA  string    `json:"sma,omitempty"`
	EMA  string    `json:"ema,omitempty"`
	RSI  string    `json:"rsi,omitempty"`
}

// Analyze computes the 20 day SMA and EMA and the 14 day RSI of the
// close prices. Candles must be in ascending date order.
func Analyze(candles []domain.Candle) []Point {
	series := techan.NewTimeSeries()

	for _, c := range candles {
		period := techan.NewTimePeriod(c.Date, 24*time.Hour)

		candle := techan.NewCandle(period)
		candle.ClosePrice = techanbig.NewFromString(c.Close)

		series.AddCandle(candle)
	}

	closePrice := techan.NewClosePriceIndicator(series)
	sma := techan.NewSimpleMovingAverage(closePrice, smaWindow)
	ema := techan.NewEMAIndicator(closePrice, emaWindow)
	rsi := techan.NewRelativeStrengthIndexIndicator(closePrice, rsiWindow)

	points := make([]Point, 0, len(candles))

	for i, c := range candles {
		p := Point{Date: c.Date}

		if i >= smaWindow-1 {
			p.SMA = sma.Calculate(i).String()
		}

		if i >= emaWindow-1 {
			p.EMA = ema.Calculate(i).String()
		}

		if i >= rsiWindow {
			p.RSI = rsi.Calculate(i).String()
		}

		points = append(points, p)
	}

	return points
}
