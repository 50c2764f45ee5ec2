package indicators

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/paper-trade/internal/domain"
)

// zigzagCandles returns n daily candles whose closes alternate between
// 100 and 101, so every window holds both gains and losses.
func zigzagCandles(n int) []domain.Candle {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	candles := make([]domain.Candle, 0, n)
	for i := 0; i < n; i++ {
		closePrice := "100"
		if i%2 == 1 {
			closePrice = "101"
		}

		candles = append(candles, domain.Candle{
			Date:  start.AddDate(0, 0, i),
			Close: closePrice,
		})
	}

	return candles
}

func TestAnalyzeEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, Analyze(nil))
	require.Empty(t, Analyze([]domain.Candle{}))
}

func TestAnalyzeWindowFill(t *testing.T) {
	t.Parallel()

	candles := zigzagCandles(25)
	points := Analyze(candles)
	require.Len(t, points, 25)

	for i, p := range points {
		require.Equal(t, candles[i].Date, p.Date)

		if i < smaWindow-1 {
			require.Empty(t, p.SMA, "point %d", i)
			require.Empty(t, p.EMA, "point %d", i)
		} else {
			require.NotEmpty(t, p.SMA, "point %d", i)
			require.NotEmpty(t, p.EMA, "point %d", i)
		}

		if i < rsiWindow {
			require.Empty(t, p.RSI, "point %d", i)
		} else {
			require.NotEmpty(t, p.RSI, "point %d", i)
		}
	}
}

func TestAnalyzeSMA(t *testing.T) {
	t.Parallel()

	points := Analyze(zigzagCandles(20))

	// Ten closes at 100 and ten at 101 average to 100.5.
	want := decimal.RequireFromString("100.5")
	got := decimal.RequireFromString(points[19].SMA)
	require.True(t, want.Equal(got), "SMA: got %v, want %v", got, want)
}

func TestAnalyzeBounds(t *testing.T) {
	t.Parallel()

	points := Analyze(zigzagCandles(30))

	for i := rsiWindow; i < len(points); i++ {
		rsi := decimal.RequireFromString(points[i].RSI)
		require.True(t, rsi.GreaterThanOrEqual(decimal.Zero), "point %d: RSI %v", i, rsi)
		require.True(t, rsi.LessThanOrEqual(decimal.NewFromInt(100)), "point %d: RSI %v", i, rsi)
	}

	// The EMA of a series bounded by [100, 101] stays inside the band.
	for i := emaWindow - 1; i < len(points); i++ {
		ema := decimal.RequireFromString(points[i].EMA)
		require.True(t, ema.GreaterThanOrEqual(decimal.NewFromInt(100)), "point %d: EMA %v", i, ema)
		require.True(t, ema.LessThanOrEqual(decimal.NewFromInt(101)), "point %d: EMA %v", i, ema)
	}
}
