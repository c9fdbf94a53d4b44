package papertrade

import "time"

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// fixedClock makes transaction timestamps predictable, it returns a restore function.
func fixedClock(at time.Time) func() {
	old := now
	now = func() time.Time { return at }
	return func() { now = old }
}

var (
	AAPL = NewStock("AAPL", USD(150))
	GOOG = NewStock("GOOG", USD(2800))
	TSLA = NewStock("TSLA", USD(700))
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
