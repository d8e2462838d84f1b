package papertrade

import (
	"sync"

	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// cents creates usd money from a number of cents.
func cents(c int64) Money { return M(decimal.New(c, -2), "USD") }

// seqRand replays a fixed sequence of uniform draws, cycling when exhausted.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

// priceMap is a PriceSource backed by a map. Unknown symbols price at zero.
type priceMap map[string]Money

func (p priceMap) Price(symbol string) Money {
	if m, ok := p[symbol]; ok {
		return m
	}
	return USD(0)
}

// recorder is a Notifier keeping every message.
type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.successes) + len(r.errors)
}

func (r *recorder) lastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errors) == 0 {
		return ""
	}
	return r.errors[len(r.errors)-1]
}

func (r *recorder) lastSuccess() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.successes) == 0 {
		return ""
	}
	return r.successes[len(r.successes)-1]
}

// instrument returns the seed instrument symbol priced at price.
func instrument(symbol string, price float64) Instrument {
	return NewInstrument(symbol, symbol, USD(price))
}
