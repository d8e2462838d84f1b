package papertrade

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is a whole number of shares.
type Quantity struct {
	value int64
}

// Q creates a Quantity.
func Q[T int | int32 | int64 | uint | uint32](value T) Quantity {
	return Quantity{value: int64(value)}
}

func (q Quantity) Int64() int64                 { return q.value }
func (q Quantity) Equal(p Quantity) bool        { return q.value == p.value }
func (q Quantity) LessThan(p Quantity) bool     { return q.value < p.value }
func (q Quantity) GreaterThan(p Quantity) bool  { return q.value > p.value }
func (q Quantity) Add(p Quantity) Quantity      { return Quantity{value: q.value + p.value} }
func (q Quantity) Sub(p Quantity) Quantity      { return Quantity{value: q.value - p.value} }
func (q Quantity) IsPositive() bool             { return q.value > 0 }
func (q Quantity) IsZero() bool                 { return q.value == 0 }
func (q Quantity) String() string               { return strconv.FormatInt(q.value, 10) }
func (q Quantity) decimal() decimal.Decimal     { return decimal.NewFromInt(q.value) }
func (q Quantity) MarshalJSON() ([]byte, error) { return json.Marshal(q.value) }

func (q *Quantity) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &q.value)
}

// ParseQuantity parses a base 10 share count.
func ParseQuantity(s string) (Quantity, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v}, nil
}
