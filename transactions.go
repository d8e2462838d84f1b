package papertrade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CommandType is a typed string for identifying trade commands.
type CommandType string

// Command types of the trade journal.
const (
	CmdBuy  CommandType = "buy"
	CmdSell CommandType = "sell"
)

// Trade is one executed buy or sell, as recorded in the journal.
type Trade struct {
	ID       uuid.UUID
	Time     time.Time
	Command  CommandType
	Symbol   string
	Quantity Quantity
	Price    Money // price per share
	Amount   Money // Price × Quantity, paid on buy and received on sell
}

// Message is the confirmation shown to the user.
func (t Trade) Message() string {
	switch t.Command {
	case CmdBuy:
		return fmt.Sprintf("Bought %s shares of %s", t.Quantity, t.Symbol)
	case CmdSell:
		return fmt.Sprintf("Sold %s shares of %s", t.Quantity, t.Symbol)
	default:
		return fmt.Sprintf("%s %s shares of %s", t.Command, t.Quantity, t.Symbol)
	}
}

func (t Trade) String() string {
	return fmt.Sprintf("%s %s %s @ %s = %s", t.Command, t.Quantity, t.Symbol, t.Price, t.Amount)
}

// MarshalJSON implements the json.Marshaler interface for Trade.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("time", t.Time.Format(time.RFC3339Nano))
	w.Append("command", t.Command)
	w.Append("symbol", t.Symbol)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}
