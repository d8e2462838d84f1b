package papertrade

import (
	"errors"
	"fmt"
)

// Trade rejections. They are expected business conditions: a rejected trade
// leaves the Account untouched.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("not enough shares")
	ErrUnknownSymbol      = errors.New("unknown symbol")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
)

// validateBuy checks a purchase of qty inst against the cash available.
func validateBuy(inst Instrument, qty Quantity, cash Money) error {
	if !qty.IsPositive() {
		return fmt.Errorf("buy %s %s: %w", qty, inst.Symbol, ErrInvalidQuantity)
	}
	if !inst.Price.IsPositive() {
		return fmt.Errorf("buy %s: no price available: %w", inst.Symbol, ErrUnknownSymbol)
	}
	if total := inst.Price.Mul(qty); total.GreaterThan(cash) {
		return fmt.Errorf("buy %s %s costs %s, only %s available: %w", qty, inst.Symbol, total, cash, ErrInsufficientFunds)
	}
	return nil
}

// validateSell checks a sale of qty shares from held. held is the zero
// Holding when nothing is held.
func validateSell(symbol string, held Holding, qty Quantity) error {
	if !qty.IsPositive() {
		return fmt.Errorf("sell %s %s: %w", qty, symbol, ErrInvalidQuantity)
	}
	if qty.GreaterThan(held.Quantity) {
		return fmt.Errorf("sell %s %s, only %s held: %w", qty, symbol, held.Quantity, ErrInsufficientShares)
	}
	return nil
}

// RejectionMessage is the short message shown to the user for a rejected trade.
func RejectionMessage(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return "Insufficient funds"
	case errors.Is(err, ErrInsufficientShares):
		return "Not enough shares to sell"
	case errors.Is(err, ErrUnknownSymbol):
		return "Unknown symbol"
	case errors.Is(err, ErrInvalidQuantity):
		return "Quantity must be a positive whole number"
	default:
		return err.Error()
	}
}
