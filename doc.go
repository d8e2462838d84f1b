// Package papertrade simulates a simplified stock-trading account.
//
// The simulation is made of three engines:
//   - Market: the price feed. It owns the instrument catalog and moves every
//     price by a bounded random walk on a fixed cadence.
//   - Ledger: owns the Account (cash and holdings) and executes buy and sell
//     orders with strict validation. Cash never goes negative and a holding
//     is removed as soon as its quantity reaches zero.
//   - Valuator: periodically re-prices the holdings from the latest market
//     snapshot, on a timer independent from the market's.
//
// A Simulator wires the three together and resolves trades by symbol. Every
// state change is published as an immutable snapshot on a stream.Subject, and
// trade outcomes are reported to a Notifier.
//
// This package is the foundation of the `ptrade` command-line tool.
package papertrade
