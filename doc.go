// Package papertrade simulates stock trading against a fixed price list.
//
// The core types are:
//   - Catalog: the read-only list of tradeable stocks and their prices.
//   - Portfolio: the cash balance, the shares held per symbol and the
//     chronological log of executed trades. Buy and Sell are the only ways to
//     change it.
//   - Transaction: the immutable record of one executed trade.
//
// Amounts are exact decimals (Money and Quantity), never floats.
//
// A Portfolio is persisted through a Store. JSONLFile stores it as a
// human-readable JSONL file, one object per line, see EncodePortfolio.
//
// This package serves as the foundational logic for the `pts` command-line
// tool.
package papertrade
