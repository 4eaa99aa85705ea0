package reel

import "errors"

// Reel-level failures; they travel as outcome data and are never returned across the barrier
var (
	ErrIncompleteStrip = errors.New("incomplete strip")
	ErrInvalidSymbol   = errors.New("invalid symbol")
	ErrSettleTimeout   = errors.New("settle timeout")
)

// Outcome is the result a reel reports on settle: a symbol or an error
type Outcome struct {
	Symbol Symbol
	Err    error
	set    bool
}

// SymbolOutcome builds a successful outcome
func SymbolOutcome(s Symbol) Outcome {
	return Outcome{Symbol: s, set: true}
}

// ErrorOutcome builds a failed outcome
func ErrorOutcome(err error) Outcome {
	return Outcome{Err: err, set: true}
}

// IsSet reports whether the outcome has been reported
func (o Outcome) IsSet() bool {
	return o.set
}

// Failed reports whether the reel settled with an error
func (o Outcome) Failed() bool {
	return o.set && o.Err != nil
}

// String renders the symbol name, the error kind, or "unset"
func (o Outcome) String() string {
	switch {
	case !o.set:
		return "unset"
	case o.Err != nil:
		return o.Err.Error()
	default:
		return o.Symbol.String()
	}
}
