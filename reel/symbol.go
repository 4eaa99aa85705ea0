package reel

import (
	"fmt"
	"math/rand/v2"
)

// Symbol identifies a face on a reel strip
type Symbol int

const (
	// SymbolNone marks an unreadable slot
	SymbolNone Symbol = iota
	Ufo
	Ankh
	Horus
	Scarab
	Pharaoh
)

// Symbols lists every dealable face in strip order
var Symbols = []Symbol{Ufo, Ankh, Horus, Scarab, Pharaoh}

var symbolNames = map[Symbol]string{
	Ufo:     "ufo",
	Ankh:    "ankh",
	Horus:   "horus",
	Scarab:  "scarab",
	Pharaoh: "pharaoh",
}

func (s Symbol) String() string {
	if name, ok := symbolNames[s]; ok {
		return name
	}
	return "none"
}

// Valid reports whether s is a readable face
func (s Symbol) Valid() bool {
	_, ok := symbolNames[s]
	return ok
}

// ParseSymbol returns the symbol for a name produced by String
func ParseSymbol(name string) (Symbol, error) {
	for s, n := range symbolNames {
		if n == name {
			return s, nil
		}
	}
	return SymbolNone, fmt.Errorf("unknown symbol %q: %w", name, ErrInvalidSymbol)
}

// Deal returns a shuffled strip holding every face once
func Deal(rng *rand.Rand) []Symbol {
	strip := make([]Symbol, len(Symbols))
	copy(strip, Symbols)
	rng.Shuffle(len(strip), func(i, j int) {
		strip[i], strip[j] = strip[j], strip[i]
	})
	return strip
}
