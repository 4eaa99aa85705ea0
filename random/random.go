// Package random provides the seeded generators used for strip deals and spin travel.
package random

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"
)

// NewSeed returns a seed from the system CSPRNG
func NewSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return binary.LittleEndian.Uint64(b[:])
}

// NewRand returns a PCG generator for seed; seed 0 draws a fresh one
func NewRand(seed uint64) (*mrand.Rand, uint64) {
	if seed == 0 {
		seed = NewSeed()
	}
	return mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed
}

// Derive returns an independent generator for stream i of a seeded run
func Derive(seed uint64, i int) *mrand.Rand {
	return mrand.New(mrand.NewPCG(seed, uint64(i)+1))
}
