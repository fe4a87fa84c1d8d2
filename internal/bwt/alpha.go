package bwt

import (
	"fmt"
	"strings"
)

// Alphabet is the DNA alphabet of the indexes, terminator first
const Alphabet = "$ACGT"

// AlphaCount is a count per symbol of Alphabet
type AlphaCount [len(Alphabet)]int64

// rank of a base in Alphabet, -1 for anything else
func rank(b byte) int {
	switch b {
	case '$':
		return 0
	case 'A', 'a':
		return 1
	case 'C', 'c':
		return 2
	case 'G', 'g':
		return 3
	case 'T', 't':
		return 4
	}
	return -1
}

// Get the count for base b, 0 for symbols outside the alphabet
func (a *AlphaCount) Get(b byte) int64 {
	if r := rank(b); r >= 0 {
		return a[r]
	}
	return 0
}

// Set the count for base b. Symbols outside the alphabet are ignored
func (a *AlphaCount) Set(b byte, n int64) {
	if r := rank(b); r >= 0 {
		a[r] = n
	}
}

// Add n to the count of base b
func (a *AlphaCount) Add(b byte, n int64) {
	if r := rank(b); r >= 0 {
		a[r] += n
	}
}

// Complement swaps the counts of complementary bases (A<->T, C<->G).
// The terminator is left in place
func (a *AlphaCount) Complement() {
	a[1], a[4] = a[4], a[1]
	a[2], a[3] = a[3], a[2]
}

// Sum of all counts including the terminator
func (a *AlphaCount) Sum() (sum int64) {
	for _, n := range a {
		sum += n
	}
	return
}

// MaxBase is the DNA base with the highest count. Ties go to the
// earlier base in ACGT order
func (a *AlphaCount) MaxBase() byte {
	best := 1
	for r := 2; r < len(Alphabet); r++ {
		if a[r] > a[best] {
			best = r
		}
	}
	return Alphabet[best]
}

func (a AlphaCount) String() string {
	parts := make([]string, len(Alphabet))
	for r, n := range a {
		parts[r] = fmt.Sprintf("%c:%d", Alphabet[r], n)
	}
	return strings.Join(parts, " ")
}

// Extender is the read-only index collaborator that reports how an interval
// can be extended: the count of each symbol preceding the ranks in it
type Extender interface {
	ExtCount(Interval) AlphaCount
}

// Counts is an in-memory Extender of precomputed extension counts
type Counts map[Interval]AlphaCount

// ExtCount returns the stored counts for i, or zero counts
func (c Counts) ExtCount(i Interval) AlphaCount {
	return c[i]
}

// Complement returns the complementary base, keeping case. Other symbols
// are returned unchanged
func Complement(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	case 'T':
		return 'A'
	case 'a':
		return 't'
	case 'c':
		return 'g'
	case 'g':
		return 'c'
	case 't':
		return 'a'
	}
	return b
}

// ReverseComplement of a DNA sequence
func ReverseComplement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = Complement(s[i])
	}
	return string(out)
}
