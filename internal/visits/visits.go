// Package visits implements the visit counter: a single integer read once at
// startup, incremented, written back and displayed with substituted numerals.
//
// Storage goes through the Store port so the composer never touches the file
// system directly. Concurrent instances may race on the read-modify-write;
// that is accepted.
package visits

import (
	"fmt"
	"math"
	"strings"

	"organix/internal/logging"
)

// Key is the storage key holding the count.
const Key = "visitCount"

// Store is the persistence port for the counter.
type Store interface {
	// Read returns the stored count. A missing value is (0, nil).
	Read() (int, error)
	Write(n int) error
}

// Load reads the stored count, increments it and writes it back. Read
// failures and negative values count as zero, and the count stops at
// math.MaxInt. A write failure is returned
// together with the incremented count, which should still be displayed.
func Load(store Store) (int, error) {
	n, err := store.Read()
	if err != nil {
		logging.L().Warn("visit count unreadable, starting from zero", "err", err)
		n = 0
	}
	if n < 0 {
		n = 0
	}
	if n < math.MaxInt {
		n++
	}
	if err := store.Write(n); err != nil {
		return n, fmt.Errorf("visits: write count: %w", err)
	}
	logging.L().Debug("visit recorded", "count", n)
	return n, nil
}

var numerals = [10]string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

// Numeral returns the symbol substituted for decimal digit d.
func Numeral(d int) string {
	if d < 0 || d > 9 {
		return ""
	}
	return numerals[d]
}

// Numerals renders n digit by digit with the substituted symbols.
func Numerals(n int) string {
	s := fmt.Sprint(n)
	var b strings.Builder
	for _, r := range s {
		if r == '-' {
			b.WriteRune(r)
			continue
		}
		b.WriteString(numerals[r-'0'])
	}
	return b.String()
}

// Title is the window title carrying the count.
func Title(n int) string {
	return fmt.Sprintf("Organix (%d visits) - Neon Japanese Experience", n)
}
