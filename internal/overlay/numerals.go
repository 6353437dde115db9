package overlay

import (
	"fmt"
	"strings"
)

// CounterSymbol follows the numerals in the visit counter.
const CounterSymbol = "回"

const (
	numeralBox     = 10 // view units per symbol
	numeralHeight  = 16 // pixels
	numeralGap     = 3
	numeralStroke  = 1.1
	numeralAdvance = numeralHeight + numeralGap
)

// numeralPaths are stroke outlines of the counter symbols in a 10x10 box.
var numeralPaths = map[rune]string{
	'零': "M 2 1 H 8 M 5 1 V 4 M 1.5 2.5 V 4.5 M 1.5 2.5 H 8.5 V 4.5 M 3 3.3 H 4 M 6 3.3 H 7 " +
		"M 5 5 L 1.5 7 M 5 5 L 8.5 7 M 3.5 7.3 H 6.5 M 5 7.3 V 9.5",
	'一': "M 1 5 H 9",
	'二': "M 2 3 H 8 M 1 7.5 H 9",
	'三': "M 2 2 H 8 M 2.5 5 H 7.5 M 1 8.5 H 9",
	'四': "M 1.5 2 H 8.5 V 8.5 H 1.5 Z M 4 2 V 4.5 Q 4 6 2.5 6.5 M 6 2 V 6 H 8.5",
	'五': "M 1.5 1.5 H 8.5 M 4.5 1.5 L 3.5 8.5 M 2 5 H 7 V 8.5 M 0.8 8.5 H 9.2",
	'六': "M 5 0.8 V 2 M 1 3 H 9 M 3.8 5 L 1.8 8.8 M 6.2 5 L 8.2 8.8",
	'七': "M 1 5.5 L 9 4 M 4 1 V 7.5 Q 4 9 5.5 9 H 9 V 7.5",
	'八': "M 3.8 1.5 Q 3.5 6 1 9 M 6 1.5 Q 6.5 6 9 9",
	'九': "M 1 3.5 H 6.5 V 8 Q 6.5 9 8 9 H 9.2 V 7.5 M 4.5 1 Q 4.5 6.5 1 9",
	'回': "M 1.5 1.5 H 8.5 V 8.5 H 1.5 Z M 3.5 3.5 H 6.5 V 6.5 H 3.5 Z",
}

// NumeralPath returns the outline drawn for r. Only the ten counter numerals
// and the counter symbol have one.
func NumeralPath(r rune) (string, bool) {
	d, ok := numeralPaths[r]
	return d, ok
}

// numeralRow returns the number of drawable symbols in s and their SVG
// document, laid out left to right. Symbols without an outline are skipped.
func numeralRow(s string) (int, string) {
	var paths strings.Builder
	n := 0
	for _, r := range s {
		d, ok := numeralPaths[r]
		if !ok {
			continue
		}
		fmt.Fprintf(&paths, `<path d="%s" transform="translate(%.3f 0)" fill="none" stroke="#ffffff" stroke-width="%.2f" stroke-linecap="round" stroke-linejoin="round"/>`,
			d, float64(n)*numeralBox*numeralAdvance/numeralHeight, numeralStroke)
		paths.WriteByte('\n')
		n++
	}
	if n == 0 {
		return 0, ""
	}
	w := numeralRowWidth(n)
	vw := float64(w) * numeralBox / numeralHeight
	doc := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.3f %d" width="%d" height="%d">`+"\n%s</svg>\n",
		vw, numeralBox, w, numeralHeight, paths.String())
	return n, doc
}

func numeralRowWidth(n int) int {
	if n <= 0 {
		return 0
	}
	return n*numeralAdvance - numeralGap
}
