package reward

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GroupSeparator is placed between thousands groups in formatted amounts.
const GroupSeparator = " "

// Format renders an amount as a whole number with thousands separated by a
// single space, e.g. 20000 -> "20 000". Halves round away from zero.
func Format(amount float64) string {
	rounded := int64(math.Round(amount))
	grouped := message.NewPrinter(language.English).Sprintf("%d", rounded)
	return strings.ReplaceAll(grouped, ",", GroupSeparator)
}

// FormatPoints renders a score the way the calculator echoes it back:
// shortest representation, always with a fractional part ("1.0", "2.35").
func FormatPoints(points float64) string {
	s := strconv.FormatFloat(points, 'f', -1, 64)
	if !strings.Contains(s, ".") && !math.IsInf(points, 0) && !math.IsNaN(points) {
		s += ".0"
	}
	return s
}
