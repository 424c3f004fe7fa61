// Package display turns engine state into on-screen text.
//
// FormatForDisplay is the pure formatter applied to the display value on
// every render. Render builds the full Screen a host draws: the expression
// line, the formatted value, the error treatment for sentinels, the active
// operator key and the label of the combined clear key.
package display

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/calc/internal/engine"
)

// The display format is fixed: "." for decimals, "," for thousands.
var grouping = message.NewPrinter(language.English)

// FormatForDisplay inserts thousands separators into the integer part of
// raw. The sign and fractional part are kept as typed, so "12." and
// "-0.50" survive unchanged apart from grouping. Sentinels are returned
// unchanged.
//
//	FormatForDisplay("1234567")    == "1,234,567"
//	FormatForDisplay("1234567.89") == "1,234,567.89"
func FormatForDisplay(raw string) string {
	if engine.IsSentinel(raw) {
		return raw
	}

	sign := ""
	body := raw
	if strings.HasPrefix(body, "-") {
		sign, body = "-", body[1:]
	}

	integer, fraction, hasPoint := strings.Cut(body, ".")
	grouped := groupDigits(integer)

	if hasPoint {
		return sign + grouped + "." + fraction
	}
	return sign + grouped
}

// groupDigits returns integer with "," every three digits from the right.
// Input that is not a plain digit run is returned unchanged.
func groupDigits(integer string) string {
	if len(integer) <= 3 {
		return integer
	}
	n, err := strconv.ParseUint(integer, 10, 64)
	if err != nil {
		return integer
	}
	return grouping.Sprintf("%d", n)
}
