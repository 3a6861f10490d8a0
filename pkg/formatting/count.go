package formatting

import (
	"fmt"
	"strconv"
)

// Plural formats n with the singular or plural form of noun.
// The plural form is noun + "s". Negative counts use their absolute value.
func Plural(n int, noun string) string {
	if n < 0 {
		n = -n
	}
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// Ratio formats a "numerator/denominator verb" label, e.g. "7/10 classified".
func Ratio(numerator, denominator int, verb string) string {
	return fmt.Sprintf("%d/%d %s", numerator, denominator, verb)
}
