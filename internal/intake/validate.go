package intake

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	minExperience = 0
	maxExperience = 50
)

var (
	emailPattern = regexp.MustCompile(`^[\w.\-]+@[\w\-]+(\.[\w\-]+)*\.[A-Za-z0-9]+$`)
	phonePattern = regexp.MustCompile(`^[0-9 +\-()]{7,20}$`)
)

// NonEmpty accepts any value with non-whitespace content.
func NonEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ValidEmail accepts local@domain.tld shaped addresses.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(strings.TrimSpace(value))
}

// ValidPhone accepts 7 to 20 characters of digits, spaces, plus, dash and parentheses.
func ValidPhone(value string) bool {
	return phonePattern.MatchString(strings.TrimSpace(value))
}

// ValidExperience accepts a real number of years within [0, 50].
func ValidExperience(value string) bool {
	years, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(years) || math.IsInf(years, 0) {
		return false
	}
	return years >= minExperience && years <= maxExperience
}
