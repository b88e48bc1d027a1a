package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparsableBudget is returned when no usable numeric value can be
// extracted from a budget string.
var ErrUnparsableBudget = errors.New("no numeric budget value found")

// budgetRegexp captures the first numeric token (with optional thousands
// separators and decimals) and an optional k/m magnitude suffix. The suffix
// only counts when directly attached to the number, so "under 50 max" is
// fifty, not fifty million.
var budgetRegexp = regexp.MustCompile(`([0-9][0-9,]*(?:\.[0-9]+)?)([kKmM]\b)?`)

// ParseBudget extracts a non-negative numeric ceiling from free-form budget
// text such as "under $50", "₹2,000" or "15k". No currency conversion is
// attempted — the value is used in the same unit as listing prices.
func ParseBudget(text string) (float64, error) {
	loc := budgetRegexp.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, fmt.Errorf("parse budget %q: %w", text, ErrUnparsableBudget)
	}

	if loc[0] > 0 && text[loc[0]-1] == '-' {
		return 0, fmt.Errorf("parse budget %q: negative amount: %w", text, ErrUnparsableBudget)
	}

	token := strings.ReplaceAll(text[loc[2]:loc[3]], ",", "")
	val, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("parse budget %q: %w", text, ErrUnparsableBudget)
	}

	if loc[4] >= 0 {
		switch strings.ToLower(text[loc[4]:loc[5]]) {
		case "k":
			val *= 1_000
		case "m":
			val *= 1_000_000
		}
	}

	return val, nil
}
