package query

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var decimalPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

// PriceField identifies one of the four price limits of a FilterConfig.
type PriceField int

const (
	FieldCommon PriceField = iota
	FieldUncommon
	FieldRare
	FieldLand
)

// NumPriceFields is the number of price limits a filter carries.
const NumPriceFields = 4

func (f PriceField) String() string {
	switch f {
	case FieldCommon:
		return "common"
	case FieldUncommon:
		return "uncommon"
	case FieldRare:
		return "rare"
	case FieldLand:
		return "land"
	default:
		return "unknown"
	}
}

// FilterConfig holds the user-tunable filters the queries are built from.
// Construct it with NewFilterConfig or ParseFilterConfig; the zero value
// is valid and selects nothing but free cards.
type FilterConfig struct {
	IncludeSilverBordered bool
	CommonPrice           float64
	UncommonPrice         float64
	RarePrice             float64
	LandPrice             float64
}

// Price returns the limit for the given field.
func (f FilterConfig) Price(field PriceField) float64 {
	switch field {
	case FieldCommon:
		return f.CommonPrice
	case FieldUncommon:
		return f.UncommonPrice
	case FieldRare:
		return f.RarePrice
	case FieldLand:
		return f.LandPrice
	default:
		return 0
	}
}

// ConfigError reports which price fields failed validation.
// All fields are checked; the error never stops at the first bad one.
type ConfigError struct {
	fields [NumPriceFields]bool
	causes [NumPriceFields]error
}

// Fields returns the per-field error vector in common, uncommon, rare, land order.
func (e *ConfigError) Fields() [NumPriceFields]bool {
	return e.fields
}

// Invalid reports whether the given field failed validation.
func (e *ConfigError) Invalid(field PriceField) bool {
	if field < 0 || int(field) >= NumPriceFields {
		return false
	}
	return e.fields[field]
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	var parts []string
	for i, bad := range e.fields {
		if bad {
			parts = append(parts, fmt.Sprintf("%s price: %v", PriceField(i), e.causes[i]))
		}
	}
	return "invalid filter configuration: " + strings.Join(parts, "; ")
}

// NewFilterConfig validates already-numeric prices, given in common,
// uncommon, rare, land order.
func NewFilterConfig(includeSilverBordered bool, prices [NumPriceFields]float64) (FilterConfig, error) {
	cfgErr := &ConfigError{}
	failed := false
	for i, p := range prices {
		if err := checkPrice(p); err != nil {
			cfgErr.fields[i] = true
			cfgErr.causes[i] = err
			failed = true
		}
	}
	if failed {
		return FilterConfig{}, cfgErr
	}

	return FilterConfig{
		IncludeSilverBordered: includeSilverBordered,
		CommonPrice:           prices[FieldCommon],
		UncommonPrice:         prices[FieldUncommon],
		RarePrice:             prices[FieldRare],
		LandPrice:             prices[FieldLand],
	}, nil
}

// ParseFilterConfig parses and validates the four price strings as entered by
// a user, in common, uncommon, rare, land order.
func ParseFilterConfig(includeSilverBordered bool, prices [NumPriceFields]string) (FilterConfig, error) {
	cfgErr := &ConfigError{}
	failed := false
	var values [NumPriceFields]float64

	for i, raw := range prices {
		v, err := ParsePrice(raw)
		if err != nil {
			cfgErr.fields[i] = true
			cfgErr.causes[i] = err
			failed = true
			continue
		}
		values[i] = v
	}
	if failed {
		return FilterConfig{}, cfgErr
	}

	return NewFilterConfig(includeSilverBordered, values)
}

// ParsePrice parses a single non-negative decimal price.
func ParsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%s is negative", s)
	}
	if !decimalPattern.MatchString(s) {
		return 0, fmt.Errorf("%q is not a decimal number", raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a decimal number: %w", raw, err)
	}
	if err := checkPrice(v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkPrice(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%v is not finite", v)
	}
	if v < 0 {
		return fmt.Errorf("%v is negative", v)
	}
	return nil
}
