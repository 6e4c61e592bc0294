package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

var (
	errAbsent    = errors.New("is required")
	errMalformed = errors.New("is malformed")
	errNegative  = errors.New("must not be negative")
	errNotPos    = errors.New("must be positive")
	errFraction  = errors.New("must be a whole number")
	errTooLarge  = fmt.Errorf("must not exceed %d", valueobject.MaxQuantity)
)

var maxQuantity = decimal.NewFromInt(valueobject.MaxQuantity)

// timestampLayouts are tried in order for last-order timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func absent(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	default:
		return false
	}
}

func stringField(v any) (string, error) {
	if absent(v) {
		return "", errAbsent
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), nil
	case json.Number:
		return x.String(), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	default:
		return "", errMalformed
	}
}

func decimalField(v any) (decimal.Decimal, error) {
	if absent(v) {
		return decimal.Zero, errAbsent
	}
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case float32:
		return decimal.NewFromFloat32(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero, errMalformed
		}
		return d, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero, errMalformed
		}
		return d, nil
	default:
		return decimal.Zero, errMalformed
	}
}

func timeField(v any) (time.Time, error) {
	if absent(v) {
		return time.Time{}, errAbsent
	}
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, errMalformed
	default:
		return time.Time{}, errMalformed
	}
}
