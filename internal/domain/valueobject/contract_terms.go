package valueobject

import (
	"fmt"
	"strconv"
	"strings"
)

// ContractTerms are net payment terms such as NET30. Terms that do not parse
// can still be carried verbatim; they are never NET30.
type ContractTerms struct {
	raw  string
	days int
}

// DefaultContractTerms applies when an invoice carries no terms.
var DefaultContractTerms = ContractTerms{raw: "NET30", days: 30}

// ParseContractTerms accepts NET<days>, case-insensitive, with days in 1..365.
func ParseContractTerms(s string) (ContractTerms, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	rest, ok := strings.CutPrefix(norm, "NET")
	if !ok || rest == "" {
		return ContractTerms{}, fmt.Errorf("invalid contract terms: %q", s)
	}
	days, err := strconv.Atoi(rest)
	if err != nil || days < 1 || days > 365 {
		return ContractTerms{}, fmt.Errorf("invalid contract terms: %q", s)
	}
	return ContractTerms{raw: norm, days: days}, nil
}

// UnrecognizedContractTerms keeps terms that failed to parse.
func UnrecognizedContractTerms(s string) ContractTerms {
	return ContractTerms{raw: strings.TrimSpace(s)}
}

// Days returns the payment window in days, 0 when unrecognized.
func (c ContractTerms) Days() int {
	return c.days
}

// IsNet30 reports whether these are exactly NET30 terms.
func (c ContractTerms) IsNet30() bool {
	return c.days == 30
}

// IsRecognized reports whether the terms parsed as NET<days>.
func (c ContractTerms) IsRecognized() bool {
	return c.days > 0
}

func (c ContractTerms) String() string {
	return c.raw
}

func (c ContractTerms) IsZero() bool {
	return c.raw == ""
}

func (c ContractTerms) Equal(other ContractTerms) bool {
	return c.raw == other.raw && c.days == other.days
}

// ContractTermsFromStored rebuilds terms persisted via String.
func ContractTermsFromStored(s string) ContractTerms {
	if t, err := ParseContractTerms(s); err == nil {
		return t
	}
	return UnrecognizedContractTerms(s)
}
