package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

func TestParseContractTerms(t *testing.T) {
	tests := []struct {
		input   string
		days    int
		wantErr bool
	}{
		{"NET30", 30, false},
		{"net15", 15, false},
		{" NET45 ", 45, false},
		{"NET", 0, true},
		{"NET0", 0, true},
		{"NET400", 0, true},
		{"30 days", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			terms, err := valueobject.ParseContractTerms(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.days, terms.Days())
		})
	}
}

func TestContractTerms_IsNet30(t *testing.T) {
	assert.True(t, valueobject.DefaultContractTerms.IsNet30())
	assert.Equal(t, "NET30", valueobject.DefaultContractTerms.String())

	net15, err := valueobject.ParseContractTerms("NET15")
	require.NoError(t, err)
	assert.False(t, net15.IsNet30())
	assert.True(t, valueobject.ContractTerms{}.IsZero())
}

func TestUnrecognizedContractTerms(t *testing.T) {
	terms := valueobject.UnrecognizedContractTerms(" 30 days ")
	assert.Equal(t, "30 days", terms.String())
	assert.False(t, terms.IsNet30())
	assert.False(t, terms.IsRecognized())
	assert.False(t, terms.IsZero())

	assert.Equal(t, terms, valueobject.ContractTermsFromStored("30 days"))
	assert.Equal(t, valueobject.DefaultContractTerms, valueobject.ContractTermsFromStored("NET30"))
}

func TestValidationModeFromString(t *testing.T) {
	m, err := valueobject.ValidationModeFromString("strict")
	require.NoError(t, err)
	assert.True(t, m.IsStrict())

	m, err = valueobject.ValidationModeFromString("Default-Fill")
	require.NoError(t, err)
	assert.Equal(t, valueobject.ValidationDefaultFill, m)

	_, err = valueobject.ValidationModeFromString("lenient")
	assert.Error(t, err)
}
