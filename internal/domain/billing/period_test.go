package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBillingPeriod(t *testing.T) {
	p, err := ParseBillingPeriod("2023-7")
	require.NoError(t, err)
	assert.Equal(t, 2023, p.Year)
	assert.Equal(t, 7, p.Month)
	assert.Equal(t, "202307", p.String())

	p, err = ParseBillingPeriod("2024-12")
	require.NoError(t, err)
	assert.Equal(t, "202412", p.String())
}

func TestParseBillingPeriod_Invalid(t *testing.T) {
	for _, s := range []string{"", "2023", "2023-13", "2023-0", "abcd-7", "2023-x"} {
		_, err := ParseBillingPeriod(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestBillingPeriod_Next(t *testing.T) {
	p := BillingPeriod{Year: 2023, Month: 12}
	next := p.Next()
	assert.Equal(t, 2024, next.Year)
	assert.Equal(t, 1, next.Month)

	next = BillingPeriod{Year: 2023, Month: 6}.Next()
	assert.Equal(t, 7, next.Month)
}

func TestExtractBillingPeriod(t *testing.T) {
	tests := []struct {
		receiptNumber string
		expected      string
	}{
		{"RCT-18-202307-1", "202307"},
		{"RCT-5-202412-3", "202412"},
		{"INV-001", ""},
		{"", ""},
		{"202301-202302", "202301"}, // first match wins
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ExtractBillingPeriod(tt.receiptNumber), "input %q", tt.receiptNumber)
	}
}

func TestReceiptNumber(t *testing.T) {
	p := BillingPeriod{Year: 2023, Month: 7}
	number := ReceiptNumber(18, p, 1)
	assert.Equal(t, "RCT-18-202307-1", number)
	assert.Equal(t, "202307", ExtractBillingPeriod(number))
}
