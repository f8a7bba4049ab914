package billing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pms/backend/internal/domain/shared"
)

// BillingPeriod identifies the month a receipt bills for. It is stored
// structurally rather than being recovered from the receipt number.
type BillingPeriod struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NewBillingPeriod creates a validated billing period
func NewBillingPeriod(year, month int) (BillingPeriod, error) {
	if year < 2000 || year > 2200 {
		return BillingPeriod{}, shared.NewDomainError("INVALID_PERIOD", "Year out of range")
	}
	if month < 1 || month > 12 {
		return BillingPeriod{}, shared.NewDomainError("INVALID_PERIOD", "Month must be between 1 and 12")
	}
	return BillingPeriod{Year: year, Month: month}, nil
}

// ParseBillingPeriod parses the "YYYY-M" form used by the console,
// e.g. "2023-7" or "2023-12".
func ParseBillingPeriod(s string) (BillingPeriod, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return BillingPeriod{}, shared.NewDomainError("INVALID_PERIOD", "Expected period in YYYY-M form")
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return BillingPeriod{}, shared.NewDomainError("INVALID_PERIOD", "Invalid year in period")
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return BillingPeriod{}, shared.NewDomainError("INVALID_PERIOD", "Invalid month in period")
	}
	return NewBillingPeriod(year, month)
}

// String returns the compact YYYYMM form used inside receipt numbers
func (p BillingPeriod) String() string {
	return fmt.Sprintf("%04d%02d", p.Year, p.Month)
}

// IsZero returns true for the zero period
func (p BillingPeriod) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Next returns the following month
func (p BillingPeriod) Next() BillingPeriod {
	if p.Month == 12 {
		return BillingPeriod{Year: p.Year + 1, Month: 1}
	}
	return BillingPeriod{Year: p.Year, Month: p.Month + 1}
}

var periodToken = regexp.MustCompile(`\d{6}`)

// ExtractBillingPeriod recovers the YYYYMM token from a legacy receipt
// number such as "RCT-18-202307-1". It returns the first run of six
// digits, or the empty string when the number carries none.
func ExtractBillingPeriod(receiptNumber string) string {
	return periodToken.FindString(receiptNumber)
}

// ReceiptNumber formats a receipt number for the given contract
// sequence, period and per-period counter, e.g. "RCT-18-202307-1".
func ReceiptNumber(sequence int64, period BillingPeriod, counter int) string {
	return fmt.Sprintf("RCT-%d-%s-%d", sequence, period.String(), counter)
}
