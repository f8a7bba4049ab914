package billing

import (
	"fmt"
	"math"
	"time"

	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ComputeDeposit derives the rental deposit from the agreed rent and the
// property's configured number of deposit months. Fractional months are
// allowed; zero months yields a zero deposit. The result is rounded to
// two decimal places.
func ComputeDeposit(rent valueobject.Money, depositMonths decimal.Decimal) valueobject.Money {
	return rent.Multiply(depositMonths).Round(2)
}

// ChargeSheet captures every amount that can appear on a receipt for one
// billing period. Deposits are only populated on a tenant's first
// receipt; PreviousBalance may be negative when the tenant is in credit.
type ChargeSheet struct {
	MonthlyRent          valueobject.Money
	WaterBill            valueobject.Money
	ElectricityBill      valueobject.Money
	ServiceCharge        valueobject.Money
	SecurityCharge       valueobject.Money
	OtherCharges         valueobject.Money
	RentalDeposit        valueobject.Money
	WaterDeposit         valueobject.Money
	ElectricityDeposit   valueobject.Money
	PreviousBalance      valueobject.Money
	PreviousWaterReading decimal.Decimal
	CurrentWaterReading  decimal.Decimal
}

// ZeroChargeSheet returns a sheet with every line at zero KES
func ZeroChargeSheet() ChargeSheet {
	z := valueobject.ZeroKES()
	return ChargeSheet{
		MonthlyRent:        z,
		WaterBill:          z,
		ElectricityBill:    z,
		ServiceCharge:      z,
		SecurityCharge:     z,
		OtherCharges:       z,
		RentalDeposit:      z,
		WaterDeposit:       z,
		ElectricityDeposit: z,
		PreviousBalance:    z,
	}
}

// ComputeReceiptTotal sums the charge sheet into the receipt total.
//
// Rent, deposits and the previous balance always participate. The
// metered and flat charge lines participate only when the property's
// toggle for that line is enabled; a disabled line is excluded even when
// a positive amount was captured for it. The previous balance may drive
// the total negative; no clamping is applied.
func ComputeReceiptTotal(sheet ChargeSheet, toggles property.ChargeToggles) valueobject.Money {
	total := sheet.MonthlyRent

	if toggles.HasWaterBill {
		total = total.MustAdd(sheet.WaterBill)
	}
	if toggles.HasElectricityBill {
		total = total.MustAdd(sheet.ElectricityBill)
	}
	if toggles.HasServiceCharge {
		total = total.MustAdd(sheet.ServiceCharge)
	}
	if toggles.HasSecurityCharge {
		total = total.MustAdd(sheet.SecurityCharge)
	}
	if toggles.HasOtherCharges {
		total = total.MustAdd(sheet.OtherCharges)
	}

	total = total.MustAdd(sheet.RentalDeposit)
	total = total.MustAdd(sheet.WaterDeposit)
	total = total.MustAdd(sheet.ElectricityDeposit)
	total = total.MustAdd(sheet.PreviousBalance)

	return total.Round(2)
}

// ReceiptLine is one printable line on an itemized receipt
type ReceiptLine struct {
	Label  string            `json:"label"`
	Amount valueobject.Money `json:"amount"`
}

// ItemizedLines renders the charge sheet as printable lines. Only lines
// that participate in the total and carry a positive amount appear.
func ItemizedLines(sheet ChargeSheet, toggles property.ChargeToggles) []ReceiptLine {
	candidates := []struct {
		label   string
		amount  valueobject.Money
		enabled bool
	}{
		{"Monthly Rent", sheet.MonthlyRent, true},
		{"Rental Deposit", sheet.RentalDeposit, true},
		{"Water Deposit", sheet.WaterDeposit, true},
		{"Electricity Deposit", sheet.ElectricityDeposit, true},
		{"Water Bill", sheet.WaterBill, toggles.HasWaterBill},
		{"Electricity Bill", sheet.ElectricityBill, toggles.HasElectricityBill},
		{"Service Charge", sheet.ServiceCharge, toggles.HasServiceCharge},
		{"Security Charge", sheet.SecurityCharge, toggles.HasSecurityCharge},
		{"Other Charges", sheet.OtherCharges, toggles.HasOtherCharges},
		{"Previous Balance", sheet.PreviousBalance, true},
	}

	lines := make([]ReceiptLine, 0, len(candidates))
	for _, c := range candidates {
		if c.enabled && c.amount.IsPositive() {
			lines = append(lines, ReceiptLine{Label: c.label, Amount: c.amount})
		}
	}
	return lines
}

// Duration is the rent-friendly length of a contract. Months are derived
// from elapsed days with every month counted as 30 days, so an eleven
// month tenancy over a leap year still bills eleven months.
type Duration struct {
	Days   int
	Months int
	Years  int
}

// ContractDuration measures the span between two dates. The order of the
// arguments does not matter; the absolute span is used. Days are rounded
// up, months truncate at 30 days per month and years at 12 months.
func ContractDuration(start, end time.Time) Duration {
	span := end.Sub(start)
	if span < 0 {
		span = -span
	}
	days := int(math.Ceil(span.Hours() / 24))
	months := days / 30
	return Duration{
		Days:   days,
		Months: months,
		Years:  months / 12,
	}
}

// Format renders the duration the way it appears on contracts
func (d Duration) Format() string {
	if d.Months == 0 {
		return "Less than a month"
	}
	if d.Years == 0 {
		return fmt.Sprintf("%d %s", d.Months, pluralize("month", d.Months))
	}
	rem := d.Months % 12
	if rem == 0 {
		return fmt.Sprintf("%d %s", d.Years, pluralize("year", d.Years))
	}
	return fmt.Sprintf("%d %s %d %s", d.Years, pluralize("year", d.Years), rem, pluralize("month", rem))
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
