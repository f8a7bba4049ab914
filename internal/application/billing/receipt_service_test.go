package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pms/backend/internal/domain/billing"
	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/pms/backend/internal/domain/tenancy"
)

type receiptServiceMocks struct {
	receipts   *MockReceiptRepository
	contracts  *MockContractRepository
	units      *MockUnitRepository
	properties *MockPropertyRepository
	params     *MockParametersRepository
}

func newTestReceiptService() (*ReceiptService, *receiptServiceMocks) {
	m := &receiptServiceMocks{
		receipts:   new(MockReceiptRepository),
		contracts:  new(MockContractRepository),
		units:      new(MockUnitRepository),
		properties: new(MockPropertyRepository),
		params:     new(MockParametersRepository),
	}
	svc := NewReceiptService(m.receipts, m.contracts, m.units, m.properties, m.params, zap.NewNop())
	return svc, m
}

func newTestContract(t *testing.T, unitID uuid.UUID, rent, deposit int64) *tenancy.Contract {
	t.Helper()
	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	contract, err := tenancy.NewContract(uuid.New(), unitID, start, start.AddDate(1, 0, 0),
		valueobject.NewMoneyKES(decimal.NewFromInt(rent)),
		valueobject.NewMoneyKES(decimal.NewFromInt(deposit)))
	require.NoError(t, err)
	return contract
}

func newBilledUnit(t *testing.T, rent int64) *property.Unit {
	t.Helper()
	unit, err := property.NewUnit(uuid.New(), "B-07", property.UnitTypeBedsitter,
		valueobject.NewMoneyKES(decimal.NewFromInt(rent)))
	require.NoError(t, err)
	return unit
}

func newBillingParameters(t *testing.T, propertyID uuid.UUID) *property.SystemParameters {
	t.Helper()
	params, err := property.NewSystemParameters(propertyID)
	require.NoError(t, err)
	return params
}

func newIssuedReceipt(t *testing.T, contractID uuid.UUID, period billing.BillingPeriod, rent int64) *billing.Receipt {
	t.Helper()
	sheet := billing.ZeroChargeSheet()
	sheet.MonthlyRent = valueobject.NewMoneyKES(decimal.NewFromInt(rent))
	receipt, err := billing.NewReceipt(contractID, billing.ReceiptNumber(1, period, 1),
		period, sheet, property.DefaultChargeToggles())
	require.NoError(t, err)
	return receipt
}

func TestReceiptService_CreateReceipt_UsesContractRent(t *testing.T) {
	svc, m := newTestReceiptService()
	unit := newBilledUnit(t, 10000)
	contract := newTestContract(t, unit.ID, 10000, 10000)
	period := billing.BillingPeriod{Year: 2023, Month: 7}

	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	m.receipts.On("FindByContractAndPeriod", mock.Anything, contract.ID, period).
		Return(nil, shared.ErrNotFound)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)
	m.params.On("FindByProperty", mock.Anything, unit.PropertyID).
		Return(newBillingParameters(t, unit.PropertyID), nil)
	m.receipts.On("FindByContract", mock.Anything, contract.ID, mock.Anything).
		Return([]billing.Receipt{}, nil)
	m.receipts.On("NextSequence", mock.Anything).Return(int64(42), nil)
	m.receipts.On("Save", mock.Anything, mock.AnythingOfType("*billing.Receipt")).Return(nil)

	info, err := svc.CreateReceipt(context.Background(), CreateReceiptInput{
		ContractID: contract.ID,
		Period:     "2023-7",
	})

	require.NoError(t, err)
	assert.Equal(t, "RCT-42-202307-1", info.ReceiptNumber)
	assert.Equal(t, 2023, info.PeriodYear)
	assert.Equal(t, 7, info.PeriodMonth)
	assert.Equal(t, "10000.00", info.Total)
	assert.Equal(t, "pending", info.Status)
	m.receipts.AssertExpectations(t)
}

func TestReceiptService_CreateReceipt_DuplicatePeriod(t *testing.T) {
	svc, m := newTestReceiptService()
	unit := newBilledUnit(t, 10000)
	contract := newTestContract(t, unit.ID, 10000, 10000)
	period := billing.BillingPeriod{Year: 2023, Month: 7}
	existing := newIssuedReceipt(t, contract.ID, period, 10000)

	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	m.receipts.On("FindByContractAndPeriod", mock.Anything, contract.ID, period).
		Return(existing, nil)

	_, err := svc.CreateReceipt(context.Background(), CreateReceiptInput{
		ContractID: contract.ID,
		Period:     "2023-7",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "RECEIPT_EXISTS", domainErr.Code)
	m.receipts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReceiptService_CreateReceipt_BadPeriod(t *testing.T) {
	svc, _ := newTestReceiptService()

	_, err := svc.CreateReceipt(context.Background(), CreateReceiptInput{
		ContractID: uuid.New(),
		Period:     "July 2023",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
}

func TestReceiptService_GenerateMonthly_SkipsExistingAndAddsFirstDeposit(t *testing.T) {
	svc, m := newTestReceiptService()
	prop, err := property.NewProperty("Sunrise Court", "Ngong Road, Nairobi")
	require.NoError(t, err)

	billed := newTestContract(t, uuid.New(), 10000, 10000)
	skipped := newTestContract(t, uuid.New(), 8000, 8000)
	period := billing.BillingPeriod{Year: 2023, Month: 8}
	prev := billing.BillingPeriod{Year: 2023, Month: 7}

	params := newBillingParameters(t, prop.ID)
	params.Policies.AutoGenerateReceipts = true

	m.properties.On("FindActive", mock.Anything).Return([]property.Property{*prop}, nil)
	m.params.On("FindByProperty", mock.Anything, prop.ID).Return(params, nil)
	m.contracts.On("FindActiveByProperty", mock.Anything, prop.ID).
		Return([]tenancy.Contract{*billed, *skipped}, nil)

	// the skipped contract already has a receipt for the period
	m.receipts.On("FindByContractAndPeriod", mock.Anything, skipped.ID, period).
		Return(newIssuedReceipt(t, skipped.ID, period, 8000), nil)

	// the billed contract has no receipt at all, so the deposit rides along
	m.receipts.On("FindByContractAndPeriod", mock.Anything, billed.ID, period).
		Return(nil, shared.ErrNotFound)
	m.receipts.On("FindByContractAndPeriod", mock.Anything, billed.ID, prev).
		Return(nil, shared.ErrNotFound)
	m.receipts.On("FindByContract", mock.Anything, billed.ID, mock.Anything).
		Return([]billing.Receipt{}, nil)
	m.receipts.On("NextSequence", mock.Anything).Return(int64(7), nil)

	var issued *billing.Receipt
	m.receipts.On("Save", mock.Anything, mock.AnythingOfType("*billing.Receipt")).
		Run(func(args mock.Arguments) { issued = args.Get(1).(*billing.Receipt) }).
		Return(nil)

	result, err := svc.GenerateMonthly(context.Background(), GenerateMonthlyInput{Period: "2023-8"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	require.NotNil(t, issued)
	assert.Equal(t, billed.ID, issued.ContractID)
	assert.Equal(t, "20000.00", issued.Total.StringFixed(2)) // rent plus rental deposit
}

func TestReceiptService_CreateReceipt_FirstReceiptNeedsWaterDeposit(t *testing.T) {
	svc, m := newTestReceiptService()
	unit := newBilledUnit(t, 10000)
	contract := newTestContract(t, unit.ID, 10000, 10000)
	period := billing.BillingPeriod{Year: 2023, Month: 7}

	params := newBillingParameters(t, unit.PropertyID)
	params.Policies.RequireWaterDeposit = true

	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	m.receipts.On("FindByContractAndPeriod", mock.Anything, contract.ID, period).
		Return(nil, shared.ErrNotFound)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)
	m.params.On("FindByProperty", mock.Anything, unit.PropertyID).Return(params, nil)
	m.receipts.On("FindByContract", mock.Anything, contract.ID, mock.Anything).
		Return([]billing.Receipt{}, nil)

	_, err := svc.CreateReceipt(context.Background(), CreateReceiptInput{
		ContractID: contract.ID,
		Period:     "2023-7",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "WATER_DEPOSIT_REQUIRED", domainErr.Code)
	m.receipts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

	// Supplying the deposit satisfies the policy
	m.receipts.On("NextSequence", mock.Anything).Return(int64(9), nil)
	m.receipts.On("Save", mock.Anything, mock.AnythingOfType("*billing.Receipt")).Return(nil)

	waterDeposit := decimal.NewFromInt(2500)
	info, err := svc.CreateReceipt(context.Background(), CreateReceiptInput{
		ContractID: contract.ID,
		Period:     "2023-7",
		Charges:    ChargesInput{WaterDeposit: &waterDeposit},
	})

	require.NoError(t, err)
	assert.Equal(t, "12500.00", info.Total)
}

func TestReceiptService_GenerateMonthly_SkipsOptedOutProperties(t *testing.T) {
	svc, m := newTestReceiptService()
	prop, err := property.NewProperty("Sunrise Court", "Ngong Road, Nairobi")
	require.NoError(t, err)

	// AutoGenerateReceipts defaults to off
	m.properties.On("FindActive", mock.Anything).Return([]property.Property{*prop}, nil)
	m.params.On("FindByProperty", mock.Anything, prop.ID).
		Return(newBillingParameters(t, prop.ID), nil)

	result, err := svc.GenerateMonthly(context.Background(), GenerateMonthlyInput{Period: "2023-8"})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Generated)
	m.contracts.AssertNotCalled(t, "FindActiveByProperty", mock.Anything, mock.Anything)
}

func TestReceiptService_GenerateMonthly_CarriesBalanceForward(t *testing.T) {
	svc, m := newTestReceiptService()
	prop, err := property.NewProperty("Sunrise Court", "Ngong Road, Nairobi")
	require.NoError(t, err)

	contract := newTestContract(t, uuid.New(), 10000, 10000)
	period := billing.BillingPeriod{Year: 2023, Month: 8}
	prev := billing.BillingPeriod{Year: 2023, Month: 7}

	julyReceipt := newIssuedReceipt(t, contract.ID, prev, 10000)
	require.NoError(t, julyReceipt.ApplyPayment(valueobject.NewMoneyKES(decimal.NewFromInt(6000))))

	m.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)
	m.params.On("FindByProperty", mock.Anything, prop.ID).
		Return(newBillingParameters(t, prop.ID), nil)
	m.contracts.On("FindActiveByProperty", mock.Anything, prop.ID).
		Return([]tenancy.Contract{*contract}, nil)
	m.receipts.On("FindByContractAndPeriod", mock.Anything, contract.ID, period).
		Return(nil, shared.ErrNotFound)
	m.receipts.On("FindByContractAndPeriod", mock.Anything, contract.ID, prev).
		Return(julyReceipt, nil)
	m.receipts.On("FindByContract", mock.Anything, contract.ID, mock.Anything).
		Return([]billing.Receipt{*julyReceipt}, nil)
	m.receipts.On("NextSequence", mock.Anything).Return(int64(8), nil)

	var issued *billing.Receipt
	m.receipts.On("Save", mock.Anything, mock.AnythingOfType("*billing.Receipt")).
		Run(func(args mock.Arguments) { issued = args.Get(1).(*billing.Receipt) }).
		Return(nil)

	result, err := svc.GenerateMonthly(context.Background(), GenerateMonthlyInput{
		Period:     "2023-8",
		PropertyID: &prop.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	require.NotNil(t, issued)
	assert.Equal(t, "4000.00", issued.Charges.PreviousBalance.StringFixed(2))
	assert.Equal(t, "14000.00", issued.Total.StringFixed(2))
	assert.True(t, issued.Charges.RentalDeposit.IsZero()) // not the first receipt
}

func TestReceiptService_GenerateMonthly_InactiveProperty(t *testing.T) {
	svc, m := newTestReceiptService()
	prop, err := property.NewProperty("Sunrise Court", "Ngong Road, Nairobi")
	require.NoError(t, err)
	prop.IsActive = false

	m.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)

	_, err = svc.GenerateMonthly(context.Background(), GenerateMonthlyInput{
		Period:     "2023-8",
		PropertyID: &prop.ID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PROPERTY_INACTIVE", domainErr.Code)
	m.receipts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReceiptService_RecordWaterReadings_ComputesBill(t *testing.T) {
	svc, m := newTestReceiptService()
	unit := newBilledUnit(t, 10000)
	contract := newTestContract(t, unit.ID, 10000, 10000)
	receipt := newIssuedReceipt(t, contract.ID, billing.BillingPeriod{Year: 2023, Month: 8}, 10000)

	params := newBillingParameters(t, unit.PropertyID)
	params.WaterUnitCost = decimal.NewFromInt(120)

	m.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)
	m.params.On("FindByProperty", mock.Anything, unit.PropertyID).Return(params, nil)
	m.receipts.On("Save", mock.Anything, receipt).Return(nil)

	info, err := svc.RecordWaterReadings(context.Background(), RecordWaterReadingsInput{
		ReceiptID:       receipt.ID,
		PreviousReading: decimal.NewFromInt(110),
		CurrentReading:  decimal.NewFromInt(115),
	})

	require.NoError(t, err)
	assert.Equal(t, "600.00", receipt.Charges.WaterBill.StringFixed(2))
	assert.Equal(t, "10600.00", info.Total)
	assert.Equal(t, "110", info.PreviousWaterReading)
	assert.Equal(t, "115", info.CurrentWaterReading)
}

func TestReceiptService_RecordWaterReadings_RejectsBackwardsMeter(t *testing.T) {
	svc, m := newTestReceiptService()
	unit := newBilledUnit(t, 10000)
	contract := newTestContract(t, unit.ID, 10000, 10000)
	receipt := newIssuedReceipt(t, contract.ID, billing.BillingPeriod{Year: 2023, Month: 8}, 10000)

	m.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)
	m.params.On("FindByProperty", mock.Anything, unit.PropertyID).
		Return(newBillingParameters(t, unit.PropertyID), nil)

	_, err := svc.RecordWaterReadings(context.Background(), RecordWaterReadingsInput{
		ReceiptID:       receipt.ID,
		PreviousReading: decimal.NewFromInt(115),
		CurrentReading:  decimal.NewFromInt(110),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_READING", domainErr.Code)
	m.receipts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReceiptService_DeleteReceipt_WithPayments(t *testing.T) {
	svc, m := newTestReceiptService()
	receipt := newIssuedReceipt(t, uuid.New(), billing.BillingPeriod{Year: 2023, Month: 8}, 10000)
	require.NoError(t, receipt.ApplyPayment(valueobject.NewMoneyKES(decimal.NewFromInt(500))))

	m.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)

	err := svc.DeleteReceipt(context.Background(), receipt.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "RECEIPT_HAS_PAYMENTS", domainErr.Code)
	m.receipts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReceiptService_DeleteReceipt_Unpaid(t *testing.T) {
	svc, m := newTestReceiptService()
	receipt := newIssuedReceipt(t, uuid.New(), billing.BillingPeriod{Year: 2023, Month: 8}, 10000)

	m.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	m.receipts.On("Delete", mock.Anything, receipt.ID).Return(nil)

	require.NoError(t, svc.DeleteReceipt(context.Background(), receipt.ID))
	m.receipts.AssertExpectations(t)
}
