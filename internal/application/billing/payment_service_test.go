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
)

type paymentServiceMocks struct {
	payments  *MockPaymentRepository
	receipts  *MockReceiptRepository
	contracts *MockContractRepository
	units     *MockUnitRepository
	params    *MockParametersRepository
}

func newTestPaymentService() (*PaymentService, *paymentServiceMocks) {
	m := &paymentServiceMocks{
		payments:  new(MockPaymentRepository),
		receipts:  new(MockReceiptRepository),
		contracts: new(MockContractRepository),
		units:     new(MockUnitRepository),
		params:    new(MockParametersRepository),
	}
	svc := NewPaymentService(m.payments, m.receipts, m.contracts, m.units, m.params, zap.NewNop())
	return svc, m
}

// expectPolicies wires the receipt's contract, unit and property
// parameters so partial payments resolve the property's policies
func expectPolicies(t *testing.T, m *paymentServiceMocks, configure func(*property.SystemParameters)) *billing.Receipt {
	t.Helper()
	unit := newBilledUnit(t, 10000)
	contract := newTestContract(t, unit.ID, 10000, 10000)
	receipt := newIssuedReceipt(t, contract.ID, billing.BillingPeriod{Year: 2023, Month: 8}, 10000)

	params := newBillingParameters(t, unit.PropertyID)
	if configure != nil {
		configure(params)
	}

	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)
	m.params.On("FindByProperty", mock.Anything, unit.PropertyID).Return(params, nil)
	return receipt
}

func TestPaymentService_RecordPayment_PartialThenPaid(t *testing.T) {
	svc, m := newTestPaymentService()
	receipt := expectPolicies(t, m, nil)

	m.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	m.receipts.On("Save", mock.Anything, receipt).Return(nil)
	m.payments.On("Save", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)

	paymentDate := time.Date(2023, 8, 5, 0, 0, 0, 0, time.UTC)

	info, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		ReceiptID:   receipt.ID,
		Amount:      decimal.NewFromInt(4000),
		PaymentDate: paymentDate,
		Method:      "mpesa",
		Reference:   "QA12BC34DE",
	})
	require.NoError(t, err)
	assert.Equal(t, "4000.00", info.Amount)
	assert.Equal(t, "mpesa", info.Method)
	assert.Equal(t, billing.ReceiptStatusPartial, receipt.Status)

	_, err = svc.RecordPayment(context.Background(), RecordPaymentInput{
		ReceiptID:   receipt.ID,
		Amount:      decimal.NewFromInt(6000),
		PaymentDate: paymentDate.AddDate(0, 0, 3),
		Method:      "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, billing.ReceiptStatusPaid, receipt.Status)
	assert.Equal(t, "0.00", receipt.Balance().StringFixed(2))
	m.payments.AssertNumberOfCalls(t, "Save", 2)
}

func TestPaymentService_RecordPayment_PartialNotAllowed(t *testing.T) {
	svc, m := newTestPaymentService()
	receipt := expectPolicies(t, m, func(params *property.SystemParameters) {
		params.Policies.AllowPartialPayments = false
	})

	m.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		ReceiptID:   receipt.ID,
		Amount:      decimal.NewFromInt(4000),
		PaymentDate: time.Now(),
		Method:      "mpesa",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PARTIAL_PAYMENT_NOT_ALLOWED", domainErr.Code)
	m.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Equal(t, billing.ReceiptStatusPending, receipt.Status)

	// Settling in full is still accepted
	m.receipts.On("Save", mock.Anything, receipt).Return(nil)
	m.payments.On("Save", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)

	_, err = svc.RecordPayment(context.Background(), RecordPaymentInput{
		ReceiptID:   receipt.ID,
		Amount:      decimal.NewFromInt(10000),
		PaymentDate: time.Now(),
		Method:      "mpesa",
	})
	require.NoError(t, err)
	assert.Equal(t, billing.ReceiptStatusPaid, receipt.Status)
}

func TestPaymentService_RecordPayment_RejectsZeroAmount(t *testing.T) {
	svc, m := newTestPaymentService()
	receipt := newIssuedReceipt(t, uuid.New(), billing.BillingPeriod{Year: 2023, Month: 8}, 10000)

	m.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		ReceiptID:   receipt.ID,
		Amount:      decimal.Zero,
		PaymentDate: time.Now(),
		Method:      "cash",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	m.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Equal(t, billing.ReceiptStatusPending, receipt.Status)
}

func TestPaymentService_RecordPayment_UnknownMethod(t *testing.T) {
	svc, m := newTestPaymentService()
	receipt := newIssuedReceipt(t, uuid.New(), billing.BillingPeriod{Year: 2023, Month: 8}, 10000)

	m.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		ReceiptID:   receipt.ID,
		Amount:      decimal.NewFromInt(1000),
		PaymentDate: time.Now(),
		Method:      "barter",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PAYMENT_METHOD", domainErr.Code)
	m.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPaymentService_RecordPayment_OverpaymentStillSettles(t *testing.T) {
	svc, m := newTestPaymentService()
	receipt := newIssuedReceipt(t, uuid.New(), billing.BillingPeriod{Year: 2023, Month: 8}, 10000)

	m.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	m.receipts.On("Save", mock.Anything, receipt).Return(nil)
	m.payments.On("Save", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		ReceiptID:   receipt.ID,
		Amount:      decimal.NewFromInt(12000),
		PaymentDate: time.Now(),
		Method:      "bank_transfer",
		Reference:   "FT2308001",
	})

	require.NoError(t, err)
	assert.Equal(t, billing.ReceiptStatusPaid, receipt.Status)
	assert.Equal(t, "-2000.00", receipt.Balance().StringFixed(2))
}

func TestPaymentService_UpdateNotes(t *testing.T) {
	svc, m := newTestPaymentService()
	receipt := newIssuedReceipt(t, uuid.New(), billing.BillingPeriod{Year: 2023, Month: 8}, 10000)

	payment, err := billing.NewPayment(receipt.ID, receipt.ContractID,
		receipt.Total, time.Now(), billing.PaymentMethodMpesa, "QA12BC34DE")
	require.NoError(t, err)

	m.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
	m.payments.On("Save", mock.Anything, payment).Return(nil)

	info, err := svc.UpdateNotes(context.Background(), payment.ID, "paid by relative")

	require.NoError(t, err)
	assert.Equal(t, "paid by relative", info.Notes)
	m.payments.AssertExpectations(t)
}
