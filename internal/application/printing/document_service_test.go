package printing

import (
	"context"
	"strings"
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
	"github.com/pms/backend/internal/infrastructure/printing"
)

// MockReceiptRepository is a mock implementation of billing.ReceiptRepository
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Receipt, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) Save(ctx context.Context, receipt *billing.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReceiptRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceiptRepository) FindByContract(ctx context.Context, contractID uuid.UUID, filter shared.Filter) ([]billing.Receipt, error) {
	args := m.Called(ctx, contractID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*billing.Receipt, error) {
	args := m.Called(ctx, receiptNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindByContractAndPeriod(ctx context.Context, contractID uuid.UUID, period billing.BillingPeriod) (*billing.Receipt, error) {
	args := m.Called(ctx, contractID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindOutstanding(ctx context.Context, filter shared.Filter) ([]billing.Receipt, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) NextSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockContractRepository is a mock implementation of tenancy.ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Contract), args.Error(1)
}

func (m *MockContractRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.Contract, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Contract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, contract *tenancy.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContractRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContractRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]tenancy.Contract, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByUnit(ctx context.Context, unitID uuid.UUID, filter shared.Filter) ([]tenancy.Contract, error) {
	args := m.Called(ctx, unitID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Contract), args.Error(1)
}

func (m *MockContractRepository) FindActiveByUnit(ctx context.Context, unitID uuid.UUID) (*tenancy.Contract, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Contract), args.Error(1)
}

func (m *MockContractRepository) FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]tenancy.Contract, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Contract), args.Error(1)
}

func (m *MockContractRepository) FindExpiringBefore(ctx context.Context, cutoff time.Time, filter shared.Filter) ([]tenancy.Contract, error) {
	args := m.Called(ctx, cutoff, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Contract), args.Error(1)
}

func (m *MockContractRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of tenancy.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *tenancy.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*tenancy.Customer, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDNumber(ctx context.Context, idNumber string) (*tenancy.Customer, error) {
	args := m.Called(ctx, idNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	args := m.Called(ctx, phoneNumber)
	return args.Bool(0), args.Error(1)
}

// MockUnitRepository is a mock implementation of property.UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Unit, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Unit), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *property.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUnitRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]property.Unit, error) {
	args := m.Called(ctx, propertyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByUnitNumber(ctx context.Context, propertyID uuid.UUID, unitNumber string) (*property.Unit, error) {
	args := m.Called(ctx, propertyID, unitNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByStatus(ctx context.Context, status property.UnitStatus, filter shared.Filter) ([]property.Unit, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Unit), args.Error(1)
}

func (m *MockUnitRepository) CountByStatus(ctx context.Context, status property.UnitStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockPropertyRepository is a mock implementation of property.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Property, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) FindByName(ctx context.Context, name string) (*property.Property, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindActive(ctx context.Context) ([]property.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Property), args.Error(1)
}

// MockPDFRenderer is a mock implementation of printing.PDFRenderer
type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) Render(ctx context.Context, req *printing.RenderRequest) (*printing.RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*printing.RenderResult), args.Error(1)
}

func (m *MockPDFRenderer) Close() error {
	args := m.Called()
	return args.Error(0)
}

type documentServiceMocks struct {
	receipts   *MockReceiptRepository
	contracts  *MockContractRepository
	customers  *MockCustomerRepository
	units      *MockUnitRepository
	properties *MockPropertyRepository
	renderer   *MockPDFRenderer
}

func newTestDocumentService(withRenderer bool) (*DocumentService, *documentServiceMocks) {
	m := &documentServiceMocks{
		receipts:   new(MockReceiptRepository),
		contracts:  new(MockContractRepository),
		customers:  new(MockCustomerRepository),
		units:      new(MockUnitRepository),
		properties: new(MockPropertyRepository),
		renderer:   new(MockPDFRenderer),
	}
	var renderer printing.PDFRenderer
	if withRenderer {
		renderer = m.renderer
	}
	svc := NewDocumentService(m.receipts, m.contracts, m.customers, m.units, m.properties, renderer, zap.NewNop())
	return svc, m
}

func newPrintFixtures(t *testing.T) (*property.Property, *property.Unit, *tenancy.Customer, *tenancy.Contract, *billing.Receipt) {
	t.Helper()

	prop, err := property.NewProperty("Sunrise Court", "Ngong Road, Nairobi")
	require.NoError(t, err)

	unit, err := property.NewUnit(prop.ID, "A-12", property.UnitTypeOneBedroom,
		valueobject.NewMoneyKES(decimal.NewFromInt(15000)))
	require.NoError(t, err)

	customer, err := tenancy.NewCustomer("Jane", "Wanjiku", "+254700000001")
	require.NoError(t, err)

	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	contract, err := tenancy.NewContract(customer.ID, unit.ID, start, start.AddDate(1, 0, 0),
		valueobject.NewMoneyKES(decimal.NewFromInt(15000)),
		valueobject.NewMoneyKES(decimal.NewFromInt(15000)))
	require.NoError(t, err)

	sheet := billing.ZeroChargeSheet()
	sheet.MonthlyRent = contract.RentAmount
	period := billing.BillingPeriod{Year: 2023, Month: 7}
	receipt, err := billing.NewReceipt(contract.ID, billing.ReceiptNumber(3, period, 1),
		period, sheet, property.DefaultChargeToggles())
	require.NoError(t, err)

	return prop, unit, customer, contract, receipt
}

func TestDocumentService_BuildReceiptDocument(t *testing.T) {
	svc, m := newTestDocumentService(true)
	prop, unit, customer, contract, receipt := newPrintFixtures(t)

	m.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	m.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)
	m.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)

	doc, err := svc.BuildReceiptDocument(context.Background(), receipt.ID)

	require.NoError(t, err)
	assert.Equal(t, "RCT-3-202307-1", doc.ReceiptNumber)
	assert.Equal(t, "July 2023", doc.Period)
	assert.Equal(t, "Jane Wanjiku", doc.TenantName)
	assert.Equal(t, "Sunrise Court", doc.PropertyName)
	assert.Equal(t, "A-12", doc.UnitNumber)
	assert.Equal(t, "15000.00", doc.Total)
	assert.False(t, doc.ShowWaterReadings)
}

func TestDocumentService_BuildContractDocument(t *testing.T) {
	svc, m := newTestDocumentService(true)
	prop, unit, customer, contract, _ := newPrintFixtures(t)

	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	m.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)
	m.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)

	doc, err := svc.BuildContractDocument(context.Background(), contract.ID)

	require.NoError(t, err)
	assert.Equal(t, "One Bedroom", doc.UnitType)
	assert.Equal(t, "01 Jul 2023", doc.StartDate)
	assert.Equal(t, "1 year", doc.Duration)
	assert.Equal(t, "15000.00", doc.RentAmount)
	assert.Equal(t, "KES", doc.Currency)
}

func TestDocumentService_RenderReceiptPDF(t *testing.T) {
	svc, m := newTestDocumentService(true)
	prop, unit, customer, contract, receipt := newPrintFixtures(t)

	m.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	m.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)
	m.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)
	m.renderer.On("Render", mock.Anything, mock.MatchedBy(func(req *printing.RenderRequest) bool {
		return req.Title == receipt.ReceiptNumber && req.HTML != ""
	})).Return(&printing.RenderResult{PDFData: []byte("%PDF-1.4")}, nil)

	result, err := svc.RenderReceiptPDF(context.Background(), receipt.ID)

	require.NoError(t, err)
	assert.Equal(t, "RCT-3-202307-1.pdf", result.FileName)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), result.Data)
	m.renderer.AssertExpectations(t)
}

func TestDocumentService_RenderContractPDF(t *testing.T) {
	svc, m := newTestDocumentService(true)
	prop, unit, customer, contract, _ := newPrintFixtures(t)

	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	m.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)
	m.properties.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)
	m.renderer.On("Render", mock.Anything, mock.MatchedBy(func(req *printing.RenderRequest) bool {
		return strings.HasPrefix(req.Title, "CTR-") && req.HTML != ""
	})).Return(&printing.RenderResult{PDFData: []byte("%PDF-1.4")}, nil)

	result, err := svc.RenderContractPDF(context.Background(), contract.ID)

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.FileName, ".pdf"))
	assert.Equal(t, []byte("%PDF-1.4"), result.Data)
	m.renderer.AssertExpectations(t)
}

func TestDocumentService_RenderReceiptPDF_PrintingDisabled(t *testing.T) {
	svc, m := newTestDocumentService(false)

	_, err := svc.RenderReceiptPDF(context.Background(), uuid.New())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRINTING_DISABLED", domainErr.Code)
	m.receipts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
