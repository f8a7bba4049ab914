package tenancy

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

	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/pms/backend/internal/domain/tenancy"
)

type contractServiceMocks struct {
	contracts *MockContractRepository
	customers *MockCustomerRepository
	units     *MockUnitRepository
	params    *MockParametersRepository
}

func newTestContractService() (*ContractService, *contractServiceMocks) {
	m := &contractServiceMocks{
		contracts: new(MockContractRepository),
		customers: new(MockCustomerRepository),
		units:     new(MockUnitRepository),
		params:    new(MockParametersRepository),
	}
	svc := NewContractService(m.contracts, m.customers, m.units, m.params, zap.NewNop())
	return svc, m
}

func newTestCustomer(t *testing.T) *tenancy.Customer {
	t.Helper()
	customer, err := tenancy.NewCustomer("Jane", "Wanjiku", "+254700000001")
	require.NoError(t, err)
	return customer
}

func newTestUnit(t *testing.T, rent int64) *property.Unit {
	t.Helper()
	unit, err := property.NewUnit(uuid.New(), "A-12", property.UnitTypeBedsitter,
		valueobject.NewMoneyKES(decimal.NewFromInt(rent)))
	require.NoError(t, err)
	return unit
}

func newTestParameters(t *testing.T, propertyID uuid.UUID, depositMonths int64) *property.SystemParameters {
	t.Helper()
	params, err := property.NewSystemParameters(propertyID)
	require.NoError(t, err)
	params.RentDepositMonths = decimal.NewFromInt(depositMonths)
	return params
}

func TestContractService_CreateContract_ComputesDepositFromDefaults(t *testing.T) {
	svc, m := newTestContractService()
	customer := newTestCustomer(t)
	unit := newTestUnit(t, 10000)

	m.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)
	m.contracts.On("FindActiveByUnit", mock.Anything, unit.ID).Return(nil, shared.ErrNotFound)
	m.params.On("FindByProperty", mock.Anything, unit.PropertyID).
		Return(newTestParameters(t, unit.PropertyID, 2), nil)
	m.contracts.On("Save", mock.Anything, mock.AnythingOfType("*tenancy.Contract")).Return(nil)
	m.units.On("Save", mock.Anything, unit).Return(nil)

	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	info, err := svc.CreateContract(context.Background(), CreateContractInput{
		CustomerID: customer.ID,
		UnitID:     unit.ID,
		StartDate:  start,
		EndDate:    start.AddDate(1, 0, 0),
		BillingDay: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, "10000.00", info.RentAmount)
	assert.Equal(t, "20000.00", info.Deposit) // two months of rent
	assert.Equal(t, 5, info.BillingDay)
	assert.Equal(t, "active", info.Status)
	assert.Equal(t, property.UnitStatusOccupied, unit.Status)
	m.contracts.AssertExpectations(t)
}

func TestContractService_CreateContract_ExplicitDepositWins(t *testing.T) {
	svc, m := newTestContractService()
	customer := newTestCustomer(t)
	unit := newTestUnit(t, 10000)

	m.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)
	m.contracts.On("FindActiveByUnit", mock.Anything, unit.ID).Return(nil, shared.ErrNotFound)
	m.contracts.On("Save", mock.Anything, mock.AnythingOfType("*tenancy.Contract")).Return(nil)
	m.units.On("Save", mock.Anything, unit).Return(nil)

	deposit := decimal.NewFromInt(5000)
	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	info, err := svc.CreateContract(context.Background(), CreateContractInput{
		CustomerID: customer.ID,
		UnitID:     unit.ID,
		StartDate:  start,
		EndDate:    start.AddDate(0, 6, 0),
		Deposit:    &deposit,
	})

	require.NoError(t, err)
	assert.Equal(t, "5000.00", info.Deposit)
	m.params.AssertNotCalled(t, "FindByProperty", mock.Anything, mock.Anything)
}

func TestContractService_CreateContract_OccupiedUnit(t *testing.T) {
	svc, m := newTestContractService()
	customer := newTestCustomer(t)
	unit := newTestUnit(t, 10000)
	require.NoError(t, unit.Occupy())

	m.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)

	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateContract(context.Background(), CreateContractInput{
		CustomerID: customer.ID,
		UnitID:     unit.ID,
		StartDate:  start,
		EndDate:    start.AddDate(1, 0, 0),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNIT_NOT_VACANT", domainErr.Code)
	m.contracts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestContractService_TerminateContract_FreesUnit(t *testing.T) {
	svc, m := newTestContractService()
	unit := newTestUnit(t, 10000)
	require.NoError(t, unit.Occupy())

	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	contract, err := tenancy.NewContract(uuid.New(), unit.ID, start, start.AddDate(1, 0, 0),
		valueobject.NewMoneyKES(decimal.NewFromInt(10000)),
		valueobject.NewMoneyKES(decimal.NewFromInt(10000)))
	require.NoError(t, err)

	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	m.contracts.On("Save", mock.Anything, contract).Return(nil)
	m.units.On("FindByID", mock.Anything, unit.ID).Return(unit, nil)
	m.units.On("Save", mock.Anything, unit).Return(nil)

	require.NoError(t, svc.TerminateContract(context.Background(), contract.ID))

	assert.Equal(t, tenancy.ContractStatusTerminated, contract.Status)
	assert.Equal(t, property.UnitStatusVacant, unit.Status)
	m.units.AssertExpectations(t)
}

func TestContractService_TerminateContract_AlreadyClosed(t *testing.T) {
	svc, m := newTestContractService()

	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	contract, err := tenancy.NewContract(uuid.New(), uuid.New(), start, start.AddDate(1, 0, 0),
		valueobject.NewMoneyKES(decimal.NewFromInt(10000)),
		valueobject.NewMoneyKES(decimal.NewFromInt(10000)))
	require.NoError(t, err)
	require.NoError(t, contract.Cancel())

	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)

	err = svc.TerminateContract(context.Background(), contract.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestContractService_ExtendContract(t *testing.T) {
	svc, m := newTestContractService()

	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	contract, err := tenancy.NewContract(uuid.New(), uuid.New(), start, end,
		valueobject.NewMoneyKES(decimal.NewFromInt(10000)),
		valueobject.NewMoneyKES(decimal.NewFromInt(10000)))
	require.NoError(t, err)

	m.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
	m.contracts.On("Save", mock.Anything, contract).Return(nil)

	newEnd := end.AddDate(0, 6, 0)
	info, err := svc.ExtendContract(context.Background(), ExtendContractInput{
		ContractID: contract.ID,
		NewEndDate: newEnd,
	})

	require.NoError(t, err)
	assert.True(t, info.EndDate.Equal(newEnd))
	assert.Equal(t, "1 year 6 months", info.Duration)
}

func TestContractService_ListExpiring(t *testing.T) {
	svc, m := newTestContractService()

	start := time.Now().AddDate(0, -11, 0)
	end := time.Now().AddDate(0, 0, 14)
	contract, err := tenancy.NewContract(uuid.New(), uuid.New(), start, end,
		valueobject.NewMoneyKES(decimal.NewFromInt(10000)),
		valueobject.NewMoneyKES(decimal.NewFromInt(10000)))
	require.NoError(t, err)

	m.contracts.On("FindExpiringBefore", mock.Anything, mock.AnythingOfType("time.Time"), mock.Anything).
		Return([]tenancy.Contract{*contract}, nil)

	infos, err := svc.ListExpiring(context.Background(), 30, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, contract.ID, infos[0].ID)
}
