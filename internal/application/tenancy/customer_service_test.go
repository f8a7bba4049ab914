package tenancy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/storage"
)

func newTestCustomerService() (*CustomerService, *MockCustomerRepository, *MockContractRepository) {
	customers := new(MockCustomerRepository)
	contracts := new(MockContractRepository)
	svc := NewCustomerService(customers, contracts, storage.NewStubObjectStorage(), zap.NewNop())
	return svc, customers, contracts
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	svc, customers, _ := newTestCustomerService()

	customers.On("ExistsByPhoneNumber", mock.Anything, "+254700000001").Return(false, nil)
	customers.On("Save", mock.Anything, mock.AnythingOfType("*tenancy.Customer")).Return(nil)

	info, err := svc.CreateCustomer(context.Background(), CreateCustomerInput{
		FirstName:   "Jane",
		LastName:    "Wanjiku",
		PhoneNumber: "+254700000001",
		Email:       "jane@example.com",
		IDNumber:    "12345678",
	})

	require.NoError(t, err)
	assert.Equal(t, "Jane Wanjiku", info.FullName)
	assert.Equal(t, "jane@example.com", info.Email)
	customers.AssertExpectations(t)
}

func TestCustomerService_CreateCustomer_DuplicatePhone(t *testing.T) {
	svc, customers, _ := newTestCustomerService()

	customers.On("ExistsByPhoneNumber", mock.Anything, "+254700000001").Return(true, nil)

	_, err := svc.CreateCustomer(context.Background(), CreateCustomerInput{
		FirstName:   "Jane",
		LastName:    "Wanjiku",
		PhoneNumber: "+254700000001",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PHONE_TAKEN", domainErr.Code)
	customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerService_UpdateCustomer_PartialUpdate(t *testing.T) {
	svc, customers, _ := newTestCustomerService()
	customer := newTestCustomer(t)

	customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	customers.On("Save", mock.Anything, customer).Return(nil)

	newEmail := "jane.w@example.com"
	info, err := svc.UpdateCustomer(context.Background(), customer.ID, UpdateCustomerInput{
		Email: &newEmail,
	})

	require.NoError(t, err)
	assert.Equal(t, "jane.w@example.com", info.Email)
	assert.Equal(t, "Jane Wanjiku", info.FullName) // unchanged
}

func TestCustomerService_DeleteCustomer_WithActiveContract(t *testing.T) {
	svc, customers, contracts := newTestCustomerService()
	customer := newTestCustomer(t)

	contracts.On("FindByCustomer", mock.Anything, customer.ID, mock.Anything).
		Return([]tenancy.Contract{{}}, nil)

	err := svc.DeleteCustomer(context.Background(), customer.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CUSTOMER_HAS_CONTRACT", domainErr.Code)
	customers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCustomerService_RequestIDPhotoUpload(t *testing.T) {
	svc, customers, _ := newTestCustomerService()
	customer := newTestCustomer(t)

	customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	customers.On("Save", mock.Anything, customer).Return(nil)

	result, err := svc.RequestIDPhotoUpload(context.Background(), IDPhotoUploadInput{
		CustomerID: customer.ID,
		Front:      true,
		Back:       true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.FrontUploadURL)
	assert.NotEmpty(t, result.BackUploadURL)
	assert.Contains(t, result.FrontKey, customer.ID.String())
	assert.Equal(t, result.FrontKey, customer.IDPhotoFront)
	assert.Equal(t, result.BackKey, customer.IDPhotoBack)
}

func TestCustomerService_RequestIDPhotoUpload_NoSides(t *testing.T) {
	svc, customers, _ := newTestCustomerService()
	customer := newTestCustomer(t)

	customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

	_, err := svc.RequestIDPhotoUpload(context.Background(), IDPhotoUploadInput{
		CustomerID: customer.ID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestCustomerService_GetIDPhotoURLs_NoPhotos(t *testing.T) {
	svc, customers, _ := newTestCustomerService()
	customer := newTestCustomer(t)

	customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

	_, err := svc.GetIDPhotoURLs(context.Background(), customer.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_PHOTOS", domainErr.Code)
}
