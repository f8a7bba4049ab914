package tenancy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/storage"
)

const idPhotoURLExpiry = 15 * time.Minute

// CustomerService handles tenant record management
type CustomerService struct {
	customerRepo tenancy.CustomerRepository
	contractRepo tenancy.ContractRepository
	storage      storage.ObjectStorage
	logger       *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo tenancy.CustomerRepository,
	contractRepo tenancy.ContractRepository,
	objectStorage storage.ObjectStorage,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		contractRepo: contractRepo,
		storage:      objectStorage,
		logger:       logger,
	}
}

// CreateCustomer creates a tenant record. Phone numbers are unique.
func (s *CustomerService) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CustomerInfo, error) {
	exists, err := s.customerRepo.ExistsByPhoneNumber(ctx, input.PhoneNumber)
	if err != nil {
		s.logger.Error("Failed to check phone number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create customer")
	}
	if exists {
		return nil, shared.NewDomainError("PHONE_TAKEN", "A customer with this phone number already exists")
	}

	customer, err := tenancy.NewCustomer(input.FirstName, input.LastName, input.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if err := customer.SetEmail(input.Email); err != nil {
		return nil, err
	}
	if err := customer.SetIDNumber(input.IDNumber); err != nil {
		return nil, err
	}
	customer.SetNotes(input.Notes)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("Failed to save customer", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create customer")
	}

	s.logger.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("name", customer.FullName()))

	info := toCustomerInfo(customer)
	return &info, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerInfo, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := toCustomerInfo(customer)
	return &info, nil
}

// ListCustomers returns a paginated list of customers. The filter's
// search term matches names, phone numbers and ID numbers.
func (s *CustomerService) ListCustomers(ctx context.Context, filter shared.Filter) (*shared.Paginated[CustomerInfo], error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]CustomerInfo, 0, len(customers))
	for i := range customers {
		infos = append(infos, toCustomerInfo(&customers[i]))
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateCustomer amends a customer record
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*CustomerInfo, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil || input.LastName != nil {
		first, last := customer.FirstName, customer.LastName
		if input.FirstName != nil {
			first = *input.FirstName
		}
		if input.LastName != nil {
			last = *input.LastName
		}
		if err := customer.SetName(first, last); err != nil {
			return nil, err
		}
	}
	if input.PhoneNumber != nil && *input.PhoneNumber != customer.PhoneNumber {
		exists, err := s.customerRepo.ExistsByPhoneNumber(ctx, *input.PhoneNumber)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update customer")
		}
		if exists {
			return nil, shared.NewDomainError("PHONE_TAKEN", "A customer with this phone number already exists")
		}
		if err := customer.SetPhoneNumber(*input.PhoneNumber); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if err := customer.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.IDNumber != nil {
		if err := customer.SetIDNumber(*input.IDNumber); err != nil {
			return nil, err
		}
	}
	if input.Notes != nil {
		customer.SetNotes(*input.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("Failed to update customer", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update customer")
	}

	info := toCustomerInfo(customer)
	return &info, nil
}

// DeleteCustomer removes a customer. Customers with an active contract
// cannot be removed.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	contracts, err := s.contractRepo.FindByCustomer(ctx, id, shared.Filter{
		Page:     1,
		PageSize: 1,
		Filters:  map[string]interface{}{"status": string(tenancy.ContractStatusActive)},
	})
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete customer")
	}
	if len(contracts) > 0 {
		return shared.NewDomainError("CUSTOMER_HAS_CONTRACT", "Customer has an active contract")
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Customer deleted", zap.String("customer_id", id.String()))
	return nil
}

// RequestIDPhotoUpload issues presigned upload URLs for a customer's ID
// photos and records the storage keys. The client PUTs the images
// directly to object storage.
func (s *CustomerService) RequestIDPhotoUpload(ctx context.Context, input IDPhotoUploadInput) (*IDPhotoUploadResult, error) {
	customer, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !input.Front && !input.Back {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one photo side must be requested")
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	result := &IDPhotoUploadResult{}

	if input.Front {
		key := idPhotoKey(customer.ID, "front")
		url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, idPhotoURLExpiry)
		if err != nil {
			s.logger.Error("Failed to generate upload URL", zap.Error(err))
			return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate upload URL")
		}
		result.FrontUploadURL = url
		result.FrontKey = key
		result.ExpiresAt = expiresAt
	}
	if input.Back {
		key := idPhotoKey(customer.ID, "back")
		url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, idPhotoURLExpiry)
		if err != nil {
			s.logger.Error("Failed to generate upload URL", zap.Error(err))
			return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate upload URL")
		}
		result.BackUploadURL = url
		result.BackKey = key
		result.ExpiresAt = expiresAt
	}

	customer.AttachIDPhotos(result.FrontKey, result.BackKey)
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("Failed to record photo keys", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record photo keys")
	}

	return result, nil
}

// GetIDPhotoURLs issues presigned download URLs for a customer's stored
// ID photos
func (s *CustomerService) GetIDPhotoURLs(ctx context.Context, customerID uuid.UUID) (*IDPhotoViewResult, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.IDPhotoFront == "" && customer.IDPhotoBack == "" {
		return nil, shared.NewDomainError("NO_PHOTOS", "Customer has no ID photos on file")
	}

	result := &IDPhotoViewResult{}

	if customer.IDPhotoFront != "" {
		url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, customer.IDPhotoFront, idPhotoURLExpiry)
		if err != nil {
			return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate download URL")
		}
		result.FrontURL = url
		result.ExpiresAt = expiresAt
	}
	if customer.IDPhotoBack != "" {
		url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, customer.IDPhotoBack, idPhotoURLExpiry)
		if err != nil {
			return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate download URL")
		}
		result.BackURL = url
		result.ExpiresAt = expiresAt
	}

	return result, nil
}

func idPhotoKey(customerID uuid.UUID, side string) string {
	return fmt.Sprintf("customers/%s/id-%s-%d.jpg", customerID, side, time.Now().Unix())
}
