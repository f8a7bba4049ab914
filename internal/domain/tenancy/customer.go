package tenancy

import (
	"regexp"
	"strings"
	"time"

	"github.com/pms/backend/internal/domain/shared"
)

// Customer is the aggregate root for a tenant on file
type Customer struct {
	shared.BaseAggregateRoot
	FirstName    string
	LastName     string
	PhoneNumber  string
	Email        string
	IDNumber     string
	IDPhotoFront string // object storage key
	IDPhotoBack  string // object storage key
	Notes        string
}

// NewCustomer creates a new customer record
func NewCustomer(firstName, lastName, phoneNumber string) (*Customer, error) {
	if strings.TrimSpace(firstName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Last name cannot be empty")
	}
	if err := validatePhoneNumber(phoneNumber); err != nil {
		return nil, err
	}

	c := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		PhoneNumber:       strings.TrimSpace(phoneNumber),
	}

	c.AddDomainEvent(NewCustomerCreatedEvent(c))

	return c, nil
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// SetName updates the customer's names
func (c *Customer) SetName(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return shared.NewDomainError("INVALID_NAME", "Last name cannot be empty")
	}

	c.FirstName = strings.TrimSpace(firstName)
	c.LastName = strings.TrimSpace(lastName)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetPhoneNumber updates the customer's phone number
func (c *Customer) SetPhoneNumber(phoneNumber string) error {
	if err := validatePhoneNumber(phoneNumber); err != nil {
		return err
	}

	c.PhoneNumber = strings.TrimSpace(phoneNumber)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetEmail updates the customer's email
func (c *Customer) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	c.Email = strings.ToLower(email)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetIDNumber updates the national ID number
func (c *Customer) SetIDNumber(idNumber string) error {
	idNumber = strings.TrimSpace(idNumber)
	if len(idNumber) > 50 {
		return shared.NewDomainError("INVALID_ID_NUMBER", "ID number cannot exceed 50 characters")
	}

	c.IDNumber = idNumber
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// AttachIDPhotos records the storage keys of the uploaded ID photos.
// An empty key leaves the existing side untouched.
func (c *Customer) AttachIDPhotos(frontKey, backKey string) {
	if frontKey != "" {
		c.IDPhotoFront = frontKey
	}
	if backKey != "" {
		c.IDPhotoBack = backKey
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetNotes updates free-form notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validatePhoneNumber(phoneNumber string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot be empty")
	}
	if !phoneRegex.MatchString(phoneNumber) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must be 7-15 digits with optional leading +")
	}
	return nil
}
