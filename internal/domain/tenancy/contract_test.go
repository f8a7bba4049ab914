package tenancy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContract(t *testing.T) *Contract {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	c, err := NewContract(uuid.New(), uuid.New(), start, end,
		valueobject.NewMoneyKESFromFloat(10000), valueobject.NewMoneyKESFromFloat(10000))
	require.NoError(t, err)
	return c
}

func TestNewContract(t *testing.T) {
	c := testContract(t)

	assert.Equal(t, ContractStatusActive, c.Status)
	assert.Equal(t, 1, c.BillingDay)
	assert.True(t, c.IsActive())
	assert.Len(t, c.GetDomainEvents(), 1)
}

func TestNewContract_Validation(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rent := valueobject.NewMoneyKESFromFloat(10000)

	_, err := NewContract(uuid.Nil, uuid.New(), start, start.AddDate(1, 0, 0), rent, rent)
	assert.Error(t, err)

	_, err = NewContract(uuid.New(), uuid.Nil, start, start.AddDate(1, 0, 0), rent, rent)
	assert.Error(t, err)

	// end before start
	_, err = NewContract(uuid.New(), uuid.New(), start, start.AddDate(0, 0, -1), rent, rent)
	assert.Error(t, err)

	_, err = NewContract(uuid.New(), uuid.New(), start, start.AddDate(1, 0, 0),
		valueobject.NewMoneyKESFromFloat(-1), rent)
	assert.Error(t, err)
}

func TestContract_CancelAndTerminate(t *testing.T) {
	c := testContract(t)
	require.NoError(t, c.Cancel())
	assert.Equal(t, ContractStatusCancelled, c.Status)
	assert.Error(t, c.Cancel())
	assert.Error(t, c.Terminate())

	c2 := testContract(t)
	require.NoError(t, c2.Terminate())
	assert.Equal(t, ContractStatusTerminated, c2.Status)
}

func TestContract_Extend(t *testing.T) {
	c := testContract(t)
	newEnd := c.EndDate.AddDate(0, 6, 0)
	require.NoError(t, c.Extend(newEnd))
	assert.Equal(t, newEnd, c.EndDate)

	assert.Error(t, c.Extend(c.EndDate.AddDate(0, -1, 0)))
}

func TestContract_SetBillingDay(t *testing.T) {
	c := testContract(t)
	require.NoError(t, c.SetBillingDay(5))
	assert.Equal(t, 5, c.BillingDay)

	assert.Error(t, c.SetBillingDay(0))
	assert.Error(t, c.SetBillingDay(29))
}

func TestContract_ExpiresWithin(t *testing.T) {
	start := time.Now().AddDate(0, -11, 0)
	end := time.Now().AddDate(0, 1, 0)
	c, err := NewContract(uuid.New(), uuid.New(), start, end,
		valueobject.NewMoneyKESFromFloat(10000), valueobject.ZeroKES())
	require.NoError(t, err)

	assert.True(t, c.ExpiresWithin(60*24*time.Hour))
	assert.False(t, c.ExpiresWithin(24*time.Hour))

	require.NoError(t, c.Cancel())
	assert.False(t, c.ExpiresWithin(60*24*time.Hour))
}
