package property

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUnit(t *testing.T) *Unit {
	t.Helper()
	u, err := NewUnit(uuid.New(), "A-12", UnitTypeOneBedroom, valueobject.NewMoneyKESFromFloat(12000))
	require.NoError(t, err)
	return u
}

func TestNewUnit(t *testing.T) {
	u := testUnit(t)
	assert.Equal(t, UnitStatusVacant, u.Status)
	assert.True(t, u.IsVacant())
}

func TestNewUnit_Validation(t *testing.T) {
	rent := valueobject.NewMoneyKESFromFloat(12000)

	_, err := NewUnit(uuid.Nil, "A-12", UnitTypeOneBedroom, rent)
	assert.Error(t, err)

	_, err = NewUnit(uuid.New(), "", UnitTypeOneBedroom, rent)
	assert.Error(t, err)

	_, err = NewUnit(uuid.New(), "A-12", "penthouse", rent)
	assert.Error(t, err)

	_, err = NewUnit(uuid.New(), "A-12", UnitTypeOneBedroom, valueobject.NewMoneyKESFromFloat(-1))
	assert.Error(t, err)
}

func TestUnit_OccupyVacate(t *testing.T) {
	u := testUnit(t)

	require.NoError(t, u.Occupy())
	assert.Equal(t, UnitStatusOccupied, u.Status)

	// double occupancy is a conflict
	assert.Error(t, u.Occupy())

	require.NoError(t, u.Vacate())
	assert.True(t, u.IsVacant())
	assert.Error(t, u.Vacate())
}

func TestUnit_Maintenance(t *testing.T) {
	u := testUnit(t)

	require.NoError(t, u.MarkUnderMaintenance())
	assert.Equal(t, UnitStatusMaintenance, u.Status)

	require.NoError(t, u.Vacate())
	require.NoError(t, u.Occupy())
	assert.Error(t, u.MarkUnderMaintenance())
}

func TestSystemParameters_Defaults(t *testing.T) {
	sp, err := NewSystemParameters(uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "1", sp.RentDepositMonths.String())
	assert.True(t, sp.Toggles.HasWaterBill)
	assert.True(t, sp.Toggles.HasSecurityCharge)
}

func TestSystemParameters_UpdateRates_RejectsNegative(t *testing.T) {
	sp, err := NewSystemParameters(uuid.New())
	require.NoError(t, err)

	err = sp.UpdateRates(sp.RentDepositMonths, sp.WaterUnitCost, sp.ElectricityUnitCost,
		sp.ServiceCharge, sp.SecurityCharge, sp.GarbageCharge, decimal.NewFromInt(-5))
	assert.Error(t, err)
}

func TestSystemParameters_UpdateRates(t *testing.T) {
	sp, err := NewSystemParameters(uuid.New())
	require.NoError(t, err)

	err = sp.UpdateRates(decimal.NewFromInt(2), decimal.NewFromInt(150), decimal.NewFromInt(25),
		decimal.NewFromInt(200), decimal.NewFromInt(1000), decimal.NewFromInt(300), decimal.NewFromInt(5))
	require.NoError(t, err)

	assert.Equal(t, "2", sp.RentDepositMonths.String())
	assert.Equal(t, "150", sp.WaterUnitCost.String())
	assert.Equal(t, 2, sp.GetVersion())
}
