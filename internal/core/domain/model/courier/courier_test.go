package courier_test

import (
	"testing"

	"resto/internal/core/domain/model/courier"
	"resto/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	t.Run("new couriers are active", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Budi")
		require.NoError(t, err)

		assert.Equal(t, "Budi", c.Name())
		assert.True(t, c.IsActive())
		require.NoError(t, c.Validate())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "   ")
		require.Error(t, err)
	})

	t.Run("rejects zero id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := courier.NewCourier(zero, "Budi")
		require.Error(t, err)
	})
}

func TestRestoreCourier(t *testing.T) {
	id := kernel.NewUUID()
	c, err := courier.RestoreCourier(id, "Siti", false)
	require.NoError(t, err)

	assert.True(t, id.IsEqual(c.ID()))
	assert.False(t, c.IsActive())
}

func TestCourier_ActivityToggle(t *testing.T) {
	c, err := courier.NewCourier(kernel.NewUUID(), "Budi")
	require.NoError(t, err)

	c.Deactivate()
	assert.False(t, c.IsActive())

	c.Activate()
	assert.True(t, c.IsActive())
}

func TestCourier_Validate_NotConstructed(t *testing.T) {
	var c courier.Courier
	require.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
}

func TestCourier_IsEqual(t *testing.T) {
	a, err := courier.NewCourier(kernel.NewUUID(), "Budi")
	require.NoError(t, err)
	b, err := courier.NewCourier(kernel.NewUUID(), "Budi")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(a))
	assert.False(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(nil))
}
