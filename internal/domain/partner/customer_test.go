package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with valid inputs", func(t *testing.T) {
		customer, err := NewCustomer("Jordan Reyes", "Jordan@Example.com")
		require.NoError(t, err)

		assert.Equal(t, "Jordan Reyes", customer.Name)
		assert.Equal(t, "jordan@example.com", customer.Email, "email is normalized to lower case")
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.True(t, customer.IsActive())

		events := customer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCustomerCreated, events[0].EventType())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCustomer("", "a@b.com")
		assert.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		for _, email := range []string{"", "plainaddress", "a@b", "a b@c.com"} {
			_, err := NewCustomer("Jordan", email)
			assert.Error(t, err, "email %q should be rejected", email)
		}
	})
}

func TestCustomer_Update(t *testing.T) {
	customer, err := NewCustomer("Jordan Reyes", "jordan@example.com")
	require.NoError(t, err)
	customer.ClearDomainEvents()
	oldVersion := customer.GetVersion()

	require.NoError(t, customer.Update("Jordan R. Reyes", "jr@example.com"))

	assert.Equal(t, "Jordan R. Reyes", customer.Name)
	assert.Equal(t, "jr@example.com", customer.Email)
	assert.Equal(t, oldVersion+1, customer.GetVersion())
	require.Len(t, customer.GetDomainEvents(), 1)
}

func TestCustomer_ActivateDeactivate(t *testing.T) {
	customer, err := NewCustomer("Jordan Reyes", "jordan@example.com")
	require.NoError(t, err)

	require.NoError(t, customer.Deactivate())
	assert.False(t, customer.IsActive())
	assert.Error(t, customer.Deactivate())

	require.NoError(t, customer.Activate())
	assert.True(t, customer.IsActive())
	assert.Error(t, customer.Activate())
}

func TestCustomer_SetContactInfo(t *testing.T) {
	customer, err := NewCustomer("Jordan Reyes", "jordan@example.com")
	require.NoError(t, err)

	customer.SetContactInfo("555-0101", "Reyes Construction", "12 Harbor Way")

	assert.Equal(t, "555-0101", customer.Phone)
	assert.Equal(t, "Reyes Construction", customer.Company)
	assert.Equal(t, "12 Harbor Way", customer.Address)
}
