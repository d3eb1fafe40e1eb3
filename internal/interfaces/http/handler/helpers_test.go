package handler

import (
	"testing"

	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/partner"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/require"
)

func newTestCustomer(t *testing.T) *partner.Customer {
	t.Helper()

	customer, err := partner.NewCustomer("Acme Corp", "orders@acme.test")
	require.NoError(t, err)
	customer.ClearDomainEvents()
	return customer
}

func newTestProduct(t *testing.T, stock int) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct("Trail Helmet", "Giro", "Safety", valueobject.NewMoneyUSDFromFloat(90), stock)
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}
