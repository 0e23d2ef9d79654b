package service

import (
	"context"
	"testing"

	"backoffice/internal/dto"
	"backoffice/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(t *testing.T) (*fakeOrderRepo, OrderService) {
	repo := newFakeOrderRepo()
	return repo, NewOrderService(repo, t.TempDir())
}

func order(status string) model.Order {
	return model.Order{
		Number:        "CMD-2026-0001",
		CustomerName:  "Marie Dupont",
		CustomerEmail: "marie@example.com",
		Status:        status,
		Total:         decimal.NewFromFloat(149.90),
	}
}

func TestOrderUpdateStatus_LegalTransitions(t *testing.T) {
	cases := []struct{ from, to string }{
		{model.OrderPending, model.OrderPaid},
		{model.OrderPending, model.OrderCancelled},
		{model.OrderPaid, model.OrderShipped},
		{model.OrderPaid, model.OrderCancelled},
		{model.OrderShipped, model.OrderDelivered},
	}
	for _, tc := range cases {
		repo, svc := newOrderFixture(t)
		o := repo.add(order(tc.from))

		resp, err := svc.UpdateStatus(context.Background(), o.ID, tc.to)
		require.NoError(t, err, "%s → %s", tc.from, tc.to)
		assert.Equal(t, tc.to, resp.Status)
	}
}

func TestOrderUpdateStatus_IllegalTransitions(t *testing.T) {
	cases := []struct{ from, to string }{
		{model.OrderPending, model.OrderShipped},
		{model.OrderPending, model.OrderDelivered},
		{model.OrderShipped, model.OrderCancelled},
		{model.OrderDelivered, model.OrderPaid},
		{model.OrderCancelled, model.OrderPending},
		{model.OrderPaid, model.OrderPaid},
	}
	for _, tc := range cases {
		repo, svc := newOrderFixture(t)
		o := repo.add(order(tc.from))

		_, err := svc.UpdateStatus(context.Background(), o.ID, tc.to)
		var cerr *ConflictError
		require.ErrorAs(t, err, &cerr, "%s → %s should conflict", tc.from, tc.to)

		after, ferr := repo.FindByID(context.Background(), o.ID)
		require.NoError(t, ferr)
		assert.Equal(t, tc.from, after.Status, "rejected transition must not persist")
	}
}

func TestOrderUpdateStatus_UnknownStatus(t *testing.T) {
	repo, svc := newOrderFixture(t)
	o := repo.add(order(model.OrderPending))

	_, err := svc.UpdateStatus(context.Background(), o.ID, "expédié")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestOrderList_RejectsUnknownStatusFilter(t *testing.T) {
	_, svc := newOrderFixture(t)

	_, err := svc.List(context.Background(), dto.OrderListQuery{Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestOrderInvoice_RefusedForPendingAndCancelled(t *testing.T) {
	for _, status := range []string{model.OrderPending, model.OrderCancelled} {
		repo, svc := newOrderFixture(t)
		o := repo.add(order(status))

		_, err := svc.InvoicePDF(context.Background(), o.ID)
		var cerr *ConflictError
		require.ErrorAs(t, err, &cerr, "invoice for %s order should conflict", status)
	}
}

func TestOrderInvoice_GeneratesFileForPaidOrder(t *testing.T) {
	repo, svc := newOrderFixture(t)
	o := order(model.OrderPaid)
	o.Items = []model.OrderItem{
		{ProductName: "Table pliante", UnitPrice: decimal.NewFromFloat(79.90), Quantity: 1},
		{ProductName: "Chaise", UnitPrice: decimal.NewFromFloat(35.00), Quantity: 2},
	}
	created := repo.add(o)

	path, err := svc.InvoicePDF(context.Background(), created.ID)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
