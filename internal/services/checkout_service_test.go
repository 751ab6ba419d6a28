package services_test

import (
	"errors"
	"fmt"
	"testing"

	"arostore/internal/models"
	"arostore/internal/repositories"
	"arostore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func checkoutFixture() (*services.CheckoutService, *MockCartRepository, *MockOrderRepository, *MockPaymentGateway, *MockNotifier) {
	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepository)
	gateway := new(MockPaymentGateway)
	notifier := new(MockNotifier)
	svc := services.NewCheckoutService(cartRepo, orderRepo, gateway, notifier)
	return svc, cartRepo, orderRepo, gateway, notifier
}

func checkoutRequest() services.CheckoutRequest {
	return services.CheckoutRequest{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		ZipCode: "560001",
	}
}

func sessionCart() []models.CartItem {
	return []models.CartItem{
		{
			ID:         "ci-1",
			SessionKey: "sess-1",
			ProductID:  "prod-1",
			Product:    models.Product{ID: "prod-1", Name: "Brake Pad Set", Price: 850.00, Image: "products/brake-pads.png"},
			Quantity:   2,
		},
		{
			ID:         "ci-2",
			SessionKey: "sess-1",
			ProductID:  "prod-2",
			Product:    models.Product{ID: "prod-2", Name: "Oil Filter", Price: 220.00, Image: "products/oil-filter.png"},
			Quantity:   1,
		},
	}
}

func TestCheckout_EmptyCartCreatesNothing(t *testing.T) {
	svc, cartRepo, orderRepo, _, _ := checkoutFixture()

	cartRepo.On("GetBySession", "sess-1").Return([]models.CartItem{}, nil).Once()

	initiation, err := svc.Checkout("sess-1", "user-1", checkoutRequest())

	assert.Nil(t, initiation)
	assert.ErrorIs(t, err, services.ErrEmptyCart)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
	cartRepo.AssertNotCalled(t, "Clear", mock.Anything)
	cartRepo.AssertExpectations(t)
}

func TestCheckout_SnapshotsCartAndClearsAfterCommit(t *testing.T) {
	svc, cartRepo, orderRepo, gateway, _ := checkoutFixture()

	orderCommitted := false
	var committed *models.Order

	cartRepo.On("GetBySession", "sess-1").Return(sessionCart(), nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		committed = args.Get(0).(*models.Order)
		committed.ID = "ord-1"
		orderCommitted = true
	}).Return(nil).Once()
	cartRepo.On("Clear", "sess-1").Run(func(mock.Arguments) {
		// The cart may only be cleared once the order is durable.
		assert.True(t, orderCommitted, "cart cleared before order commit")
	}).Return(nil).Once()
	gateway.On("CreateIntent", 1920.00, "ord-1").Return("rzp_order_abc", nil).Once()
	gateway.On("KeyID").Return("rzp_test_key").Once()

	initiation, err := svc.Checkout("sess-1", "user-1", checkoutRequest())

	assert.NoError(t, err)
	assert.Equal(t, "ord-1", initiation.OrderID)
	assert.Equal(t, "rzp_test_key", initiation.RazorpayKeyID)
	assert.Equal(t, "rzp_order_abc", initiation.RazorpayOrderID)
	assert.Equal(t, int64(192000), initiation.Amount)
	assert.Equal(t, "Asha Rao", initiation.CustomerName)
	assert.Equal(t, "asha@example.com", initiation.CustomerEmail)
	assert.Equal(t, "9876543210", initiation.CustomerPhone)

	// Snapshot invariants: one item per cart line, values copied, item
	// totals sum to the quoted subtotal.
	assert.Len(t, committed.Items, 2)
	assert.Equal(t, "Brake Pad Set", committed.Items[0].ProductName)
	assert.Equal(t, 850.00, committed.Items[0].ProductPrice)
	assert.Equal(t, "products/brake-pads.png", committed.Items[0].ProductImage)
	assert.Equal(t, 2, committed.Items[0].Quantity)

	var itemsTotal float64
	for i := range committed.Items {
		itemsTotal += committed.Items[i].TotalPrice()
	}
	// 1920 is over the free-shipping threshold, so subtotal == total.
	assert.Equal(t, committed.TotalAmount, itemsTotal)

	assert.Equal(t, models.OrderStatusProcessing, committed.Status)
	assert.Equal(t, models.PaymentStatusPending, committed.PaymentStatus)
	assert.Equal(t, models.PaymentMethodRazorpay, committed.PaymentMethod)
	assert.Equal(t, "user-1", *committed.UserID)

	cartRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestCheckout_BelowThresholdIncludesShippingInIntent(t *testing.T) {
	svc, cartRepo, orderRepo, gateway, _ := checkoutFixture()

	cart := []models.CartItem{
		{
			ID: "ci-1", SessionKey: "sess-1", ProductID: "prod-1",
			Product:  models.Product{ID: "prod-1", Name: "Oil Filter", Price: 1000.00},
			Quantity: 1,
		},
	}

	cartRepo.On("GetBySession", "sess-1").Return(cart, nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		order := args.Get(0).(*models.Order)
		order.ID = "ord-2"
		assert.Equal(t, 1099.00, order.TotalAmount)
	}).Return(nil).Once()
	cartRepo.On("Clear", "sess-1").Return(nil).Once()
	gateway.On("CreateIntent", 1099.00, "ord-2").Return("rzp_order_def", nil).Once()
	gateway.On("KeyID").Return("rzp_test_key").Once()

	initiation, err := svc.Checkout("sess-1", "user-1", checkoutRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(109900), initiation.Amount)
	gateway.AssertExpectations(t)
}

func TestCheckout_GatewayFailureCompensatesOrder(t *testing.T) {
	svc, cartRepo, orderRepo, gateway, _ := checkoutFixture()

	cartRepo.On("GetBySession", "sess-1").Return(sessionCart(), nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Order).ID = "ord-3"
	}).Return(nil).Once()
	cartRepo.On("Clear", "sess-1").Return(nil).Once()
	gateway.On("CreateIntent", 1920.00, "ord-3").Return("", errors.New("provider unreachable")).Once()
	orderRepo.On("UpdatePaymentStatus", "ord-3", models.PaymentStatusFailed).Return(nil).Once()
	orderRepo.On("UpdateStatus", "ord-3", models.OrderStatusCancelled).Return(nil).Once()

	initiation, err := svc.Checkout("sess-1", "user-1", checkoutRequest())

	assert.Nil(t, initiation)
	var gwErr *services.GatewayError
	assert.ErrorAs(t, err, &gwErr)

	// The cart was cleared before the gateway call and is not restored.
	cartRepo.AssertCalled(t, "Clear", "sess-1")
	orderRepo.AssertExpectations(t)
}

func paidTestOrder(userID string) *models.Order {
	return &models.Order{
		ID:            "ord-9",
		UserID:        &userID,
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		TotalAmount:   1920.00,
		Status:        models.OrderStatusProcessing,
		PaymentStatus: models.PaymentStatusPending,
		Items: []models.OrderItem{
			{ID: "oi-1", OrderID: "ord-9", ProductName: "Brake Pad Set", ProductPrice: 850.00, Quantity: 2},
		},
	}
}

func TestConfirmPayment_MarksPaidAndNotifies(t *testing.T) {
	svc, _, orderRepo, gateway, notifier := checkoutFixture()

	orderRepo.On("GetByIDForUser", "ord-9", "user-1").Return(paidTestOrder("user-1"), nil).Once()
	gateway.On("VerifySignature", "rzp_order_abc", "pay_1", "sig").Return(true).Once()
	orderRepo.On("UpdatePaymentStatus", "ord-9", models.PaymentStatusPaid).Return(nil).Once()
	notifier.On("NotifyOrderConfirmed", mock.AnythingOfType("*models.Order"), mock.AnythingOfType("[]models.OrderItem")).Once()

	order, err := svc.ConfirmPayment("ord-9", "user-1", "rzp_order_abc", "pay_1", "sig")

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	// Fulfillment status is untouched on the success path.
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestConfirmPayment_IsIdempotent(t *testing.T) {
	svc, _, orderRepo, gateway, notifier := checkoutFixture()

	first := paidTestOrder("user-1")
	second := paidTestOrder("user-1")
	second.PaymentStatus = models.PaymentStatusPaid

	orderRepo.On("GetByIDForUser", "ord-9", "user-1").Return(first, nil).Once()
	orderRepo.On("GetByIDForUser", "ord-9", "user-1").Return(second, nil).Once()
	gateway.On("VerifySignature", "rzp_order_abc", "pay_1", "sig").Return(true).Twice()
	orderRepo.On("UpdatePaymentStatus", "ord-9", models.PaymentStatusPaid).Return(nil).Twice()
	notifier.On("NotifyOrderConfirmed", mock.Anything, mock.Anything).Twice()

	for i := 0; i < 2; i++ {
		order, err := svc.ConfirmPayment("ord-9", "user-1", "rzp_order_abc", "pay_1", "sig")
		assert.NoError(t, err, "attempt %d", i+1)
		assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	}

	// Re-confirming never creates another order.
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
	orderRepo.AssertExpectations(t)
}

func TestConfirmPayment_OtherUsersOrderIsNotFound(t *testing.T) {
	svc, _, orderRepo, gateway, notifier := checkoutFixture()

	orderRepo.On("GetByIDForUser", "ord-9", "user-2").
		Return(nil, fmt.Errorf("order ord-9: %w", repositories.ErrNotFound)).Once()

	order, err := svc.ConfirmPayment("ord-9", "user-2", "rzp_order_abc", "pay_1", "sig")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, services.ErrNotFound)
	orderRepo.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything)
	gateway.AssertNotCalled(t, "VerifySignature", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyOrderConfirmed", mock.Anything, mock.Anything)
}

func TestConfirmPayment_TamperedSignatureFailsPayment(t *testing.T) {
	svc, _, orderRepo, gateway, notifier := checkoutFixture()

	orderRepo.On("GetByIDForUser", "ord-9", "user-1").Return(paidTestOrder("user-1"), nil).Once()
	gateway.On("VerifySignature", "rzp_order_abc", "pay_1", "bad-sig").Return(false).Once()
	orderRepo.On("UpdatePaymentStatus", "ord-9", models.PaymentStatusFailed).Return(nil).Once()

	order, err := svc.ConfirmPayment("ord-9", "user-1", "rzp_order_abc", "pay_1", "bad-sig")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, services.ErrSignatureMismatch)
	orderRepo.AssertNotCalled(t, "UpdatePaymentStatus", "ord-9", models.PaymentStatusPaid)
	notifier.AssertNotCalled(t, "NotifyOrderConfirmed", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
}

func TestConfirmPayment_BadReplayCannotUnpayOrder(t *testing.T) {
	svc, _, orderRepo, gateway, notifier := checkoutFixture()

	settled := paidTestOrder("user-1")
	settled.PaymentStatus = models.PaymentStatusPaid

	orderRepo.On("GetByIDForUser", "ord-9", "user-1").Return(settled, nil).Once()
	gateway.On("VerifySignature", "rzp_order_abc", "pay_2", "bad-sig").Return(false).Once()

	order, err := svc.ConfirmPayment("ord-9", "user-1", "rzp_order_abc", "pay_2", "bad-sig")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, services.ErrSignatureMismatch)
	// A settled payment stays settled: no status write at all.
	orderRepo.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyOrderConfirmed", mock.Anything, mock.Anything)
}

func TestCancelPayment(t *testing.T) {
	svc, _, orderRepo, _, _ := checkoutFixture()

	orderRepo.On("GetByIDForUser", "ord-9", "user-1").Return(paidTestOrder("user-1"), nil).Once()
	orderRepo.On("UpdatePaymentStatus", "ord-9", models.PaymentStatusCancelled).Return(nil).Once()
	orderRepo.On("UpdateStatus", "ord-9", models.OrderStatusCancelled).Return(nil).Once()

	err := svc.CancelPayment("ord-9", "user-1")

	assert.NoError(t, err)
	orderRepo.AssertExpectations(t)

	// Unknown order is a reported no-op.
	orderRepo.On("GetByIDForUser", "ord-x", "user-1").
		Return(nil, fmt.Errorf("order ord-x: %w", repositories.ErrNotFound)).Once()
	err = svc.CancelPayment("ord-x", "user-1")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
