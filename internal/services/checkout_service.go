package services

import (
	"errors"
	"fmt"
	"log"

	"arostore/internal/models"
	"arostore/internal/repositories"
)

// PaymentGateway is the outbound contract to the payment provider. The
// production implementation lives in internal/payment; tests inject doubles.
type PaymentGateway interface {
	KeyID() string
	CreateIntent(total float64, orderID string) (string, error)
	VerifySignature(providerOrderID, paymentID, signature string) bool
}

// Notifier dispatches a confirmation without blocking the caller. It never
// returns an error; delivery failures are its own problem to log.
type Notifier interface {
	NotifyOrderConfirmed(order *models.Order, items []models.OrderItem)
}

// CheckoutRequest carries the customer and shipping fields submitted on the
// checkout form.
type CheckoutRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required,max=100"`
	State    string `json:"state" validate:"omitempty,max=100"`
	ZipCode  string `json:"zip_code" validate:"required,max=20"`
	Landmark string `json:"landmark" validate:"omitempty,max=200"`
}

// PaymentInitiation is the payload handed to the browser to invoke the
// provider's client-side payment UI.
type PaymentInitiation struct {
	OrderID         string `json:"order_id"`
	RazorpayKeyID   string `json:"razorpay_key_id"`
	RazorpayOrderID string `json:"razorpay_order_id"`
	Amount          int64  `json:"amount"` // minor units (paise)
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
}

// CheckoutService orchestrates the checkout and payment settlement workflow:
// cart validation, price snapshotting, transactional order commit, payment
// intent creation with compensation, and callback reconciliation.
type CheckoutService struct {
	cartRepo  repositories.CartRepository
	orderRepo repositories.OrderRepository
	gateway   PaymentGateway
	notifier  Notifier
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(cartRepo repositories.CartRepository, orderRepo repositories.OrderRepository, gateway PaymentGateway, notifier Notifier) *CheckoutService {
	return &CheckoutService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		gateway:   gateway,
		notifier:  notifier,
	}
}

// Checkout converts the session's cart into a durable order and requests a
// payment intent from the provider.
//
// Ordering invariant: the cart is cleared only after the order and its items
// are durably committed, never before. If the gateway then fails, the order
// is compensated to failed/cancelled and the cart stays cleared; the user
// must re-add items before retrying.
func (s *CheckoutService) Checkout(sessionKey, userID string, req CheckoutRequest) (*PaymentInitiation, error) {
	items, err := s.cartRepo.GetBySession(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for checkout: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	quote := Quote(items)

	order := &models.Order{
		UserID:          &userID,
		CustomerName:    req.Name,
		CustomerEmail:   req.Email,
		CustomerPhone:   req.Phone,
		ShippingAddress: req.Address,
		City:            req.City,
		State:           req.State,
		ZipCode:         req.ZipCode,
		Landmark:        req.Landmark,
		TotalAmount:     quote.Total,
		PaymentMethod:   models.PaymentMethodRazorpay,
		Status:          models.OrderStatusProcessing,
		PaymentStatus:   models.PaymentStatusPending,
	}
	for i := range items {
		// Snapshot name, price and image by value; later catalog edits must
		// not alter this order.
		order.Items = append(order.Items, models.OrderItem{
			ProductName:  items[i].Product.Name,
			ProductPrice: items[i].Product.Price,
			ProductImage: items[i].Product.Image,
			Quantity:     items[i].Quantity,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	if err := s.cartRepo.Clear(sessionKey); err != nil {
		return nil, fmt.Errorf("failed to clear cart after committing order %s: %w", order.ID, err)
	}

	providerOrderID, err := s.gateway.CreateIntent(quote.Total, order.ID)
	if err != nil {
		s.compensateFailedIntent(order.ID)
		return nil, &GatewayError{Err: err}
	}

	return &PaymentInitiation{
		OrderID:         order.ID,
		RazorpayKeyID:   s.gateway.KeyID(),
		RazorpayOrderID: providerOrderID,
		Amount:          int64(quote.Total * 100),
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
	}, nil
}

// compensateFailedIntent marks an order failed/cancelled after the gateway
// rejected the intent. The compensation itself is best-effort: the order row
// exists either way, and the caller already gets a GatewayError.
func (s *CheckoutService) compensateFailedIntent(orderID string) {
	if err := s.orderRepo.UpdatePaymentStatus(orderID, models.PaymentStatusFailed); err != nil {
		log.Printf("Failed to mark payment failed for order %s: %v", orderID, err)
	}
	if err := s.orderRepo.UpdateStatus(orderID, models.OrderStatusCancelled); err != nil {
		log.Printf("Failed to cancel order %s: %v", orderID, err)
	}
}

// ConfirmPayment reconciles a provider success callback with local order
// state. The lookup is ownership-checked, the provider signature check is
// mandatory, and a failed check is handled like a failed payment rather than
// a crash. Re-confirming an already-paid order re-applies paid and is not an
// error.
func (s *CheckoutService) ConfirmPayment(orderID, userID, providerOrderID, paymentID, signature string) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load order for payment confirmation: %w", err)
	}

	if !s.gateway.VerifySignature(providerOrderID, paymentID, signature) {
		// A settled payment stays settled: a bad replay against a paid order
		// must not downgrade it to failed.
		if order.PaymentStatus != models.PaymentStatusPaid {
			if err := s.orderRepo.UpdatePaymentStatus(order.ID, models.PaymentStatusFailed); err != nil {
				log.Printf("Failed to mark payment failed for order %s: %v", order.ID, err)
			}
		}
		return nil, ErrSignatureMismatch
	}

	if err := s.orderRepo.UpdatePaymentStatus(order.ID, models.PaymentStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to mark order %s paid: %w", order.ID, err)
	}
	order.PaymentStatus = models.PaymentStatusPaid

	// Fire-and-forget: the dispatcher owns delivery, its failures never
	// reach the user or the order state.
	s.notifier.NotifyOrderConfirmed(order, order.Items)

	return order, nil
}

// CancelPayment records a user-cancelled payment: both payment status and
// order status move to cancelled. A miss or ownership mismatch is a no-op
// reported as ErrNotFound.
func (s *CheckoutService) CancelPayment(orderID, userID string) error {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load order for payment cancellation: %w", err)
	}

	if err := s.orderRepo.UpdatePaymentStatus(order.ID, models.PaymentStatusCancelled); err != nil {
		return fmt.Errorf("failed to mark payment cancelled for order %s: %w", order.ID, err)
	}
	if err := s.orderRepo.UpdateStatus(order.ID, models.OrderStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel order %s: %w", order.ID, err)
	}
	return nil
}
