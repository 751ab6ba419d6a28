package handlers

import (
	"errors"
	"fmt"
	"log"

	"arostore/internal/middleware"
	"arostore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles the checkout page, payment initiation and the
// provider callback endpoints.
type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	cartService     *services.CartService
	validate        *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *services.CheckoutService, cartService *services.CartService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		cartService:     cartService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app. All of
// them require an authenticated user.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Get("/", h.HandleCheckoutPage)
	checkoutRoutes.Post("/payment", h.HandleProcessPayment)
	checkoutRoutes.Post("/payment/:order_id/success", h.HandlePaymentSuccess)
	checkoutRoutes.Post("/payment/:order_id/cancel", h.HandlePaymentCancel)
}

// HandleCheckoutPage renders the checkout summary. An empty cart sends the
// user back to the catalog.
func (h *CheckoutHandler) HandleCheckoutPage(c *fiber.Ctx) error {
	summary, err := h.cartService.Summary(middleware.SessionKey(c))
	if err != nil {
		log.Printf("Error loading cart for checkout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load checkout",
		})
	}
	if len(summary.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Your cart is empty",
		})
	}
	return c.JSON(summary)
}

// HandleProcessPayment commits the order and requests a payment intent,
// returning the payload the browser uses to open the provider's payment UI.
func (h *CheckoutHandler) HandleProcessPayment(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	initiation, err := h.checkoutService.Checkout(middleware.SessionKey(c), middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Your cart is empty",
			})
		}
		var gwErr *services.GatewayError
		if errors.As(err, &gwErr) {
			// Expected failure mode: the order was compensated to
			// failed/cancelled, the user is prompted to retry.
			log.Printf("Gateway failure during checkout: %v", gwErr)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Payment could not be initiated, please try again",
			})
		}
		log.Printf("Error processing checkout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not process checkout",
		})
	}

	return c.JSON(initiation)
}

// PaymentCallbackRequest carries the provider-supplied verification
// parameters relayed by the browser after the hosted payment flow.
type PaymentCallbackRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// HandlePaymentSuccess reconciles a success callback. Unexpected failures
// are logged and answered with a safe redirect rather than a server crash.
func (h *CheckoutHandler) HandlePaymentSuccess(c *fiber.Ctx) error {
	var req PaymentCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	order, err := h.checkoutService.ConfirmPayment(
		c.Params("order_id"),
		middleware.UserID(c),
		req.RazorpayOrderID,
		req.RazorpayPaymentID,
		req.RazorpaySignature,
	)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		if errors.Is(err, services.ErrSignatureMismatch) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Payment verification failed",
			})
		}
		log.Printf("Error confirming payment for order %s: %v", c.Params("order_id"), err)
		return c.Redirect("/api/v1/products", fiber.StatusSeeOther)
	}

	return c.JSON(fiber.Map{
		"message":     "Payment successful",
		"order":       order,
		"order_items": order.Items,
	})
}

// HandlePaymentCancel records a cancelled payment and sends the user back
// to checkout.
func (h *CheckoutHandler) HandlePaymentCancel(c *fiber.Ctx) error {
	err := h.checkoutService.CancelPayment(c.Params("order_id"), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error cancelling payment for order %s: %v", c.Params("order_id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not cancel payment",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Payment was cancelled",
	})
}
