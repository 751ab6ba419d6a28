package handlers

import (
	"errors"
	"log"

	"arostore/internal/middleware"
	"arostore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for the customer's order history.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app. Both routes
// require an authenticated user and only ever expose that user's orders.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleOrderHistory)
	orderRoutes.Get("/:id", h.HandleOrderDetail)
}

// HandleOrderHistory retrieves the authenticated user's orders, newest
// first.
func (h *OrderHandler) HandleOrderHistory(c *fiber.Ctx) error {
	orders, err := h.service.History(middleware.UserID(c))
	if err != nil {
		log.Printf("Error loading order history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// HandleOrderDetail retrieves one of the user's orders with its price
// breakdown. Other users' orders look exactly like missing ones.
func (h *OrderHandler) HandleOrderDetail(c *fiber.Ctx) error {
	detail, err := h.service.Detail(c.Params("id"), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error loading order %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
		})
	}
	return c.JSON(detail)
}
