package handlers

import (
	"errors"
	"log"

	"arostore/internal/middleware"
	"arostore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/count", h.HandleGetCartCount)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
}

// HandleGetCart renders the cart summary: items, quote and free-shipping
// progress.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	summary, err := h.service.Summary(middleware.SessionKey(c))
	if err != nil {
		log.Printf("Error loading cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
		})
	}
	return c.JSON(summary)
}

// HandleGetCartCount returns the cart line count for the badge.
func (h *CartHandler) HandleGetCartCount(c *fiber.Ctx) error {
	count, err := h.service.Count(middleware.SessionKey(c))
	if err != nil {
		log.Printf("Error counting cart items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not count cart items",
		})
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleAddItem adds a product to the cart, accumulating quantity if the
// product is already in it.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}

	item, err := h.service.AddItem(middleware.SessionKey(c), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error adding item to cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
		})
	}

	count, _ := h.service.Count(middleware.SessionKey(c))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    item.Product.Name + " added to cart",
		"item":       item,
		"cart_count": count,
	})
}

// HandleUpdateItem sets a cart line's quantity; zero removes the line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	err := h.service.UpdateQuantity(c.Params("id"), middleware.SessionKey(c), req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		log.Printf("Error updating cart item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart item",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleRemoveItem removes a cart line.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	err := h.service.RemoveItem(c.Params("id"), middleware.SessionKey(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		log.Printf("Error removing cart item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove cart item",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
