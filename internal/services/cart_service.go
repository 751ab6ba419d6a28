package services

import (
	"errors"
	"fmt"

	"arostore/internal/models"
	"arostore/internal/repositories"
)

// CartService handles business logic for the session-scoped shopping cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartSummary is the rendered cart payload: the items plus the quote and the
// free-shipping progress for the cart page.
type CartSummary struct {
	Items []models.CartItem `json:"items"`
	PricingQuote
	FreeShipping     bool    `json:"free_shipping"`
	RemainingForFree float64 `json:"remaining_for_free"`
}

// Summary loads the session's cart and quotes it.
func (s *CartService) Summary(sessionKey string) (*CartSummary, error) {
	items, err := s.cartRepo.GetBySession(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	quote := Quote(items)
	return &CartSummary{
		Items:            items,
		PricingQuote:     quote,
		FreeShipping:     quote.Subtotal >= FreeShippingThreshold,
		RemainingForFree: RemainingForFreeShipping(quote.Subtotal),
	}, nil
}

// AddItem puts a product into the session's cart. Re-adding a product
// already in the cart accumulates its quantity instead of duplicating the
// line. The product must exist and be in stock.
func (s *CartService) AddItem(sessionKey, productID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if !product.InStock {
		return nil, ErrNotFound
	}

	item, err := s.cartRepo.Add(sessionKey, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}
	return item, nil
}

// UpdateQuantity sets a cart line's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(itemID, sessionKey string, quantity int) error {
	if err := s.cartRepo.SetQuantity(itemID, sessionKey, quantity); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	return nil
}

// RemoveItem removes a cart line from the session's cart.
func (s *CartService) RemoveItem(itemID, sessionKey string) error {
	if err := s.cartRepo.Remove(itemID, sessionKey); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Count returns the number of lines in the session's cart.
func (s *CartService) Count(sessionKey string) (int64, error) {
	count, err := s.cartRepo.Count(sessionKey)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count, nil
}
