package services

import (
	"errors"
	"fmt"

	"arostore/internal/models"
	"arostore/internal/repositories"
)

// OrderService serves the customer-facing order history surface.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// OrderDetail is an order plus the subtotal/shipping breakdown recomputed
// from its item snapshots for display.
type OrderDetail struct {
	Order    *models.Order `json:"order"`
	Subtotal float64       `json:"subtotal"`
	Shipping float64       `json:"shipping"`
}

// History returns the user's orders, newest first.
func (s *OrderService) History(userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}
	return orders, nil
}

// Detail returns one of the user's orders with its price breakdown. Orders
// belonging to other users are ErrNotFound.
func (s *OrderService) Detail(orderID, userID string) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	// Recompute the breakdown from the item snapshots rather than guessing
	// from the total: a subtotal just under the threshold plus the flat fee
	// can land the stored total above it.
	var subtotal float64
	for i := range order.Items {
		subtotal += order.Items[i].TotalPrice()
	}
	return &OrderDetail{
		Order:    order,
		Subtotal: subtotal,
		Shipping: order.TotalAmount - subtotal,
	}, nil
}
