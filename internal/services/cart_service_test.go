package services_test

import (
	"fmt"
	"testing"

	"arostore/internal/models"
	"arostore/internal/repositories"
	"arostore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func cartFixture() (*services.CartService, *MockCartRepository, *MockProductRepository) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	return services.NewCartService(cartRepo, productRepo), cartRepo, productRepo
}

func TestCartService_Summary(t *testing.T) {
	svc, cartRepo, _ := cartFixture()

	cartRepo.On("GetBySession", "sess-1").Return(sessionCart(), nil).Once()

	summary, err := svc.Summary("sess-1")

	assert.NoError(t, err)
	assert.Len(t, summary.Items, 2)
	assert.Equal(t, 1920.00, summary.Subtotal)
	assert.Equal(t, 0.0, summary.Shipping)
	assert.Equal(t, 1920.00, summary.Total)
	assert.True(t, summary.FreeShipping)
	assert.Equal(t, 0.0, summary.RemainingForFree)
	cartRepo.AssertExpectations(t)
}

func TestCartService_SummaryBelowThreshold(t *testing.T) {
	svc, cartRepo, _ := cartFixture()

	items := []models.CartItem{
		{ID: "ci-1", Product: models.Product{Price: 400.00}, Quantity: 1},
	}
	cartRepo.On("GetBySession", "sess-1").Return(items, nil).Once()

	summary, err := svc.Summary("sess-1")

	assert.NoError(t, err)
	assert.Equal(t, 400.00, summary.Subtotal)
	assert.Equal(t, 99.00, summary.Shipping)
	assert.Equal(t, 499.00, summary.Total)
	assert.False(t, summary.FreeShipping)
	assert.Equal(t, 1100.00, summary.RemainingForFree)
}

func TestCartService_AddItem(t *testing.T) {
	svc, cartRepo, productRepo := cartFixture()

	product := &models.Product{ID: "prod-1", Name: "Brake Pad Set", Price: 850.00, InStock: true}
	added := &models.CartItem{ID: "ci-1", SessionKey: "sess-1", ProductID: "prod-1", Product: *product, Quantity: 2}

	productRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	cartRepo.On("Add", "sess-1", "prod-1", 2).Return(added, nil).Once()

	item, err := svc.AddItem("sess-1", "prod-1", 2)

	assert.NoError(t, err)
	assert.Equal(t, added, item)
	cartRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestCartService_AddItemDefaultsQuantityToOne(t *testing.T) {
	svc, cartRepo, productRepo := cartFixture()

	product := &models.Product{ID: "prod-1", Name: "Oil Filter", Price: 220.00, InStock: true}
	productRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	cartRepo.On("Add", "sess-1", "prod-1", 1).
		Return(&models.CartItem{ID: "ci-1", Quantity: 1, Product: *product}, nil).Once()

	_, err := svc.AddItem("sess-1", "prod-1", 0)

	assert.NoError(t, err)
	cartRepo.AssertExpectations(t)
}

func TestCartService_AddItemUnknownOrOutOfStockProduct(t *testing.T) {
	svc, cartRepo, productRepo := cartFixture()

	productRepo.On("GetByID", "prod-x").
		Return(nil, fmt.Errorf("product prod-x: %w", repositories.ErrNotFound)).Once()
	_, err := svc.AddItem("sess-1", "prod-x", 1)
	assert.ErrorIs(t, err, services.ErrNotFound)

	productRepo.On("GetByID", "prod-2").
		Return(&models.Product{ID: "prod-2", InStock: false}, nil).Once()
	_, err = svc.AddItem("sess-1", "prod-2", 1)
	assert.ErrorIs(t, err, services.ErrNotFound)

	cartRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_UpdateQuantityScopedToSession(t *testing.T) {
	svc, cartRepo, _ := cartFixture()

	// Another session's item looks exactly like a missing one.
	cartRepo.On("SetQuantity", "ci-1", "other-sess", 3).
		Return(fmt.Errorf("cart item ci-1: %w", repositories.ErrNotFound)).Once()

	err := svc.UpdateQuantity("ci-1", "other-sess", 3)

	assert.ErrorIs(t, err, services.ErrNotFound)
	cartRepo.AssertExpectations(t)
}

func TestCartService_RemoveItem(t *testing.T) {
	svc, cartRepo, _ := cartFixture()

	cartRepo.On("Remove", "ci-1", "sess-1").Return(nil).Once()
	assert.NoError(t, svc.RemoveItem("ci-1", "sess-1"))

	cartRepo.On("Remove", "ci-x", "sess-1").
		Return(fmt.Errorf("cart item ci-x: %w", repositories.ErrNotFound)).Once()
	assert.ErrorIs(t, svc.RemoveItem("ci-x", "sess-1"), services.ErrNotFound)
}
