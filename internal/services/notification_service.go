package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"arostore/internal/models"
)

// EventPublisher hands a message to the background delivery queue.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Mailer delivers a composed message to one recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

// OrderConfirmedEvent is the queued payload for a confirmation delivery.
type OrderConfirmedEvent struct {
	OrderID string `json:"order_id"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NotificationQueue is the routing key for notification deliveries.
const NotificationQueue = "notification_queue"

// NotificationService composes order confirmation emails and dispatches them
// through the notification queue. Dispatch is fire-and-forget: publishing
// failures are logged and swallowed, and the consumer makes at most one
// delivery attempt per event.
type NotificationService struct {
	publisher EventPublisher
	mailer    Mailer
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(publisher EventPublisher, mailer Mailer) *NotificationService {
	return &NotificationService{
		publisher: publisher,
		mailer:    mailer,
	}
}

// NotifyOrderConfirmed enqueues a confirmation email for a paid order. It
// returns immediately; delivery happens on the queue consumer.
func (s *NotificationService) NotifyOrderConfirmed(order *models.Order, items []models.OrderItem) {
	event := OrderConfirmedEvent{
		OrderID: order.ID,
		To:      order.CustomerEmail,
		Subject: fmt.Sprintf("Order Confirmation - Aro Parts #%s", order.ID),
		Body:    ComposeOrderConfirmation(order, items),
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal confirmation event for order %s: %v", order.ID, err)
		return
	}
	if s.publisher == nil {
		log.Printf("Notification publisher not configured, dropping confirmation for order %s", order.ID)
		return
	}
	if err := s.publisher.Publish("", NotificationQueue, body); err != nil {
		log.Printf("Warning: failed to enqueue confirmation for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Enqueued confirmation email for order %s", order.ID)
}

// DeliverQueued handles one queued confirmation event. A failed send is
// logged and acknowledged anyway: one attempt per event, no retry.
func (s *NotificationService) DeliverQueued(body []byte) error {
	var event OrderConfirmedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Dropping malformed notification event: %v", err)
		return nil
	}
	if err := s.mailer.Send(event.To, event.Subject, event.Body); err != nil {
		log.Printf("Failed to send confirmation email for order %s: %v", event.OrderID, err)
		return nil
	}
	log.Printf("Confirmation email sent to %s for order %s", event.To, event.OrderID)
	return nil
}

// ComposeOrderConfirmation renders the plain-text confirmation email from an
// order and its item snapshots. The subtotal is the sum of the item
// snapshots; shipping is whatever the stored total carries on top of it, so
// the summary always matches the quote the order was committed with.
func ComposeOrderConfirmation(order *models.Order, items []models.OrderItem) string {
	var subtotal float64
	for i := range items {
		subtotal += items[i].TotalPrice()
	}
	shipping := order.TotalAmount - subtotal

	shippingLabel := "FREE"
	if shipping > 0 {
		shippingLabel = fmt.Sprintf("₹%.2f", shipping)
	}

	paymentLabel := "(Pending)"
	if order.PaymentStatus == models.PaymentStatusPaid {
		paymentLabel = "(Paid)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", order.CustomerName)
	b.WriteString("Thank you for your order! We've received your order and it's being processed.\n\n")
	b.WriteString("ORDER DETAILS\n=============\n")
	fmt.Fprintf(&b, "Order ID: #%s\n", order.ID)
	fmt.Fprintf(&b, "Order Date: %s\n\n", order.CreatedAt.Format("02 January 2006, 3:04 PM"))
	b.WriteString("ITEMS\n-----\n")
	for i := range items {
		fmt.Fprintf(&b, "- %s (Qty: %d) - ₹%.2f\n", items[i].ProductName, items[i].Quantity, items[i].ProductPrice)
	}
	b.WriteString("\nORDER SUMMARY\n=============\n")
	fmt.Fprintf(&b, "Subtotal: ₹%.2f\n", subtotal)
	fmt.Fprintf(&b, "Shipping: %s\n", shippingLabel)
	fmt.Fprintf(&b, "Total: ₹%.2f\n\n", order.TotalAmount)
	b.WriteString("SHIPPING ADDRESS\n================\n")
	fmt.Fprintf(&b, "%s\n%s\n%s, %s - %s\n", order.CustomerName, order.ShippingAddress, order.City, order.State, order.ZipCode)
	fmt.Fprintf(&b, "Phone: %s\n\n", order.CustomerPhone)
	b.WriteString("PAYMENT METHOD\n==============\n")
	fmt.Fprintf(&b, "Razorpay Payment %s\n\n", paymentLabel)
	b.WriteString("WHAT'S NEXT?\n============\n")
	b.WriteString("We'll send you another email once your order is shipped.\n\n")
	b.WriteString("Thank you for shopping with Aro Parts!\n\nBest regards,\nAro Parts Team\n")
	return b.String()
}
