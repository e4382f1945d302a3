package domain

import "time"

// Restaurant is a row of the catalog restaurants table.
type Restaurant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Cuisine   string    `json:"cuisine"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderStatus is the lifecycle state of an order. The catalog only ever creates orders as OrderPending.
type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
)

// OrderItem is one line of an order.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	PriceCts int64  `json:"price_cents"`
}

// Order is a customer order placed against a restaurant.
type Order struct {
	ID           string      `json:"id"`
	RestaurantID string      `json:"restaurant_id"`
	Customer     string      `json:"customer"`
	Items        []OrderItem `json:"items"`
	TotalCts     int64       `json:"total_cents"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Total returns the sum of quantity * price over all items.
func (o Order) Total() int64 {
	var total int64
	for _, it := range o.Items {
		total += int64(it.Quantity) * it.PriceCts
	}
	return total
}
