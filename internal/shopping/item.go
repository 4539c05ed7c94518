// Package shopping holds the shopping list domain: items, order records,
// day grouping, totals and validation.
package shopping

import (
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultDayLayout renders headers like "Friday, 16 October 2026".
	DefaultDayLayout = "Monday, 2 January 2006"

	DeliveryFee = 0
	Discount    = 0
)

// Item is a single shopping list entry. Items are compared by value; there is
// no separate identifier.
type Item struct {
	Name      string
	Amount    int
	ImageURL  string
	DateAdded int64 // milliseconds since epoch
}

// NewItem stamps the item with the given creation time.
func NewItem(name string, amount int, imageURL string, now time.Time) Item {
	return Item{
		Name:      name,
		Amount:    amount,
		ImageURL:  imageURL,
		DateAdded: now.UnixMilli(),
	}
}

func (it Item) Added() time.Time {
	return time.UnixMilli(it.DateAdded)
}

func (it Item) HasImage() bool {
	return it.ImageURL != ""
}

// OrderRecord is the part of an item kept at checkout.
type OrderRecord struct {
	Name     string `json:"name"`
	Amount   int    `json:"amount"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func ToOrders(items []Item) []OrderRecord {
	orders := make([]OrderRecord, 0, len(items))
	for _, it := range items {
		orders = append(orders, OrderRecord{Name: it.Name, Amount: it.Amount, ImageURL: it.ImageURL})
	}
	return orders
}

// ParseAmount coerces user input to a non-negative integer, falling back to 0.
func ParseAmount(text string) int {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func Subtotal(items []Item) int {
	sum := 0
	for _, it := range items {
		sum += it.Amount
	}
	return sum
}

func ComputeTotal(items []Item) int {
	return Subtotal(items) + DeliveryFee - Discount
}

// RemoveAll drops every item whose value is in selected. Duplicated values are
// all removed.
func RemoveAll(items []Item, selected map[Item]struct{}) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if _, ok := selected[it]; ok {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Contains reports whether an item with the same value is in items.
func Contains(items []Item, target Item) bool {
	for _, it := range items {
		if it == target {
			return true
		}
	}
	return false
}
