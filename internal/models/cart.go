package models

// LineItem is a product held in a cart. Product fields are flattened in JSON.
type LineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Total is price x quantity for the line.
func (li LineItem) Total() float64 {
	return li.Price * float64(li.Quantity)
}

// Snapshot is a read-only view of a cart after an operation.
type Snapshot struct {
	CartID       string     `json:"cart_id"`
	Version      uint64     `json:"version"`
	Items        []LineItem `json:"items"`
	Subtotal     float64    `json:"subtotal"`
	Threshold    float64    `json:"threshold"`
	GiftAdded    bool       `json:"gift_added"`
	Notification string     `json:"notification,omitempty"`
}

// Find returns the line for productID, if any.
func (s Snapshot) Find(productID int) (LineItem, bool) {
	for _, it := range s.Items {
		if it.ID == productID {
			return it, true
		}
	}
	return LineItem{}, false
}
