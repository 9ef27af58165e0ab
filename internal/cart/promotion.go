package cart

import "github.com/Cheertaboi/cart-service/internal/models"

// DefaultThreshold is the subtotal at which the free gift is granted.
const DefaultThreshold = 1000.0

const GiftNotification = "Congratulations! You have earned a free gift."

type PromotionState int

const (
	GiftAbsent PromotionState = iota
	GiftPresent
)

func (s PromotionState) String() string {
	switch s {
	case GiftPresent:
		return "GIFT_PRESENT"
	default:
		return "GIFT_ABSENT"
	}
}

// PromotionRule grants a single free gift line while the subtotal of the
// other lines is at or above the threshold.
type PromotionRule struct {
	threshold float64
	gift      models.Product
}

func NewPromotionRule(threshold float64, gift models.Product) *PromotionRule {
	return &PromotionRule{threshold: threshold, gift: gift}
}

func (r *PromotionRule) Threshold() float64 {
	return r.threshold
}

func (r *PromotionRule) Gift() models.Product {
	return r.gift
}

func (r *PromotionRule) Reached(subtotal float64) bool {
	return subtotal >= r.threshold
}

// Subtotal sums price x quantity over every line except the gift.
func (r *PromotionRule) Subtotal(items []models.LineItem) float64 {
	total := 0.0
	for _, it := range items {
		if it.ID == r.gift.ID {
			continue
		}
		total += it.Total()
	}
	return total
}

func (r *PromotionRule) State(items []models.LineItem) PromotionState {
	for _, it := range items {
		if it.ID == r.gift.ID {
			return GiftPresent
		}
	}
	return GiftAbsent
}

// Apply returns a new item list consistent with the rule: the gift is appended
// with quantity 1 when the subtotal qualifies and dropped when it does not.
// A gift line that is already present keeps its position, is forced back to
// quantity 1 and loses any duplicates. Applying twice yields the same result.
func (r *PromotionRule) Apply(items []models.LineItem) ([]models.LineItem, PromotionState) {
	eligible := r.Reached(r.Subtotal(items))

	out := make([]models.LineItem, 0, len(items)+1)
	seen := false
	for _, it := range items {
		if it.ID != r.gift.ID {
			out = append(out, it)
			continue
		}
		if eligible && !seen {
			out = append(out, models.LineItem{Product: r.gift, Quantity: 1})
			seen = true
		}
	}

	if !eligible {
		return out, GiftAbsent
	}
	if !seen {
		out = append(out, models.LineItem{Product: r.gift, Quantity: 1})
	}
	return out, GiftPresent
}
