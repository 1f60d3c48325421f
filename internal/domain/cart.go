package domain

import "github.com/shopspring/decimal"

// MaxLineQuantity caps the quantity of a single cart line. Additions and
// merges past it saturate.
const MaxLineQuantity = 9999

// ClampQuantity limits a positive quantity to MaxLineQuantity.
func ClampQuantity(q int) int {
	return min(q, MaxLineQuantity)
}

// AddQuantity returns a+b for positive quantities, saturating at
// MaxLineQuantity.
func AddQuantity(a, b int) int {
	a, b = ClampQuantity(a), ClampQuantity(b)
	if b > MaxLineQuantity-a {
		return MaxLineQuantity
	}
	return a + b
}

// CartLine is one product and its quantity inside the cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is the effective unit price times the quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartLines is the ordered line set of a cart.
type CartLines []CartLine

// TotalAmount sums the line subtotals.
func (ls CartLines) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range ls {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ItemCount sums the line quantities.
func (ls CartLines) ItemCount() int {
	var count int
	for _, l := range ls {
		count += l.Quantity
	}
	return count
}

// FindIndex returns the index of the line for productID, or -1.
func (ls CartLines) FindIndex(productID string) int {
	for i := range ls {
		if ls[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Normalize returns a copy that satisfies the cart invariants: lines with a
// non-positive quantity or an empty product id are dropped, quantities are
// capped at MaxLineQuantity and duplicate product ids are merged into the
// first occurrence. The second result reports whether anything had to change.
func (ls CartLines) Normalize() (CartLines, bool) {
	out := make(CartLines, 0, len(ls))
	changed := false
	for _, l := range ls {
		if l.Quantity <= 0 || l.Product.ID == "" {
			changed = true
			continue
		}
		if l.Quantity > MaxLineQuantity {
			l.Quantity = MaxLineQuantity
			changed = true
		}
		if i := out.FindIndex(l.Product.ID); i >= 0 {
			out[i].Quantity = AddQuantity(out[i].Quantity, l.Quantity)
			changed = true
			continue
		}
		out = append(out, l)
	}
	return out, changed
}
