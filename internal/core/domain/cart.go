package domain

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// CartLine is a copy of a vase taken when it was first added to a cart.
// It is not refreshed when the vase changes later.
type CartLine struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	CartID     string     `json:"cartId"`
	Items      []CartLine `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
}

type DeleteResult struct {
	DeletedID string `json:"deletedId"`
	Success   bool   `json:"success"`
}

func NewCart(id string) Cart {
	return Cart{CartID: id, Items: []CartLine{}}
}

func (c Cart) RecordID() string {
	return c.CartID
}

// AddVase increments the line for v, or appends a new line with quantity 1.
func (c *Cart) AddVase(v Vase) {
	if c.IncrementLine(v.ID) {
		return
	}
	c.Items = append(c.Items, CartLine{
		ID:        v.ID,
		Name:      v.Name,
		UnitPrice: v.UnitPrice,
		Quantity:  1,
	})
	c.Recalculate()
}

// IncrementLine bumps the quantity of an existing line. It reports false
// if the cart has no line for vaseID.
func (c *Cart) IncrementLine(vaseID string) bool {
	i := c.lineIndex(vaseID)
	if i < 0 {
		return false
	}
	c.Items[i].Quantity++
	c.Recalculate()
	return true
}

// RemoveOne decrements the line for vaseID and drops it when it reaches zero.
func (c *Cart) RemoveOne(vaseID string) error {
	i := c.lineIndex(vaseID)
	if i < 0 {
		return ErrItemNotInCart
	}
	c.Items[i].Quantity--
	if c.Items[i].Quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	c.Recalculate()
	return nil
}

// Recalculate sets TotalPrice to the sum of quantity * unitPrice over all lines.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for _, line := range c.Items {
		total = total.Add(decimal.NewFromFloat(line.UnitPrice).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	c.TotalPrice = total.InexactFloat64()
}

// Validate checks the lines of a cart loaded from storage: every line names a
// vase once, with a positive quantity and a non-negative price.
func (c Cart) Validate() error {
	seen := make(map[string]struct{}, len(c.Items))
	for i, line := range c.Items {
		if line.ID == "" {
			return fmt.Errorf("line %d has no vase id", i)
		}
		if _, dup := seen[line.ID]; dup {
			return fmt.Errorf("vase %s appears on more than one line", line.ID)
		}
		seen[line.ID] = struct{}{}
		if line.Quantity <= 0 {
			return fmt.Errorf("vase %s has quantity %d", line.ID, line.Quantity)
		}
		if line.UnitPrice < 0 || math.IsNaN(line.UnitPrice) || math.IsInf(line.UnitPrice, 0) {
			return fmt.Errorf("vase %s has unit price %v", line.ID, line.UnitPrice)
		}
	}
	return nil
}

func (c *Cart) lineIndex(vaseID string) int {
	for i, line := range c.Items {
		if line.ID == vaseID {
			return i
		}
	}
	return -1
}

// UnmarshalJSON recomputes the total from the lines. Key matching is
// case-insensitive, so records written with "totalprice" decode as well.
func (c *Cart) UnmarshalJSON(data []byte) error {
	type plain Cart
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Cart(raw)
	if c.Items == nil {
		c.Items = []CartLine{}
	}
	c.Recalculate()
	return nil
}
