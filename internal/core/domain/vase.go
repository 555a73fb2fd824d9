package domain

import "math"

type Vase struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
}

func (v Vase) RecordID() string {
	return v.ID
}

// Validate checks a vase loaded from storage.
func (v Vase) Validate() error {
	return ValidateVase(v.Name, v.UnitPrice)
}

// ValidateVase checks the caller-supplied fields of a vase.
func ValidateVase(name string, unitPrice float64) error {
	if len(name) == 0 {
		return ErrEmptyName
	}
	if unitPrice < 0 || math.IsNaN(unitPrice) || math.IsInf(unitPrice, 0) {
		return ErrNegativePrice
	}
	return nil
}
