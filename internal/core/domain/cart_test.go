package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddVaseTwiceMergesLine(t *testing.T) {
	cart := NewCart("c1")
	ming := Vase{ID: "v1", Name: "Ming", UnitPrice: 10}

	cart.AddVase(ming)
	cart.AddVase(ming)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 20.0, cart.TotalPrice)
}

func TestCart_RemoveOneDropsLineAtZero(t *testing.T) {
	cart := NewCart("c1")
	cart.AddVase(Vase{ID: "v1", Name: "Ming", UnitPrice: 10})
	cart.AddVase(Vase{ID: "v2", Name: "Tang", UnitPrice: 2.5})

	require.NoError(t, cart.RemoveOne("v1"))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "v2", cart.Items[0].ID)
	assert.Equal(t, 2.5, cart.TotalPrice)
	assert.NotNil(t, cart.Items)
}

func TestCart_RemoveOneMissingLine(t *testing.T) {
	cart := NewCart("c1")
	err := cart.RemoveOne("nope")
	assert.ErrorIs(t, err, ErrItemNotInCart)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCart_TotalDoesNotDrift(t *testing.T) {
	cart := NewCart("c1")
	for i := 0; i < 10; i++ {
		cart.AddVase(Vase{ID: "v1", Name: "Cheap", UnitPrice: 0.1})
	}
	cart.AddVase(Vase{ID: "v2", Name: "Odd", UnitPrice: 0.2})

	assert.Equal(t, 1.2, cart.TotalPrice)
}

func TestCart_LineOrderIsInsertionOrder(t *testing.T) {
	cart := NewCart("c1")
	for _, id := range []string{"b", "a", "c", "a"} {
		cart.AddVase(Vase{ID: id, Name: id, UnitPrice: 1})
	}

	ids := make([]string, 0, len(cart.Items))
	for _, line := range cart.Items {
		ids = append(ids, line.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestCart_UnmarshalRecomputesTotal(t *testing.T) {
	raw := `{"cartId":"c1","items":[{"id":"v1","name":"Ming","unitPrice":10,"quantity":3}],"totalprice":999}`

	var cart Cart
	require.NoError(t, json.Unmarshal([]byte(raw), &cart))

	assert.Equal(t, "c1", cart.CartID)
	assert.Equal(t, 30.0, cart.TotalPrice)
}

func TestCart_MarshalEmptyItemsAsArray(t *testing.T) {
	data, err := json.Marshal(NewCart("c1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cartId":"c1","items":[],"totalPrice":0}`, string(data))

	var cart Cart
	require.NoError(t, json.Unmarshal([]byte(`{"cartId":"c2"}`), &cart))
	assert.NotNil(t, cart.Items)
}

func TestValidateVase(t *testing.T) {
	tests := []struct {
		name      string
		vaseName  string
		unitPrice float64
		wantErr   error
	}{
		{"valid", "Ming", 10, nil},
		{"free", "Gift", 0, nil},
		{"empty name", "", 10, ErrEmptyName},
		{"empty name zero price", "", 0, ErrEmptyName},
		{"negative price", "Ming", -1, ErrNegativePrice},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateVase(tc.vaseName, tc.unitPrice)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCart_Validate(t *testing.T) {
	line := func(id string, price float64, qty int) CartLine {
		return CartLine{ID: id, Name: "n", UnitPrice: price, Quantity: qty}
	}
	tests := []struct {
		name    string
		items   []CartLine
		wantErr bool
	}{
		{"empty", []CartLine{}, false},
		{"valid", []CartLine{line("a", 10, 1), line("b", 0, 3)}, false},
		{"duplicate id", []CartLine{line("a", 10, 1), line("a", 10, 2)}, true},
		{"zero quantity", []CartLine{line("a", 10, 0)}, true},
		{"negative quantity", []CartLine{line("a", 10, -4)}, true},
		{"negative price", []CartLine{line("a", -1, 1)}, true},
		{"no id", []CartLine{line("", 1, 1)}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Cart{CartID: "c1", Items: tc.items}.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVase_Validate(t *testing.T) {
	assert.NoError(t, Vase{ID: "v1", Name: "Ming", UnitPrice: 1}.Validate())
	assert.ErrorIs(t, Vase{ID: "v1", UnitPrice: 1}.Validate(), ErrEmptyName)
	assert.ErrorIs(t, Vase{ID: "v1", Name: "Ming", UnitPrice: -5}.Validate(), ErrNegativePrice)
}
