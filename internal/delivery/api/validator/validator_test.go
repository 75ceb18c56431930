package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"min=1,max=99"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&addItemRequest{ProductID: "0b8f7a8e-3c1f-4c8e-9a57-1f2d3e4a5b6c", Quantity: 2}))

	err := v.Validate(&addItemRequest{Quantity: 0})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "product_id: required")
		assert.Contains(t, err.Error(), "quantity: min=1")
	}
}
