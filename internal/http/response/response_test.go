package response

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_WireShape(t *testing.T) {
	body, err := json.Marshal(Error("subscription not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"detail": "subscription not found"}`, string(body))
}

func TestValidationError(t *testing.T) {
	type entry struct {
		ClientName string `validate:"required"`
		Technology string `validate:"required,oneof=Starlink VSAT"`
		Amount     int    `validate:"gt=0"`
	}

	err := validator.New().Struct(entry{Technology: "Fiber", Amount: -5})
	require.Error(t, err)

	detail := ValidationError(err.(validator.ValidationErrors))
	assert.Contains(t, detail.Detail, "field ClientName is a required field")
	assert.Contains(t, detail.Detail, "field Technology must be one of: Starlink VSAT")
	assert.Contains(t, detail.Detail, "field Amount must be greater than 0")
}
