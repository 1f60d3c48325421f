package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=100"`
	Sort      string `json:"sort" validate:"omitempty,oneof=featured newest"`
}

type priced struct {
	Price    decimal.Decimal  `json:"price" validate:"gte=0"`
	Discount *decimal.Decimal `json:"discount" validate:"omitempty,gte=0"`
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(lineRequest{ProductID: "1", Quantity: 2, Sort: "newest"}))
}

func TestValidate_FieldsUseJSONNames(t *testing.T) {
	err := Validate(lineRequest{Quantity: 0})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["product_id"])
	assert.Equal(t, "must be greater than or equal to 1", fields["quantity"])
}

func TestValidate_OneOf(t *testing.T) {
	err := Validate(lineRequest{ProductID: "1", Quantity: 1, Sort: "random"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of: featured newest")
}

func TestValidate_DecimalFields(t *testing.T) {
	neg := decimal.NewFromInt(-1)

	assert.NoError(t, Validate(priced{Price: decimal.NewFromFloat(9.99)}))
	assert.Error(t, Validate(priced{Price: decimal.NewFromInt(-5)}))
	assert.Error(t, Validate(priced{Price: decimal.NewFromInt(5), Discount: &neg}))
}

func TestDecodeAndValidate(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"7","quantity":3}`))

	var req lineRequest
	require.NoError(t, DecodeAndValidate(r, &req))
	assert.Equal(t, "7", req.ProductID)
	assert.Equal(t, 3, req.Quantity)
}

func TestDecodeAndValidate_UnknownField(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"7","quantity":1,"extra":true}`))

	var req lineRequest
	err := DecodeAndValidate(r, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestDecodeAndValidate_InvalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))

	var req lineRequest
	assert.Error(t, DecodeAndValidate(r, &req))
}
