package httpclient

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func makeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    &http.Request{URL: &url.URL{Path: "/products/42"}},
	}
}

func TestParseResponseError_NotFound(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusNotFound, `{"message":"Product with id '42' not found"}`), "catalog")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))
}

func TestParseResponseError_BadRequest(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusBadRequest, `{"error":{"message":"limit must be a number"}}`), "catalog")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "limit must be a number")
}

func TestParseResponseError_Unavailable(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable} {
		err := ParseResponseError(makeResponse(status, `{"error":"slow down"}`), "catalog")

		assert.ErrorIs(t, err, apperrors.ErrServiceUnavail, "status %d", status)
		assert.Equal(t, http.StatusServiceUnavailable, apperrors.HTTPStatus(err))
		assert.Contains(t, err.Error(), "slow down")
	}
}

func TestParseResponseError_UnstructuredBody(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusTeapot, "<html>nope</html>"), "catalog")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog returned status 418")
	assert.Contains(t, err.Error(), "<html>nope</html>")
}

func TestParseResponseError_NoRequest(t *testing.T) {
	resp := makeResponse(http.StatusNotFound, "")
	resp.Request = nil

	err := ParseResponseError(resp, "catalog")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(400))
	assert.True(t, IsClientError(499))
	assert.False(t, IsClientError(399))
	assert.False(t, IsClientError(500))
}
