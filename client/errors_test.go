package client

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIError_MessageEnvelope(t *testing.T) {
	err := newAPIError(http.StatusBadRequest, []byte(`{"code":400,"message":"quantity out of range"}`))
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "quantity out of range", err.Message)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "quantity out of range")
}

func TestNewAPIError_ProblemShapeWithFieldErrors(t *testing.T) {
	body := `{"title":"One or more validation errors occurred.","errors":{"Email":["Email is required"],"Password":["Too short","Needs a digit"]}}`
	err := newAPIError(http.StatusUnprocessableEntity, []byte(body))

	assert.Equal(t, "One or more validation errors occurred.", err.Message)
	require.Len(t, err.Fields, 2)
	assert.Equal(t, []string{"Email is required"}, err.Fields["Email"])

	lines := err.FieldErrors()
	assert.Len(t, lines, 2)
}

func TestNewAPIError_NonJSONBody(t *testing.T) {
	err := newAPIError(http.StatusBadGateway, []byte("<html>upstream dead</html>"))
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.Empty(t, err.Message)
	assert.Contains(t, err.Body, "upstream dead")
}

func TestNewAPIError_EmptyBody(t *testing.T) {
	err := newAPIError(http.StatusNotFound, nil)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Empty(t, err.Body)
	assert.Nil(t, err.FieldErrors())
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&APIError{Status: http.StatusUnauthorized}))
	assert.False(t, IsUnauthorized(&APIError{Status: http.StatusForbidden}))
	assert.False(t, IsUnauthorized(fmt.Errorf("plain error")))
	assert.False(t, IsUnauthorized(nil))
}
