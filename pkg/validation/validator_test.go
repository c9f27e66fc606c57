package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentialsPayload struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

func TestToDetails_Validation(t *testing.T) {
	v := newValidator()

	err := v.Struct(credentialsPayload{})
	require.Error(t, err)
	details := ToDetails(err)
	assert.Equal(t, "is required", details["username"])
	assert.Equal(t, "is required", details["password"])

	err = v.Struct(credentialsPayload{Username: strings.Repeat("u", 101), Password: "x"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"username": "must be between 1 and 100 characters long"}, ToDetails(err))
}

func TestToDetails_Payload(t *testing.T) {
	var dst credentialsPayload
	err := json.Unmarshal([]byte(`{"username":`), &dst)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"username": 5}`), &dst)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
}
