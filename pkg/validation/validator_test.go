package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gin's validator validates the binding tag
type sampleRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"required,role"`
}

func TestToDetailsFieldErrors(t *testing.T) {
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(sampleRequest{Email: "not-an-email", Password: "abc", Role: "admin"})
	require.Error(t, err)

	details := ToDetails(err)
	// fields are reported under their json tag names
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "min length 6", details["password"])
	assert.Equal(t, "must be owner or seeker", details["role"])
}

func TestToDetailsJSONErrors(t *testing.T) {
	var dst sampleRequest
	err := json.Unmarshal([]byte("{broken"), &dst)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"email": 42}`), &dst)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetailsFallbacks(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
}
