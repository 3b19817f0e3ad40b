package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedRequest struct {
	Email string `validate:"required,email"`
}

type selfValidating struct {
	err error
}

func (s selfValidating) Validate() error {
	return s.err
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes a valid body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Email":"a@b.com"}`))
		var req taggedRequest
		require.NoError(t, DecodeJSON(r, &req))
		assert.Equal(t, "a@b.com", req.Email)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
		var req taggedRequest
		assert.Error(t, DecodeJSON(r, &req))
	})
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	t.Run("tag validation passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ValidateRequest(taggedRequest{Email: "user@example.com"}))
	})

	t.Run("tag validation fails with field errors", func(t *testing.T) {
		t.Parallel()
		err := ValidateRequest(taggedRequest{Email: "not-an-email"})
		require.Error(t, err)

		var fieldErrs validator.ValidationErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "Email", fieldErrs[0].Field())
	})

	t.Run("a custom Validate method takes precedence over tags", func(t *testing.T) {
		t.Parallel()
		sentinel := errors.New("custom validation failed")
		assert.ErrorIs(t, ValidateRequest(selfValidating{err: sentinel}), sentinel)
		assert.NoError(t, ValidateRequest(selfValidating{}))
	})
}
