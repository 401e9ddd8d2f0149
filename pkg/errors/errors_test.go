package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetailCopies(t *testing.T) {
	// 预定义错误是共享单例，WithDetail 必须拷贝而不是原地改写
	detailed := ErrInvalidParam.WithDetail("subdomain is required")

	assert.Equal(t, "subdomain is required", detailed.Detail)
	assert.Empty(t, ErrInvalidParam.Detail)
	assert.Equal(t, ErrInvalidParam.Code, detailed.Code)
	assert.Equal(t, ErrInvalidParam.HTTPStatus, detailed.HTTPStatus)
}

func TestWithErrorCopies(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	wrapped := ErrInternalError.WithError(cause)

	assert.ErrorIs(t, wrapped, cause)
	assert.Nil(t, ErrInternalError.Err)
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("row not found")
	err := Wrap(cause, CodeContentNotFound, "content lookup failed")

	assert.Equal(t, CodeContentNotFound, err.Code)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "row not found")
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeInvalidParam, http.StatusBadRequest},
		{CodeConversationInvalid, http.StatusBadRequest},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodeSSOStateInvalid, http.StatusUnauthorized},
		{CodePermissionDenied, http.StatusForbidden},
		{CodeProjectNotFound, http.StatusNotFound},
		{CodeSubdomainTaken, http.StatusConflict},
		{CodeTooManyRequests, http.StatusTooManyRequests},
		{CodeGenerationFailed, http.StatusInternalServerError},
		{CodeDatabaseError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "msg").HTTPStatus)
		})
	}
}

func TestAsAppError(t *testing.T) {
	t.Run("passes through app errors", func(t *testing.T) {
		err := ErrNotFound.WithDetail("gone")
		got := AsAppError(err)
		require.Same(t, err, got)
	})

	t.Run("wraps plain errors as unknown", func(t *testing.T) {
		got := AsAppError(fmt.Errorf("boom"))
		assert.Equal(t, CodeUnknown, got.Code)
		assert.ErrorContains(t, got, "boom")
	})
}
