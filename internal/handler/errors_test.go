package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"synergysphere/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{domain.ErrUnauthorized, http.StatusUnauthorized, `{"error":"unauthorized"}`},
		{domain.ErrNotFound, http.StatusNotFound, `{"error":"not found"}`},
		{fmt.Errorf("%w: user with this email doesn't exist", domain.ErrNotFound), http.StatusNotFound, `{"error":"user with this email doesn't exist"}`},
		{fmt.Errorf("%w: only owners and admins can invite members", domain.ErrForbidden), http.StatusForbidden, `{"error":"only owners and admins can invite members"}`},
		{fmt.Errorf("%w: task name is required", domain.ErrValidation), http.StatusBadRequest, `{"error":"task name is required"}`},
		{fmt.Errorf("%w: already a member", domain.ErrConflict), http.StatusConflict, `{"error":"already a member"}`},
		{fmt.Errorf("%w: %w", domain.ErrStoreFailure, errors.New("dial tcp: refused")), http.StatusServiceUnavailable, `{"error":"temporarily unavailable, retry later"}`},
		{errors.New("boom"), http.StatusInternalServerError, `{"error":"internal error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, raw := range []string{"abc", "0", "-1"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, ok := paramID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := paramID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}
