package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xknRiya/cats-api/internal/models/dto"
)

func TestDecode(t *testing.T) {
	t.Run("valid body is normalized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":" a@mail.com ","password":"test-password"}`))
		var dst dto.LoginRequest
		require.True(t, decode(rec, req, &dst))
		assert.Equal(t, "a@mail.com", dst.Email)
	})

	cases := map[string]struct {
		body    string
		message string
	}{
		"unknown field": {`{"email":"a@mail.com","password":"test-password","x":1}`, "unknown field"},
		"empty":         {``, "request body is required"},
		"wrong type":    {`{"email":1,"password":"test-password"}`, "email has the wrong type"},
		"trailing":      {`{"email":"a@mail.com","password":"test-password"} []`, "request body must contain a single JSON object"},
		"invalid field": {`{"email":"a@mail.com","password":"short"}`, "password must be longer than or equal to 8 characters"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst dto.LoginRequest
			assert.False(t, decode(rec, req, &dst))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.message)
		})
	}
}

func TestDecode_BodyTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"`+strings.Repeat("a", 64)+`@mail.com"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)

	var dst dto.LoginRequest
	assert.False(t, decode(rec, req, &dst))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathID(t *testing.T) {
	rec := httptest.NewRecorder()
	id, ok := pathID(rec, withID(httptest.NewRequest(http.MethodGet, "/cats/42", nil), "42"))
	require.True(t, ok)
	assert.EqualValues(t, 42, id)

	for _, raw := range []string{"abc", "0", "-3", "9999999999999999999999"} {
		rec := httptest.NewRecorder()
		_, ok := pathID(rec, withID(httptest.NewRequest(http.MethodGet, "/cats/x", nil), raw))
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, rec.Code, raw)
	}
}
