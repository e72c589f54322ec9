package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"credit-system/internal/api/handler"
	"credit-system/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func setupAuthHandlerTest(secret string) *handler.AuthHandler {
	cfg := config.Config{}
	cfg.Server.Auth.JWTSecret = secret
	return handler.NewAuthHandler(cfg, testLogger)
}

func TestAuthHandler_GenerateBearerToken(t *testing.T) {
	const secret = "test-secret"

	t.Run("Success", func(t *testing.T) {
		h := setupAuthHandlerTest(secret)

		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(`{"username":"camila"}`))
		rec := httptest.NewRecorder()
		h.GenerateBearerToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp["token"], "Bearer "))

		tokenString := strings.TrimPrefix(resp["token"], "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		assert.NoError(t, err)
		assert.True(t, token.Valid)

		claims, ok := token.Claims.(jwt.MapClaims)
		assert.True(t, ok)
		assert.Equal(t, "camila", claims["username"])
	})

	t.Run("Bad Request - Missing Username", func(t *testing.T) {
		h := setupAuthHandlerTest(secret)

		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		h.GenerateBearerToken(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Bad Request - Malformed Body", func(t *testing.T) {
		h := setupAuthHandlerTest(secret)

		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(`{broken`))
		rec := httptest.NewRecorder()
		h.GenerateBearerToken(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
