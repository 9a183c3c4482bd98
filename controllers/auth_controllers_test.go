package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/ambatoeat-api/models"
)

func TestRegisterLoginMeLogout(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Budi", "email": "Budi@Test.com", "password": "secret123", "phone": "0812",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataObject(t, w)
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "budi@test.com", user["email"])
	assert.Equal(t, models.RoleUser, user["role"])
	assert.NotContains(t, user, "password")

	w = env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Budi", "email": "budi@test.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", decodeBody(t, w)["message"])

	w = env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "budi@test.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "budi@test.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	token := dataObject(t, w)["token"].(string)

	w = env.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Budi", dataObject(t, w)["name"])

	w = env.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "x@test.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}
