package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Skotchmaster/pos_system/internal/hash"
	"github.com/Skotchmaster/pos_system/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) createUser(username, password, role string) models.User {
	env.T.Helper()
	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)
	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("cashier1", "password", models.RoleCashier)

	payload := map[string]string{"username": "cashier1", "password": "password"}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", payload, 0)
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["access_token"])
	require.NotEmpty(t, resp["refresh_token"])
	require.Equal(t, "cashier1", resp["username"])
	require.Equal(t, models.RoleCashier, resp["role"])
}

func TestLoginBadPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("cashier1", "password", models.RoleCashier)

	payload := map[string]string{"username": "cashier1", "password": "wrong"}
	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", payload, 0)

	err := env.Auth.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestLoginDisabledUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("cashier1", "password", models.RoleCashier)
	require.NoError(t, env.DB.Model(&user).Update("is_active", false).Error)

	payload := map[string]string{"username": "cashier1", "password": "password"}
	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", payload, 0)

	err := env.Auth.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRefreshRotation(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("cashier1", "password", models.RoleCashier)

	payload := map[string]string{"username": "cashier1", "password": "password"}
	recLogin, cLogin := env.doJSONRequest(http.MethodPost, "/api/v1/login", payload, 0)
	require.NoError(t, env.Auth.Login(cLogin))
	require.Equal(t, http.StatusOK, recLogin.Code)

	var loginResp struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(recLogin.Body.Bytes(), &loginResp))

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/refresh",
		map[string]string{"refresh_token": loginResp.RefreshToken}, 0)
	require.NoError(t, env.Auth.Refresh(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEqual(t, loginResp.RefreshToken, resp.RefreshToken)

	// The used refresh token is revoked: a second rotation must fail.
	_, c2 := env.doJSONRequest(http.MethodPost, "/api/v1/refresh",
		map[string]string{"refresh_token": loginResp.RefreshToken}, 0)
	err := env.Auth.Refresh(c2)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
