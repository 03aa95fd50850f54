package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "admin@cafe.test",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody(t, rec)
	require.NotEmpty(t, resp["token"])
	user := resp["user"].(map[string]any)
	require.Equal(t, "ADMIN", user["role"])
	require.NotContains(t, user, "passwordHash")

	rec = env.do(t, http.MethodGet, "/api/orders", resp["token"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_Rejected(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "admin@cafe.test",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nobody@cafe.test",
		"password": testPassword,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutes_RejectBadToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/orders", "garbage", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]any{
		"name":     "New Barista",
		"email":    "new@cafe.test",
		"password": "secret123",
	}

	rec := env.do(t, http.MethodPost, "/api/users", env.staffToken, body)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/users", env.adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "STAFF", decodeBody(t, rec)["role"])

	rec = env.do(t, http.MethodPost, "/api/users", env.adminToken, body)
	require.Equal(t, http.StatusConflict, rec.Code)

	body["email"] = "other@cafe.test"
	body["role"] = "OWNER"
	rec = env.do(t, http.MethodPost, "/api/users", env.adminToken, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndDeleteUsers(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/users", env.staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decodeList(t, rec)
	require.Len(t, users, 2)

	staff, err := env.users.GetByEmail(context.Background(), "staff@cafe.test")
	require.NoError(t, err)
	admin, err := env.users.GetByEmail(context.Background(), "admin@cafe.test")
	require.NoError(t, err)

	rec = env.do(t, http.MethodDelete, "/api/users/"+staff.ID, env.staffToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/users/"+admin.ID, env.adminToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/users/"+staff.ID, env.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/"+staff.ID, env.adminToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
