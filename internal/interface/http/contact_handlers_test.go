package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	domcontact "example.com/cafe-admin/internal/domain/contact"
)

func TestGetContact_SeedsDefault(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/contact", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody(t, rec)
	require.Equal(t, domcontact.Default().Phone, resp["phone"])

	rec = env.do(t, http.MethodGet, "/api/contact", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, env.contact.creates)
}

func TestUpdateContact_MergesFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/contact", env.staffToken, map[string]any{
		"phone":       "+1 555 0199",
		"socialMedia": map[string]any{"instagram": "instagram.com/newcafe"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody(t, rec)
	require.Equal(t, "+1 555 0199", resp["phone"])
	require.Equal(t, domcontact.Default().Email, resp["email"])
	social := resp["socialMedia"].(map[string]any)
	require.Equal(t, "instagram.com/newcafe", social["instagram"])
	require.Equal(t, domcontact.Default().SocialMedia.Facebook, social["facebook"])
}

func TestUpdateContact_Rejects(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/contact", "", map[string]any{"phone": "1"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/contact", env.staffToken, map[string]any{"address": "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
