package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domuser "example.com/cafe-admin/internal/domain/user"
	useruc "example.com/cafe-admin/internal/usecase/user"
)

type createUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

func mapUser(u *domuser.User) map[string]any {
	return map[string]any{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"role":      u.RoleCode,
		"createdAt": u.CreatedAt,
	}
}

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.userSvc.ListUsers(r.Context())
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}

	resp := make([]map[string]any, 0, len(users))
	for _, u := range users {
		resp = append(resp, mapUser(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := a.userSvc.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapUser(u))
}

func (a *API) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	current := getAuthUser(r.Context())
	if current == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	var req createUserRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var role domuser.RoleCode
	if req.Role != "" {
		parsed, err := domuser.ParseRoleCode(req.Role)
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		role = parsed
	}

	u, err := a.userSvc.CreateUser(r.Context(), useruc.CreateUserInput{
		ExecutorRole: current.RoleCode,
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		RoleCode:     role,
	})
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapUser(u))
}

func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	current := getAuthUser(r.Context())
	if current == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	id := chi.URLParam(r, "id")
	if id == current.UserID {
		respondError(w, http.StatusBadRequest, errDeleteSelf)
		return
	}

	if err := a.userSvc.DeleteUser(r.Context(), current.RoleCode, id); err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
