package http

import (
	"net/http"

	domcontact "example.com/cafe-admin/internal/domain/contact"
	contactuc "example.com/cafe-admin/internal/usecase/contact"
)

type socialMediaRequest struct {
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
	Twitter   *string `json:"twitter"`
}

type contactRequest struct {
	Phone       *string             `json:"phone"`
	Email       *string             `json:"email" validate:"omitempty,email"`
	Address     *string             `json:"address"`
	Hours       *string             `json:"hours"`
	Website     *string             `json:"website"`
	SocialMedia *socialMediaRequest `json:"socialMedia"`
}

func mapContact(c *domcontact.Contact) map[string]any {
	return map[string]any{
		"id":      c.ID,
		"phone":   c.Phone,
		"email":   c.Email,
		"address": c.Address,
		"hours":   c.Hours,
		"website": c.Website,
		"socialMedia": map[string]string{
			"facebook":  c.SocialMedia.Facebook,
			"instagram": c.SocialMedia.Instagram,
			"twitter":   c.SocialMedia.Twitter,
		},
		"createdAt": c.CreatedAt,
		"updatedAt": c.UpdatedAt,
	}
}

func (a *API) handleGetContact(w http.ResponseWriter, r *http.Request) {
	c, err := a.contactSvc.Get(r.Context())
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapContact(c))
}

func (a *API) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	in := contactuc.UpdateInput{
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Hours:   req.Hours,
		Website: req.Website,
	}
	if sm := req.SocialMedia; sm != nil {
		in.SocialMedia = &contactuc.SocialMediaInput{
			Facebook:  sm.Facebook,
			Instagram: sm.Instagram,
			Twitter:   sm.Twitter,
		}
	}

	c, err := a.contactSvc.Update(r.Context(), in)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapContact(c))
}
