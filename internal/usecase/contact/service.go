package contact

import (
	"context"
	"errors"
	"strings"

	dom "example.com/cafe-admin/internal/domain/contact"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the contact record, seeding it with dom.Default on first use.
func (s *Service) Get(ctx context.Context) (*dom.Contact, error) {
	c, err := s.repo.Get(ctx)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, dom.ErrContactNotFound) {
		return nil, err
	}
	return s.repo.Create(ctx, dom.Default())
}

type SocialMediaInput struct {
	Facebook  *string
	Instagram *string
	Twitter   *string
}

// UpdateInput carries only the fields the caller supplied.
type UpdateInput struct {
	Phone       *string
	Email       *string
	Address     *string
	Hours       *string
	Website     *string
	SocialMedia *SocialMediaInput
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (*dom.Contact, error) {
	for _, required := range []*string{in.Phone, in.Email, in.Address, in.Hours} {
		if required != nil && strings.TrimSpace(*required) == "" {
			return nil, dom.ErrInvalidContact
		}
	}

	c, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	set(&c.Phone, in.Phone)
	set(&c.Email, in.Email)
	set(&c.Address, in.Address)
	set(&c.Hours, in.Hours)
	set(&c.Website, in.Website)
	if sm := in.SocialMedia; sm != nil {
		set(&c.SocialMedia.Facebook, sm.Facebook)
		set(&c.SocialMedia.Instagram, sm.Instagram)
		set(&c.SocialMedia.Twitter, sm.Twitter)
	}

	return s.repo.Update(ctx, c)
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
