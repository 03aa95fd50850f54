package contact

import "time"

type SocialMedia struct {
	Facebook  string
	Instagram string
	Twitter   string
}

// Contact is the café's single public contact record.
type Contact struct {
	ID          string
	Phone       string
	Email       string
	Address     string
	Hours       string
	Website     string
	SocialMedia SocialMedia
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Default is the record seeded the first time contact info is read.
func Default() *Contact {
	return &Contact{
		Phone:   "+1 (555) 123-4567",
		Email:   "info@cafex.com",
		Address: "123 Coffee Street, Cafe District, NY 10001",
		Hours:   "Monday - Friday: 7AM - 8PM, Weekends: 8AM - 10PM",
		Website: "www.cafex.com",
		SocialMedia: SocialMedia{
			Facebook:  "facebook.com/cafex",
			Instagram: "instagram.com/cafex",
			Twitter:   "twitter.com/cafex",
		},
	}
}
