package gallery

import "time"

type Image struct {
	ID           string
	Title        string
	Description  string
	Image        string
	Featured     bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ListFilter struct {
	OnlyFeatured bool
}
