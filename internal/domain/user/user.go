package user

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	RoleCode     RoleCode
	CreatedAt    time.Time
}
