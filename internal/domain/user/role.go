package user

import (
	"errors"
	"strings"
)

// RoleCode is the permission level of a back-office account.
type RoleCode string

const (
	RoleCodeAdmin RoleCode = "ADMIN"
	RoleCodeStaff RoleCode = "STAFF"
)

var ErrInvalidRoleCode = errors.New("invalid role code")

func (c RoleCode) IsValid() bool {
	return c == RoleCodeAdmin || c == RoleCodeStaff
}

func (c RoleCode) IsAdmin() bool {
	return c == RoleCodeAdmin
}

// ParseRoleCode converts a string from a request or a token into a RoleCode.
func ParseRoleCode(s string) (RoleCode, error) {
	c := RoleCode(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidRoleCode
	}
	return c, nil
}

// CanManageUsers reports whether the executor may create or delete accounts.
func CanManageUsers(executor RoleCode) bool {
	return executor.IsAdmin()
}
