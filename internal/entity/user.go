package entity

import "github.com/demohub-lab/backend/pkg/enum"

type GlobalRole string

var (
	RoleSuperAdmin = enum.New(GlobalRole("super_admin"))
	RoleAdmin      = enum.New(GlobalRole("admin"))
	RoleUser       = enum.New(GlobalRole("user"))
)

// GlobalAdminRoles may approve general-layer publications and are exempt from
// balance checks when escrowing a bounty.
var GlobalAdminRoles = []GlobalRole{RoleSuperAdmin, RoleAdmin}

type User struct {
	Base
	Name string `gorm:"unique"`
	Role GlobalRole

	// Points is the spendable balance. It never goes below zero for regular
	// users; admins bypass the spending guard.
	Points int64

	// ContributionPoints is the non-spendable reputation score. It only grows.
	ContributionPoints int64
}

// Level maps the contribution score to the user level shown by clients.
func (u *User) Level() int {
	return int(u.ContributionPoints/100) + 1
}
