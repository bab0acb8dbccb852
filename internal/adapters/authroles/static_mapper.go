package authroles

import (
	domainauth "github.com/hirewire/hirewire-api/internal/domain/auth"
)

// StaticRoleMapper maps directory groups by simple string membership rules.
// The gateway forwards group claims; this mapper decides the analytics role.
type StaticRoleMapper struct {
	AdminGroup         string
	RecruiterGroup     string
	HiringManagerGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	for _, g := range groups {
		if m.RecruiterGroup != "" && g == m.RecruiterGroup {
			return domainauth.RoleRecruiter
		}
	}
	for _, g := range groups {
		if m.HiringManagerGroup != "" && g == m.HiringManagerGroup {
			return domainauth.RoleHiringManager
		}
	}
	return domainauth.RoleGuest
}
