package authz

import "fmt"

// RoleSeed is a built-in role definition
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds returns the shop role matrix. Workers get the
// till surface, owners additionally get the back-office surface.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "worker",
			Policies: []Policy{
				{Object: "/pos/*", Action: "*"},
				{Object: "/auth/me", Action: "GET"},
				{Object: "/auth/password", Action: "PUT"},
			},
		},
		{
			Role:     "owner",
			Inherits: []string{"worker"},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles seeds the built-in roles and their policies
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor); err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}

	return nil
}

// AssignAccountRole binds a user to the built-in role matching the
// account role stored on the users table.
func (s *Service) AssignAccountRole(userID uint, accountRole string) error {
	if userID == 0 {
		return fmt.Errorf("user id is required")
	}
	return s.SetUserRoles(userID, []string{accountRole})
}
