package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func mustAllow(t *testing.T, svc *Service, role, obj, act string, want bool) {
	t.Helper()
	allow, err := svc.EnforceRole(role, obj, act)
	if err != nil {
		t.Fatalf("enforce %s %s %s failed: %v", role, act, obj, err)
	}
	if allow != want {
		t.Fatalf("enforce %s %s %s: want %v, got %v", role, act, obj, want, allow)
	}
}

func TestBuiltinRolesSplitTillAndBackOffice(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	mustAllow(t, svc, "worker", "/api/v1/pos/cart", "GET", true)
	mustAllow(t, svc, "worker", "/api/v1/pos/checkout", "post", true)
	mustAllow(t, svc, "worker", "/api/v1/auth/me", "GET", true)
	mustAllow(t, svc, "worker", "/api/v1/admin/products", "GET", false)
	mustAllow(t, svc, "worker", "/api/v1/admin/workers", "POST", false)

	// owner inherits the till surface from worker
	mustAllow(t, svc, "owner", "/api/v1/pos/cart", "GET", true)
	mustAllow(t, svc, "owner", "/api/v1/admin/products", "GET", true)
	mustAllow(t, svc, "owner", "/api/v1/admin/audit-logs", "GET", true)
}

func TestEnforceUserWithAssignedRole(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.AssignAccountRole(7, "worker"); err != nil {
		t.Fatalf("assign account role failed: %v", err)
	}

	allow, err := svc.EnforceUser(7, "/api/v1/pos/sales/12", "GET")
	if err != nil {
		t.Fatalf("enforce user failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceUser(7, "/api/v1/admin/payments", "GET")
	if err != nil {
		t.Fatalf("enforce user failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetUserRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("ops", "/admin/reports/payments", "GET"); err != nil {
		t.Fatalf("grant ops policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("finance", "/admin/payments", "GET"); err != nil {
		t.Fatalf("grant finance policy failed: %v", err)
	}

	if err := svc.SetUserRoles(3, []string{"ops"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}
	if err := svc.SetUserRoles(3, []string{"finance"}); err != nil {
		t.Fatalf("override user roles failed: %v", err)
	}

	roles, err := svc.GetUserRoles(3)
	if err != nil {
		t.Fatalf("get user roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:finance" {
		t.Fatalf("want [role:finance], got %v", roles)
	}

	allow, err := svc.EnforceUser(3, "/api/v1/admin/reports/payments", "GET")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("old role policy should be gone")
	}
	allow, err = svc.EnforceUser(3, "/api/v1/admin/payments", "GET")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("new role policy should apply")
	}
}

func TestRevokeRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("ops", "/admin/suppliers", "GET"); err != nil {
		t.Fatalf("grant policy failed: %v", err)
	}
	mustAllow(t, svc, "ops", "/api/v1/admin/suppliers", "GET", true)

	if err := svc.RevokeRolePolicy("ops", "/admin/suppliers", "GET"); err != nil {
		t.Fatalf("revoke policy failed: %v", err)
	}
	mustAllow(t, svc, "ops", "/api/v1/admin/suppliers", "GET", false)

	policies, err := svc.GetRolePolicies("ops")
	if err != nil {
		t.Fatalf("get role policies failed: %v", err)
	}
	if len(policies) != 0 {
		t.Fatalf("want no policies, got %v", policies)
	}
}
