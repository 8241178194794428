package auth

import (
	"fmt"

	"github.com/spec-kit/labtrack/internal/domain"
)

// Operation names an action guarded by the authorization gate.
type Operation string

const (
	OpListUsers  Operation = "list_users"
	OpGetUser    Operation = "get_user"
	OpCreateUser Operation = "create_user"
	OpUpdateUser Operation = "update_user"

	OpListSamples  Operation = "list_samples"
	OpGetSample    Operation = "get_sample"
	OpCreateSample Operation = "create_sample"
	OpUpdateSample Operation = "update_sample"

	OpListTests  Operation = "list_tests"
	OpGetTest    Operation = "get_test"
	OpCreateTest Operation = "create_test"
	OpUpdateTest Operation = "update_test"

	OpListResults  Operation = "list_results"
	OpRecordResult Operation = "record_result"
	OpUpdateResult Operation = "update_result"

	OpListInventory       Operation = "list_inventory"
	OpGetInventoryItem    Operation = "get_inventory_item"
	OpCreateInventoryItem Operation = "create_inventory_item"
	OpAdjustInventory     Operation = "adjust_inventory"

	OpViewDashboard Operation = "view_dashboard"
	OpViewReports   Operation = "view_reports"
)

const defaultDenyReason = "Insufficient permissions"

// rule is the required-role set for one operation. A nil roles slice admits
// any authenticated identity.
type rule struct {
	roles  []domain.Role
	reason string
}

// operationRules is the single source of truth for the authorisation model.
var operationRules = map[Operation]rule{
	OpListUsers:  {},
	OpGetUser:    {},
	OpCreateUser: {roles: []domain.Role{domain.RoleAdmin}, reason: "Only admins can create users"},
	OpUpdateUser: {roles: []domain.Role{domain.RoleAdmin}, reason: "Only admins can update users"},

	OpListSamples:  {},
	OpGetSample:    {},
	OpCreateSample: {},
	OpUpdateSample: {},

	OpListTests:  {},
	OpGetTest:    {},
	OpCreateTest: {roles: []domain.Role{domain.RoleAdmin, domain.RoleSupervisor}, reason: defaultDenyReason},
	OpUpdateTest: {roles: []domain.Role{domain.RoleAdmin, domain.RoleSupervisor}, reason: defaultDenyReason},

	OpListResults:  {},
	OpRecordResult: {},
	OpUpdateResult: {},

	OpListInventory:       {},
	OpGetInventoryItem:    {},
	OpCreateInventoryItem: {},
	OpAdjustInventory:     {},

	OpViewDashboard: {},
	OpViewReports:   {},
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Err returns nil when allowed, otherwise an error wrapping ErrForbidden
// whose message is the human-readable reason.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &ForbiddenError{Reason: d.Reason}
}

// ForbiddenError carries the denial reason shown to the caller.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

// Unwrap lets errors.Is match ErrForbidden.
func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// Authorize decides whether identity may perform op. Unknown operations and
// roles outside the closed set are denied for any role-restricted operation.
func Authorize(identity *Identity, op Operation) Decision {
	if identity == nil {
		return Decision{Reason: defaultDenyReason}
	}
	r, ok := operationRules[op]
	if !ok {
		return Decision{Reason: defaultDenyReason}
	}
	if r.roles == nil {
		return Decision{Allowed: true}
	}
	for _, role := range r.roles {
		if identity.Role == role {
			return Decision{Allowed: true}
		}
	}
	return Decision{Reason: r.reason}
}

// RequiredRoles returns a copy of the roles op is restricted to, or nil when
// any identity may perform it.
func RequiredRoles(op Operation) ([]domain.Role, error) {
	r, ok := operationRules[op]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", op)
	}
	if r.roles == nil {
		return nil, nil
	}
	roles := make([]domain.Role, len(r.roles))
	copy(roles, r.roles)
	return roles, nil
}
