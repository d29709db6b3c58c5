// Package permissions is the pure authorization layer for project
// collaboration: who may touch the project, its members, and its tasks.
// Every function here is a deterministic decision over role and permission
// values; persistence and transport live elsewhere.
package permissions

import (
	"fmt"

	"github.com/taskcamp/taskcamp/pkg/apperr"
)

// HasPermission reports whether role holds perm. Unknown roles hold nothing.
func HasPermission(role Role, perm Permission) bool {
	set, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// RequirePermission returns a Forbidden error when role lacks perm.
func RequirePermission(role Role, perm Permission) error {
	if !HasPermission(role, perm) {
		return apperr.Forbidden(fmt.Sprintf("You don't have the %s permission.", perm))
	}
	return nil
}

// CanModifyMember reports whether actorRole may change or remove a member
// holding targetRole.
//
// Rules:
//   - owner can modify admins and members
//   - admin can modify only members
//   - member cannot modify anyone
//   - nobody can modify the owner
func CanModifyMember(actorRole, targetRole Role) bool {
	switch actorRole {
	case RoleOwner:
		return targetRole == RoleAdmin || targetRole == RoleMember
	case RoleAdmin:
		return targetRole == RoleMember
	default:
		return false
	}
}

// CanAssignRole reports whether actorRole may hand out newRole.
//
// Rules:
//   - the owner role can never be assigned
//   - owner can assign admin and member roles
//   - admin can assign only the member role
//   - member cannot assign roles
func CanAssignRole(actorRole, newRole Role) bool {
	if newRole == RoleOwner {
		return false
	}
	switch actorRole {
	case RoleOwner:
		return newRole == RoleAdmin || newRole == RoleMember
	case RoleAdmin:
		return newRole == RoleMember
	default:
		return false
	}
}

// ValidateMemberOperation wraps CanModifyMember with a typed failure.
// Touching the owner is reported as the structural "Cannot modify project
// owner." case, distinct from an ordinary rank failure.
func ValidateMemberOperation(actorRole, targetRole Role, operation string) error {
	if CanModifyMember(actorRole, targetRole) {
		return nil
	}
	if targetRole == RoleOwner {
		return apperr.Forbidden("Cannot modify project owner.")
	}
	return apperr.Forbidden(fmt.Sprintf("%s cannot %s %s.", actorRole, operation, targetRole))
}

// ValidateRoleAssignment wraps CanAssignRole with a typed failure. Asking for
// the owner role is a malformed request (BadRequest), not an authorization
// failure: no actor could ever be granted it.
func ValidateRoleAssignment(actorRole, newRole Role) error {
	if CanAssignRole(actorRole, newRole) {
		return nil
	}
	if newRole == RoleOwner {
		return apperr.BadRequest("Cannot assign owner role.")
	}
	return apperr.Forbidden(fmt.Sprintf("%s cannot assign %s role.", actorRole, newRole))
}
