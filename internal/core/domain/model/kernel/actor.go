package kernel

import (
	"errors"
	"fmt"
	"strings"

	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is the authority level of the person performing an operation.
type Role int

const (
	RoleUnknown Role = iota
	RoleEmployee
	RoleManager
	RoleManagement
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "Unknown",
		RoleEmployee:   "Employee",
		RoleManager:    "Manager",
		RoleManagement: "Management",
		RoleAdmin:      "Admin",
	}
}

// ParseRole accepts the role names used on the wire, case-insensitively.
func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// CanResolveFieldChanges reports whether the role belongs to the privileged
// approver set for protected field edits.
func (r Role) CanResolveFieldChanges() bool {
	return r == RoleManagement || r == RoleAdmin
}

// Actor is the identity attached to every mutation, timeline event and audit entry.
type Actor struct {
	userID string
	name   string
	role   Role

	guard guard.ConstructorGuard
}

func NewActor(userID, name string, role Role) (Actor, error) {
	actor := Actor{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		actor.setUserID(userID),
		actor.setName(name),
		actor.setRole(role),
	); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) UserID() string {
	return a.userID
}

func (a Actor) Name() string {
	return a.name
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) String() string {
	return fmt.Sprintf("%s (%s)", a.name, a.role)
}

func (a *Actor) setUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	a.userID = userID
	return nil
}

func (a *Actor) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
