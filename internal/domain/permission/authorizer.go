package permission

import (
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

// Authorizer decides whether a role may perform an action. A denial is a
// forbidden AppError carrying a human-readable message.
type Authorizer interface {
	Authorize(role Role, action Action) error
}

// Enforcer is a policy engine evaluating (subject, object, action) triples.
type Enforcer interface {
	Enforce(subject, object, action string) (bool, error)
}

// StaticAuthorizer evaluates the built-in rule table directly.
type StaticAuthorizer struct{}

func NewStaticAuthorizer() *StaticAuthorizer {
	return &StaticAuthorizer{}
}

func (StaticAuthorizer) Authorize(role Role, action Action) error {
	if !Allowed(role, action) {
		return errors.NewForbiddenError(DenialMessage(action))
	}
	return nil
}

// EnforcerAuthorizer delegates to a policy engine seeded from Rules().
type EnforcerAuthorizer struct {
	enforcer Enforcer
}

func NewEnforcerAuthorizer(enforcer Enforcer) *EnforcerAuthorizer {
	return &EnforcerAuthorizer{enforcer: enforcer}
}

func (a *EnforcerAuthorizer) Authorize(role Role, action Action) error {
	if !role.IsValid() {
		return errors.NewForbiddenError(DenialMessage(action))
	}
	object, verb := action.Split()
	ok, err := a.enforcer.Enforce(role.String(), object, verb)
	if err != nil {
		return errors.NewInternalError("failed to evaluate permission")
	}
	if !ok {
		return errors.NewForbiddenError(DenialMessage(action))
	}
	return nil
}
