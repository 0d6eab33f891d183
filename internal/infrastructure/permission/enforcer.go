// Package permission backs the role rule table with a casbin enforcer.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

var _ permission.Enforcer = (*Enforcer)(nil)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer builds an in-memory enforcer, or one persisted in the
// casbin_rule table when db is not nil.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	var enforcer *casbin.Enforcer
	if db != nil {
		adapter, err := gormadapter.NewAdapterByDB(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
		}
		enforcer, err = casbin.NewEnforcer(m, adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
		if err := enforcer.LoadPolicy(); err != nil {
			return nil, fmt.Errorf("failed to load policy: %w", err)
		}
	} else {
		enforcer, err = casbin.NewEnforcer(m)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log.Named("casbin"),
	}, nil
}

func (e *Enforcer) Enforce(subject, object, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(subject, object, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "subject", subject, "object", object, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

func (e *Enforcer) Policies() ([][]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	policies, err := e.enforcer.GetPolicy()
	if err != nil {
		return nil, fmt.Errorf("failed to read policies: %w", err)
	}
	return policies, nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}
	e.logger.Infow("policy reloaded")
	return nil
}
