package permission

import (
	"fmt"
	"strings"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
)

// PoliciesFromRules expands each rule into one (role, resource, verb) policy per role.
func PoliciesFromRules(rules []permission.Rule) [][]string {
	var out [][]string
	for _, r := range rules {
		resource, verb := r.Action.Split()
		for _, role := range r.Roles {
			out = append(out, []string{role.String(), resource, verb})
		}
	}
	return out
}

func policyKey(p []string) string {
	return strings.Join(p, "\x00")
}

// SyncRules makes the stored policies equal to the rule table: missing
// policies are added and policies no rule produces are removed.
func (e *Enforcer) SyncRules(rules []permission.Rule) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	want := PoliciesFromRules(rules)
	wantSet := make(map[string]struct{}, len(want))
	for _, p := range want {
		wantSet[policyKey(p)] = struct{}{}
	}

	current, err := e.enforcer.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policies: %w", err)
	}
	haveSet := make(map[string]struct{}, len(current))
	var stale [][]string
	for _, p := range current {
		haveSet[policyKey(p)] = struct{}{}
		if _, ok := wantSet[policyKey(p)]; !ok {
			stale = append(stale, p)
		}
	}

	var missing [][]string
	for _, p := range want {
		if _, ok := haveSet[policyKey(p)]; !ok {
			missing = append(missing, p)
		}
	}

	if len(stale) > 0 {
		if _, err := e.enforcer.RemovePolicies(stale); err != nil {
			return fmt.Errorf("failed to remove stale policies: %w", err)
		}
	}
	if len(missing) > 0 {
		if _, err := e.enforcer.AddPolicies(missing); err != nil {
			return fmt.Errorf("failed to add policies: %w", err)
		}
	}

	e.logger.Infow("permission policies synced",
		"total", len(want),
		"added", len(missing),
		"removed", len(stale))
	return nil
}
