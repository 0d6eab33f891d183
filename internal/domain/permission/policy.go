package permission

import (
	"fmt"
	"sort"
)

// Rule grants an action to a set of roles.
type Rule struct {
	Action  Action
	Roles   []Role
	Message string
}

// rules is the single source of truth for procedure-level access.
var rules = map[Action]Rule{
	ActionUsersList:             {ActionUsersList, StaffSet, "Only staff members can view users"},
	ActionUsersCreate:           {ActionUsersCreate, AdminSet, "Only admins can create users"},
	ActionUsersUpdate:           {ActionUsersUpdate, AdminSet, "Only admins can update users"},
	ActionUsersDelete:           {ActionUsersDelete, AdminSet, "Only admins can delete users"},
	ActionUsersAssignSuperadmin: {ActionUsersAssignSuperadmin, SuperadminOnly, "Only superadmins can assign the superadmin role"},
	ActionUsersManageSuperadmin: {ActionUsersManageSuperadmin, SuperadminOnly, "Only superadmins can modify superadmin accounts"},

	ActionClientsList:   {ActionClientsList, StaffSet, "Only staff members can view clients"},
	ActionClientsRead:   {ActionClientsRead, StaffSet, "Only staff members can view client details"},
	ActionClientsCreate: {ActionClientsCreate, AdminSet, "Only admins can create clients"},
	ActionClientsUpdate: {ActionClientsUpdate, AdminSet, "Only admins can update clients"},
	ActionClientsDelete: {ActionClientsDelete, AdminSet, "Only admins can delete clients"},

	ActionServiceTagsList:   {ActionServiceTagsList, StaffSet, "Only staff members can view service tags"},
	ActionServiceTagsCreate: {ActionServiceTagsCreate, StaffSet, "Only staff members can create service tags"},
	ActionServiceTagsUpdate: {ActionServiceTagsUpdate, StaffSet, "Only staff members can update service tags"},
	ActionServiceTagsDelete: {ActionServiceTagsDelete, AdminSet, "Only admins can delete service tags"},

	ActionTicketsList:        {ActionTicketsList, StaffSet, "Only staff members can view all tickets"},
	ActionTicketsReadAny:     {ActionTicketsReadAny, StaffSet, "You do not have access to this ticket"},
	ActionTicketsCreate:      {ActionTicketsCreate, AllRoles, "You cannot create tickets"},
	ActionTicketsUpdate:      {ActionTicketsUpdate, StaffSet, "Only staff members can update tickets"},
	ActionTicketsDelete:      {ActionTicketsDelete, AdminSet, "Only admins can delete tickets"},
	ActionTicketsApprove:     {ActionTicketsApprove, AdminSet, "Only admins can approve or reject tickets"},
	ActionTicketsListPending: {ActionTicketsListPending, AdminSet, "Only admins can view tickets awaiting approval"},

	ActionCommentsDeleteAny: {ActionCommentsDeleteAny, AdminSet, "Only the author or an admin can delete this comment"},

	ActionEmailSendAccess: {ActionEmailSendAccess, AdminSet, "Only admins can send access emails"},
}

// Rules returns the rule table ordered by action, used to seed external enforcers.
func Rules() []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Action < out[j].Action })
	return out
}

// LookupRule returns the rule for an action.
func LookupRule(action Action) (Rule, bool) {
	r, ok := rules[action]
	return r, ok
}

// DenialMessage is the user-presentable text for a denied action.
func DenialMessage(action Action) string {
	if r, ok := rules[action]; ok && r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("You are not allowed to perform %s", action)
}

// Allowed evaluates the rule table. Unknown actions and invalid roles are denied.
func Allowed(role Role, action Action) bool {
	r, ok := rules[action]
	if !ok || !role.IsValid() {
		return false
	}
	return roleIn(role, r.Roles)
}
