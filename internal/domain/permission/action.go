package permission

import "strings"

// Action identifies a guarded procedure as "<resource>.<verb>".
type Action string

const (
	ActionUsersList             Action = "users.list"
	ActionUsersCreate           Action = "users.create"
	ActionUsersUpdate           Action = "users.update"
	ActionUsersDelete           Action = "users.delete"
	ActionUsersAssignSuperadmin Action = "users.assign_superadmin"
	ActionUsersManageSuperadmin Action = "users.manage_superadmin"

	ActionClientsList   Action = "clients.list"
	ActionClientsRead   Action = "clients.read"
	ActionClientsCreate Action = "clients.create"
	ActionClientsUpdate Action = "clients.update"
	ActionClientsDelete Action = "clients.delete"

	ActionServiceTagsList   Action = "service_tags.list"
	ActionServiceTagsCreate Action = "service_tags.create"
	ActionServiceTagsUpdate Action = "service_tags.update"
	ActionServiceTagsDelete Action = "service_tags.delete"

	ActionTicketsList        Action = "tickets.list"
	ActionTicketsReadAny     Action = "tickets.read_any"
	ActionTicketsCreate      Action = "tickets.create"
	ActionTicketsUpdate      Action = "tickets.update"
	ActionTicketsDelete      Action = "tickets.delete"
	ActionTicketsApprove     Action = "tickets.approve"
	ActionTicketsListPending Action = "tickets.list_pending"

	ActionCommentsDeleteAny Action = "comments.delete_any"

	ActionEmailSendAccess Action = "email.send_access"
)

func (a Action) String() string {
	return string(a)
}

// Split returns the resource and verb halves, the object/action pair of a policy rule.
func (a Action) Split() (resource, verb string) {
	resource, verb, found := strings.Cut(string(a), ".")
	if !found {
		return string(a), ""
	}
	return resource, verb
}
