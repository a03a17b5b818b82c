package events

import "github.com/lanternhq/lantern/internal/shared"

// CanModify decides update and delete for an event: creator or privileged.
// List and read carry no restriction beyond authentication, so there is no
// read predicate here.
func CanModify(p shared.Principal, event Event) bool {
	if p.IsPrivileged() {
		return true
	}
	return event.UserID != nil && *event.UserID == p.ID
}
