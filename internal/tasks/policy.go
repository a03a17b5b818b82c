package tasks

import (
	"github.com/google/uuid"

	"github.com/lanternhq/lantern/internal/shared"
)

// CanAccess decides read, update and delete for a task. The two non-
// privileged paths are OR-combined: owning the parent project or being an
// assignee each suffice on their own. projectOwner is nil when the task has
// no project or the project row is gone, which leaves only the assignment
// path.
func CanAccess(p shared.Principal, projectOwner *uuid.UUID, task Task) bool {
	if p.IsPrivileged() {
		return true
	}
	if projectOwner != nil && *projectOwner == p.ID {
		return true
	}
	for _, assignee := range task.Assignees {
		if assignee == p.ID {
			return true
		}
	}
	return false
}
