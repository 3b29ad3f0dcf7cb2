package notification

import (
	"strconv"

	"github.com/hfarhan/workhub/internal/rbac"
)

// ResolveTarget computes the navigation target for a notification acted on
// by a user with the given role. Pure and total: every input resolves to a
// path, never an error.
//
// The rules form a strict priority cascade, first match wins:
//
//  1. leave with a leave id  -> the role's leaves page, approvals tab
//  2. task with a task id    -> the role's tasks page
//  3. salary                 -> /salary (the salary page dispatches by role itself)
//  4. shift                  -> ActionURL verbatim if set, else the team page
//     (team_lead's own, everyone else the employee one)
//  5. any ActionURL          -> verbatim
//  6. otherwise              -> the role's dashboard
//
// The cascade order matters on edge cases: a leave notification carrying an
// ActionURL but no leave id falls through to rule 5, and a shift notification
// prefers its ActionURL over the role fallback.
func ResolveTarget(n Notification, role rbac.Role) string {
	if n.Type == TypeLeave && n.Metadata.LeaveID != 0 {
		return "/" + role.String() + "/leaves?tab=approvals&leaveId=" + strconv.FormatInt(n.Metadata.LeaveID, 10)
	}

	if n.Type == TypeTask && n.Metadata.TaskID != 0 {
		return "/" + role.String() + "/tasks?taskId=" + strconv.FormatInt(n.Metadata.TaskID, 10)
	}

	if n.Type == TypeSalary {
		return "/salary"
	}

	if n.Type == TypeShift {
		if n.ActionURL != "" {
			return n.ActionURL
		}
		if role == rbac.RoleTeamLead {
			return "/team_lead/team"
		}
		return "/employee/team"
	}

	if n.ActionURL != "" {
		return n.ActionURL
	}

	return role.DashboardPath()
}
