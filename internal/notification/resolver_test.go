package notification

import (
	"testing"

	"github.com/hfarhan/workhub/internal/rbac"
)

func TestResolveTargetPrecedence(t *testing.T) {
	cases := []struct {
		name string
		n    Notification
		role rbac.Role
		want string
	}{
		{
			name: "leave with id routes to approvals tab",
			n:    Notification{Type: TypeLeave, Metadata: Metadata{LeaveID: 42}},
			role: rbac.RoleHR,
			want: "/hr/leaves?tab=approvals&leaveId=42",
		},
		{
			name: "leave id beats action url",
			n:    Notification{Type: TypeLeave, Metadata: Metadata{LeaveID: 7}, ActionURL: "/custom"},
			role: rbac.RoleManager,
			want: "/manager/leaves?tab=approvals&leaveId=7",
		},
		{
			name: "leave without id falls through to action url",
			n:    Notification{Type: TypeLeave, ActionURL: "/custom/leave"},
			role: rbac.RoleHR,
			want: "/custom/leave",
		},
		{
			name: "leave without id or url falls to dashboard",
			n:    Notification{Type: TypeLeave},
			role: rbac.RoleHR,
			want: "/hr/dashboard",
		},
		{
			name: "task with id routes to tasks",
			n:    Notification{Type: TypeTask, Metadata: Metadata{TaskID: 99}},
			role: rbac.RoleEmployee,
			want: "/employee/tasks?taskId=99",
		},
		{
			name: "salary is role-agnostic",
			n:    Notification{Type: TypeSalary},
			role: rbac.RoleTeamLead,
			want: "/salary",
		},
		{
			name: "salary ignores action url",
			n:    Notification{Type: TypeSalary, ActionURL: "/elsewhere"},
			role: rbac.RoleAdmin,
			want: "/salary",
		},
		{
			name: "shift action url wins over role fallback",
			n:    Notification{Type: TypeShift, ActionURL: "/custom/path"},
			role: rbac.RoleEmployee,
			want: "/custom/path",
		},
		{
			name: "shift without url for team lead",
			n:    Notification{Type: TypeShift},
			role: rbac.RoleTeamLead,
			want: "/team_lead/team",
		},
		{
			name: "shift without url for anyone else",
			n:    Notification{Type: TypeShift},
			role: rbac.RoleEmployee,
			want: "/employee/team",
		},
		{
			name: "shift without url for manager uses employee team page",
			n:    Notification{Type: TypeShift},
			role: rbac.RoleManager,
			want: "/employee/team",
		},
		{
			name: "info with action url",
			n:    Notification{Type: TypeInfo, ActionURL: "/announcements/3"},
			role: rbac.RoleEmployee,
			want: "/announcements/3",
		},
		{
			name: "warning with action url",
			n:    Notification{Type: TypeWarning, ActionURL: "/policy"},
			role: rbac.RoleHR,
			want: "/policy",
		},
		{
			name: "info without target falls to dashboard",
			n:    Notification{Type: TypeInfo},
			role: rbac.RoleManager,
			want: "/manager/dashboard",
		},
	}

	for _, tc := range cases {
		if got := ResolveTarget(tc.n, tc.role); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestParseTypeDefaultsToInfo(t *testing.T) {
	cases := map[string]Type{
		"leave":   TypeLeave,
		"task":    TypeTask,
		"salary":  TypeSalary,
		"shift":   TypeShift,
		"warning": TypeWarning,
		"info":    TypeInfo,
		"":        TypeInfo,
		"bogus":   TypeInfo,
		"LEAVE":   TypeInfo,
	}
	for input, want := range cases {
		if got := ParseType(input); got != want {
			t.Fatalf("ParseType(%q): expected %s, got %s", input, want, got)
		}
	}
}
