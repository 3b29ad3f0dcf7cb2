package routes

import "github.com/hfarhan/workhub/internal/rbac"

// DefaultTable builds the application's navigation table.
//
// The entries mirror the shell's page inventory. Note the two declarations
// for /admin/employees: the source data carries both, and resolution is
// defined as first-declared-wins rather than collapsing them, so the
// EmployeeList entry is the one that resolves (pinned by test).
func DefaultTable() (*Table, error) {
	admin := rbac.NewRoleSet(rbac.RoleAdmin)
	adminHR := rbac.NewRoleSet(rbac.RoleAdmin, rbac.RoleHR)
	managers := rbac.NewRoleSet(rbac.RoleAdmin, rbac.RoleHR, rbac.RoleManager)
	everyone := rbac.NewRoleSet(rbac.Roles...)

	return NewTable([]Route{
		{Path: "/login", Allowed: rbac.Public(), Component: "Login"},

		{Path: "/admin/dashboard", Allowed: admin, Component: "AdminDashboard"},
		{Path: "/admin/employees", Allowed: admin, Component: "EmployeeList"},
		{Path: "/admin/employees", Allowed: adminHR, Component: "EmployeeDirectory"},
		{Path: "/admin/leaves", Allowed: admin, Component: "AdminLeaves"},
		{Path: "/admin/tasks", Allowed: admin, Component: "AdminTasks"},
		{Path: "/admin/reports", Allowed: admin, Component: "AdminReports"},

		{Path: "/hr/dashboard", Allowed: rbac.NewRoleSet(rbac.RoleHR), Component: "HRDashboard"},
		{Path: "/hr/employees", Allowed: adminHR, Component: "EmployeeDirectory"},
		{Path: "/hr/leaves", Allowed: rbac.NewRoleSet(rbac.RoleHR), Component: "HRLeaves"},
		{Path: "/hr/tasks", Allowed: rbac.NewRoleSet(rbac.RoleHR), Component: "HRTasks"},
		{Path: "/hr/hiring", Allowed: adminHR, Component: "Hiring"},

		{Path: "/manager/dashboard", Allowed: rbac.NewRoleSet(rbac.RoleManager), Component: "ManagerDashboard"},
		{Path: "/manager/leaves", Allowed: rbac.NewRoleSet(rbac.RoleManager), Component: "ManagerLeaves"},
		{Path: "/manager/tasks", Allowed: rbac.NewRoleSet(rbac.RoleManager), Component: "ManagerTasks"},
		{Path: "/manager/attendance", Allowed: managers, Component: "AttendanceBoard"},

		{Path: "/team_lead/dashboard", Allowed: rbac.NewRoleSet(rbac.RoleTeamLead), Component: "TeamLeadDashboard"},
		{Path: "/team_lead/leaves", Allowed: rbac.NewRoleSet(rbac.RoleTeamLead), Component: "TeamLeadLeaves"},
		{Path: "/team_lead/tasks", Allowed: rbac.NewRoleSet(rbac.RoleTeamLead), Component: "TeamLeadTasks"},
		{Path: "/team_lead/team", Allowed: rbac.NewRoleSet(rbac.RoleTeamLead), Component: "TeamOverview"},

		{Path: "/employee/dashboard", Allowed: rbac.NewRoleSet(rbac.RoleEmployee), Component: "EmployeeDashboard"},
		{Path: "/employee/leaves", Allowed: rbac.NewRoleSet(rbac.RoleEmployee), Component: "EmployeeLeaves"},
		{Path: "/employee/tasks", Allowed: rbac.NewRoleSet(rbac.RoleEmployee), Component: "EmployeeTasks"},
		{Path: "/employee/team", Allowed: rbac.NewRoleSet(rbac.RoleEmployee, rbac.RoleTeamLead), Component: "MyTeam"},
		{Path: "/employee/attendance", Allowed: everyone, Component: "MyAttendance"},

		{Path: "/salary", Allowed: everyone, Component: "SalaryDashboard"},
		{Path: "/chat/*", Allowed: everyone, Component: "Chat"},
	})
}
