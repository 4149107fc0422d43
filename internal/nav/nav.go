// Package nav holds the static role → sidebar mapping that drives the
// layout shell.
package nav

import "tutorboard/internal/session"

type Item struct {
	Title string
	Path  string
	Icon  string
}

var byRole = map[string][]Item{
	session.RoleTeacher: {
		{Title: "My lessons", Path: "/teacher/lessons", Icon: "calendar"},
		{Title: "Profile", Path: "/teacher/profile", Icon: "user"},
	},
	session.RoleAdmin: {
		{Title: "Students", Path: "/panel/students", Icon: "users"},
		{Title: "Teachers", Path: "/panel/teachers", Icon: "briefcase"},
		{Title: "Lessons", Path: "/panel/lessons", Icon: "calendar"},
		{Title: "Transactions", Path: "/panel/transactions", Icon: "credit-card"},
		{Title: "Teacher payments", Path: "/panel/payments", Icon: "banknote"},
	},
	session.RoleSuperAdmin: {
		{Title: "Admins", Path: "/panel/admins", Icon: "shield"},
		{Title: "Students", Path: "/panel/students", Icon: "users"},
		{Title: "Teachers", Path: "/panel/teachers", Icon: "briefcase"},
		{Title: "Lessons", Path: "/panel/lessons", Icon: "calendar"},
		{Title: "Transactions", Path: "/panel/transactions", Icon: "credit-card"},
		{Title: "Teacher payments", Path: "/panel/payments", Icon: "banknote"},
	},
}

// ForRole returns the ordered sidebar entries for a role.
func ForRole(role string) []Item {
	return byRole[role]
}

// HomePath is where a signed-in user lands after login or when hitting
// the root path.
func HomePath(role string) string {
	items := byRole[role]
	if len(items) == 0 {
		return "/login/teacher"
	}
	return items[0].Path
}
