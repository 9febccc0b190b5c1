package core

// Role is the closed set of user kinds known to the system.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

var AllRoles = []Role{RoleTeacher, RoleStudent, RoleAdmin}

func (r Role) IsValid() bool {
	switch r {
	case RoleTeacher, RoleStudent, RoleAdmin:
		return true
	}
	return false
}
