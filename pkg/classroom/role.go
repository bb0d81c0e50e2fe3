package classroom

type Role string

const (
	RoleStudent   Role = "student"
	RoleTeacher   Role = "teacher"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// CanModerate reports whether the role may issue moderation commands
// (mute/kick participants) in a room.
func (r Role) CanModerate() bool {
	switch r {
	case RoleTeacher, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// CanControlRoom reports whether the role may change room-wide state,
// such as ending the class or starting a recording.
func (r Role) CanControlRoom() bool {
	switch r {
	case RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleModerator, RoleAdmin:
		return true
	}
	return false
}
