package services

import "classtrade/src/models"

// AuthorizeRoster guards teacher-only roster actions (removing a student,
// adjusting cash, changing credentials): the actor must be a teacher and the
// target must be a student on that teacher's roster. Stateless; callers run
// it before any roster mutation.
func AuthorizeRoster(actorID string, actorRole models.Role, target *models.Account) error {
	if actorRole != models.RoleTeacher {
		return ErrUnauthorizedRoster
	}
	if target == nil || target.Role != models.RoleStudent {
		return ErrUnauthorizedRoster
	}
	if target.TeacherID == nil || *target.TeacherID != actorID {
		return ErrUnauthorizedRoster
	}
	return nil
}
