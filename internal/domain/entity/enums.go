package entity

import "fmt"

// TeamMemberRole представляет роль участника команды
type TeamMemberRole string

const (
	RoleStudent TeamMemberRole = "student"
	RoleHeadman TeamMemberRole = "headman"
)

// String возвращает представление роли для хранилища
func (r TeamMemberRole) String() string {
	return string(r)
}

// ParseTeamMemberRole преобразует строку хранилища в роль
func ParseTeamMemberRole(s string) (TeamMemberRole, error) {
	switch TeamMemberRole(s) {
	case RoleStudent, RoleHeadman:
		return TeamMemberRole(s), nil
	default:
		return "", fmt.Errorf("unknown team member role: %q", s)
	}
}

// SubjectStatus представляет форму контроля по предмету
type SubjectStatus string

const (
	SubjectExam SubjectStatus = "exam"
	SubjectTest SubjectStatus = "test"
)

// String возвращает представление статуса для хранилища
func (s SubjectStatus) String() string {
	return string(s)
}

// ParseSubjectStatus преобразует строку хранилища в статус предмета
func ParseSubjectStatus(s string) (SubjectStatus, error) {
	switch SubjectStatus(s) {
	case SubjectExam, SubjectTest:
		return SubjectStatus(s), nil
	default:
		return "", fmt.Errorf("unknown subject status: %q", s)
	}
}

// SubmissionStatus представляет состояние сдачи задания
type SubmissionStatus string

const (
	SubmissionWait SubmissionStatus = "wait"
	SubmissionDone SubmissionStatus = "done"
)

// String возвращает представление статуса для хранилища
func (s SubmissionStatus) String() string {
	return string(s)
}

// ParseSubmissionStatus преобразует строку хранилища в статус сдачи
func ParseSubmissionStatus(s string) (SubmissionStatus, error) {
	switch SubmissionStatus(s) {
	case SubmissionWait, SubmissionDone:
		return SubmissionStatus(s), nil
	default:
		return "", fmt.Errorf("unknown submission status: %q", s)
	}
}

// Toggle возвращает противоположный статус сдачи
func (s SubmissionStatus) Toggle() SubmissionStatus {
	if s == SubmissionWait {
		return SubmissionDone
	}
	return SubmissionWait
}
