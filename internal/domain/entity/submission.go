package entity

import "time"

// Submission представляет отметку пользователя о сдаче задания.
// Пара (TaskID, UserID) уникальна.
type Submission struct {
	ID          int
	TaskID      int
	UserID      int
	Status      SubmissionStatus
	SubmittedAt time.Time
}
