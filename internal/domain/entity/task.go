package entity

import "time"

// Task представляет задание по предмету
type Task struct {
	ID          int
	SubjectID   int
	Name        string
	Description *string
	// Deadline равен nil для заданий без срока сдачи
	Deadline *time.Time
}

// TaskWithStatus представляет задание вместе со статусом сдачи конкретного пользователя
type TaskWithStatus struct {
	ID           int
	SubjectID    int
	SubjectTitle string
	Name         string
	Description  *string
	Deadline     *time.Time
	// CurrentStatus равен nil, если пользователь еще не отмечал задание
	CurrentStatus *SubmissionStatus
	SubmittedAt   *time.Time
}
