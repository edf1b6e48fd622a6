package entity

import "time"

// SubjectFile представляет метаданные файла, прикрепленного к предмету
type SubjectFile struct {
	ID        int
	SubjectID int
	// DisplayName — имя файла, которое видит пользователь
	DisplayName string
	// StorageName — непрозрачное имя файла на диске
	StorageName string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}
