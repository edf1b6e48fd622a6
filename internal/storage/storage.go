package storage

import (
	"context"
	"io"
)

// FileStorage определяет файловое хранилище вложений.
// subjectID > 0 означает каталог предмета; subjectID = 0 — плоский корень,
// в котором лежат файлы, загруженные до ввода каталогов предметов.
type FileStorage interface {
	Save(ctx context.Context, r io.Reader, fileName string, subjectID int) (string, error)
	Get(ctx context.Context, storageName string, subjectID int) (io.ReadCloser, error)
	Delete(ctx context.Context, storageName string, subjectID int) (bool, error)
	Exists(ctx context.Context, storageName string, subjectID int) (bool, error)
}
