package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
)

// saveAttempts ограничивает число попыток подобрать свободное имя файла
const saveAttempts = 5

// LocalFileStorage реализует FileStorage поверх локального диска.
// Файлы предметов лежат в <root>/subjects/subject_<id>/, старые файлы — прямо в <root>/.
type LocalFileStorage struct {
	root string
	now  func() time.Time

	// mu защищает rnd: *rand.Rand не рассчитан на конкурентные вызовы
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewLocalFileStorage создает хранилище с указанным корнем и источником случайности
func NewLocalFileStorage(root string, rnd *rand.Rand, now func() time.Time) (*LocalFileStorage, error) {
	if now == nil {
		now = time.Now
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	return &LocalFileStorage{
		root: root,
		rnd:  rnd,
		now:  now,
	}, nil
}

// Save записывает содержимое r под новым именем хранения и возвращает это имя.
// Имя состоит из метки времени и случайного суффикса, исходное имя файла
// используется только для расширения.
func (s *LocalFileStorage) Save(ctx context.Context, r io.Reader, fileName string, subjectID int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := s.root
	if subjectID > 0 {
		dir = s.subjectDir(subjectID)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create subject directory: %w", err)
		}
	}

	ext := filepath.Ext(fileName)

	for attempt := 0; attempt < saveAttempts; attempt++ {
		storageName := s.newStorageName(ext)

		f, err := os.OpenFile(filepath.Join(dir, storageName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			// Совпадение метки времени и суффикса: пробуем другое имя
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", fmt.Errorf("failed to create file: %w", err)
		}

		if _, err := io.Copy(f, r); err != nil {
			f.Close()
			os.Remove(filepath.Join(dir, storageName))
			return "", fmt.Errorf("failed to write file: %w", err)
		}

		if err := f.Close(); err != nil {
			os.Remove(filepath.Join(dir, storageName))
			return "", fmt.Errorf("failed to close file: %w", err)
		}

		return storageName, nil
	}

	return "", fmt.Errorf("failed to pick a free storage name after %d attempts", saveAttempts)
}

// Get открывает файл по имени хранения.
// Сначала проверяется каталог предмета, затем плоский корень со старыми файлами.
func (s *LocalFileStorage) Get(ctx context.Context, storageName string, subjectID int) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.resolve(storageName, subjectID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return f, nil
}

// Delete удаляет файл по имени хранения в том же порядке разрешения путей, что и Get
func (s *LocalFileStorage) Delete(ctx context.Context, storageName string, subjectID int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	path, err := s.resolve(storageName, subjectID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("failed to delete file: %w", err)
	}

	return true, nil
}

// Exists проверяет наличие файла в том же порядке разрешения путей, что и Get
func (s *LocalFileStorage) Exists(ctx context.Context, storageName string, subjectID int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := s.resolve(storageName, subjectID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// resolve перебирает пути-кандидаты по порядку и возвращает первый существующий.
// Порядок фиксирован: каталог предмета, затем плоский корень.
func (s *LocalFileStorage) resolve(storageName string, subjectID int) (string, error) {
	for _, path := range s.candidatePaths(storageName, subjectID) {
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat file: %w", err)
		}
	}

	return "", domainErrors.ErrNotFound
}

// candidatePaths возвращает упорядоченный список путей, по которым может лежать файл
func (s *LocalFileStorage) candidatePaths(storageName string, subjectID int) []string {
	// Только базовое имя: имя хранения не должно выводить за пределы корня
	storageName = filepath.Base(storageName)

	var paths []string
	if subjectID > 0 {
		paths = append(paths, filepath.Join(s.subjectDir(subjectID), storageName))
	}
	return append(paths, filepath.Join(s.root, storageName))
}

// subjectDir возвращает каталог файлов предмета
func (s *LocalFileStorage) subjectDir(subjectID int) string {
	return filepath.Join(s.root, "subjects", fmt.Sprintf("subject_%d", subjectID))
}

// newStorageName генерирует имя хранения вида 20060102_150405_a1b2c3d4.ext
func (s *LocalFileStorage) newStorageName(ext string) string {
	s.mu.Lock()
	suffix := s.rnd.Uint32()
	s.mu.Unlock()

	return fmt.Sprintf("%s_%08x%s", s.now().Format("20060102_150405"), suffix, ext)
}
