package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
)

// Фейковые репозитории хранят данные в памяти и повторяют поведение
// postgres-слоя: уникальные ключи, ErrNotFound, ErrAlreadyExists.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Firstname == user.Firstname && u.Lastname == user.Lastname {
			return domainErrors.ErrAlreadyExists
		}
	}

	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID int) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByName(_ context.Context, firstname, lastname string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Firstname == firstname && u.Lastname == lastname {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *fakeUserRepo) Exists(ctx context.Context, firstname, lastname string) (bool, error) {
	_, err := r.GetByName(ctx, firstname, lastname)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type fakeTeamRepo struct {
	mu     sync.Mutex
	nextID int
	teams  map[int]*entity.Team
	// collideFirst заставляет первые N вставок завершиться конфликтом кода
	collideFirst int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{nextID: 1, teams: make(map[int]*entity.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *entity.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.collideFirst > 0 {
		r.collideFirst--
		return domainErrors.ErrAlreadyExists
	}

	for _, t := range r.teams {
		if t.Code == team.Code {
			return domainErrors.ErrAlreadyExists
		}
	}

	team.ID = r.nextID
	r.nextID++
	copied := *team
	r.teams[team.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, teamID int) (*entity.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	team, ok := r.teams[teamID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *fakeTeamRepo) GetByCode(_ context.Context, code string) (*entity.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.teams {
		if t.Code == code {
			copied := *t
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *fakeTeamRepo) GetByUser(_ context.Context, userID int) ([]*entity.Team, error) {
	return nil, nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, teamID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[teamID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.teams, teamID)
	return nil
}

type memberKey struct {
	teamID int
	userID int
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[memberKey]*entity.TeamMember
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[memberKey]*entity.TeamMember)}
}

func (r *fakeMemberRepo) Create(_ context.Context, member *entity.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := memberKey{member.TeamID, member.UserID}
	if _, ok := r.members[key]; ok {
		return domainErrors.ErrAlreadyExists
	}

	copied := *member
	r.members[key] = &copied
	return nil
}

func (r *fakeMemberRepo) Get(_ context.Context, teamID, userID int) (*entity.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.members[memberKey{teamID, userID}]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *member
	return &copied, nil
}

func (r *fakeMemberRepo) GetByTeam(_ context.Context, teamID int) ([]*entity.TeamMemberInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var infos []*entity.TeamMemberInfo
	for _, m := range r.members {
		if m.TeamID == teamID {
			infos = append(infos, &entity.TeamMemberInfo{
				TeamID: m.TeamID,
				UserID: m.UserID,
				Role:   m.Role,
			})
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].UserID < infos[j].UserID })
	return infos, nil
}

func (r *fakeMemberRepo) UpdateRole(_ context.Context, teamID, userID int, role entity.TeamMemberRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.members[memberKey{teamID, userID}]
	if !ok {
		return domainErrors.ErrNotFound
	}
	member.Role = role
	return nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, teamID, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := memberKey{teamID, userID}
	if _, ok := r.members[key]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.members, key)
	return nil
}

func (r *fakeMemberRepo) count(teamID, userID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for key := range r.members {
		if key.teamID == teamID && key.userID == userID {
			n++
		}
	}
	return n
}

type fakeSubjectRepo struct {
	mu       sync.Mutex
	nextID   int
	subjects map[int]*entity.Subject
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{nextID: 1, subjects: make(map[int]*entity.Subject)}
}

func (r *fakeSubjectRepo) Create(_ context.Context, subject *entity.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subject.ID = r.nextID
	r.nextID++
	copied := *subject
	r.subjects[subject.ID] = &copied
	return nil
}

func (r *fakeSubjectRepo) GetByID(_ context.Context, subjectID int) (*entity.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subject, ok := r.subjects[subjectID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *subject
	return &copied, nil
}

func (r *fakeSubjectRepo) GetByTeam(_ context.Context, teamID int) ([]*entity.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var subjects []*entity.Subject
	for _, s := range r.subjects {
		if s.TeamID == teamID {
			copied := *s
			subjects = append(subjects, &copied)
		}
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects, nil
}

func (r *fakeSubjectRepo) Update(_ context.Context, subject *entity.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.subjects[subject.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	existing.Title = subject.Title
	existing.SubjectInfo = subject.SubjectInfo
	existing.Status = subject.Status
	return nil
}

func (r *fakeSubjectRepo) teamOf(subjectID int) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subject, ok := r.subjects[subjectID]
	if !ok {
		return 0, false
	}
	return subject.TeamID, true
}

func (r *fakeSubjectRepo) titleOf(subjectID int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if subject, ok := r.subjects[subjectID]; ok {
		return subject.Title
	}
	return ""
}

func (r *fakeSubjectRepo) Delete(_ context.Context, subjectID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subjects[subjectID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.subjects, subjectID)
	return nil
}

type fakeTaskRepo struct {
	mu     sync.Mutex
	nextID int
	tasks  map[int]*entity.Task
	// subjects нужен для выборок уровня команды, как join в postgres-слое
	subjects *fakeSubjectRepo
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{nextID: 1, tasks: make(map[int]*entity.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.ID = r.nextID
	r.nextID++
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, taskID int) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) GetBySubject(_ context.Context, subjectID int) ([]*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []*entity.Task
	for _, t := range r.tasks {
		if t.SubjectID == subjectID {
			copied := *t
			tasks = append(tasks, &copied)
		}
	}
	sortTasksByDeadline(tasks)
	return tasks, nil
}

func (r *fakeTaskRepo) GetByTeam(_ context.Context, teamID int) ([]*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []*entity.Task
	for _, t := range r.tasks {
		if owner, ok := r.subjects.teamOf(t.SubjectID); ok && owner == teamID {
			copied := *t
			tasks = append(tasks, &copied)
		}
	}
	sortTasksByDeadline(tasks)
	return tasks, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tasks[task.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	existing.Name = task.Name
	existing.Description = task.Description
	existing.Deadline = task.Deadline
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, taskID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[taskID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

// sortTasksByDeadline сортирует задания по сроку, без срока первыми
func sortTasksByDeadline(tasks []*entity.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].Deadline, tasks[j].Deadline
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})
}

type submissionKey struct {
	taskID int
	userID int
}

type fakeSubmissionRepo struct {
	mu          sync.Mutex
	nextID      int
	submissions map[submissionKey]*entity.Submission
	// missOnGet заставляет первые N вызовов Get не находить отметку,
	// имитируя конкурентную вставку между Get и Create
	missOnGet int
	// tasks нужен для выборки заданий команды со статусом, как left join
	// в postgres-слое
	tasks *fakeTaskRepo
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{nextID: 1, submissions: make(map[submissionKey]*entity.Submission)}
}

func (r *fakeSubmissionRepo) Create(_ context.Context, submission *entity.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := submissionKey{submission.TaskID, submission.UserID}
	if _, ok := r.submissions[key]; ok {
		return domainErrors.ErrAlreadyExists
	}

	submission.ID = r.nextID
	r.nextID++
	copied := *submission
	r.submissions[key] = &copied
	return nil
}

func (r *fakeSubmissionRepo) Update(_ context.Context, submission *entity.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, s := range r.submissions {
		if s.ID == submission.ID {
			copied := *submission
			r.submissions[key] = &copied
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (r *fakeSubmissionRepo) Get(_ context.Context, taskID, userID int) (*entity.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.missOnGet > 0 {
		r.missOnGet--
		return nil, domainErrors.ErrNotFound
	}

	submission, ok := r.submissions[submissionKey{taskID, userID}]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *submission
	return &copied, nil
}

func (r *fakeSubmissionRepo) GetTeamTasksWithStatus(ctx context.Context, teamID, userID int) ([]*entity.TaskWithStatus, error) {
	tasks, err := r.tasks.GetByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.TaskWithStatus
	for _, t := range tasks {
		withStatus := &entity.TaskWithStatus{
			ID:           t.ID,
			SubjectID:    t.SubjectID,
			SubjectTitle: r.tasks.subjects.titleOf(t.SubjectID),
			Name:         t.Name,
			Description:  t.Description,
			Deadline:     t.Deadline,
		}
		if submission, ok := r.submissions[submissionKey{t.ID, userID}]; ok {
			status := submission.Status
			submittedAt := submission.SubmittedAt
			withStatus.CurrentStatus = &status
			withStatus.SubmittedAt = &submittedAt
		}
		result = append(result, withStatus)
	}
	return result, nil
}

func (r *fakeSubmissionRepo) count(taskID, userID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for key := range r.submissions {
		if key.taskID == taskID && key.userID == userID {
			n++
		}
	}
	return n
}

type fakeFileRepo struct {
	mu     sync.Mutex
	nextID int
	files  map[int]*entity.SubjectFile
	// failCreate заставляет Create завершаться ошибкой
	failCreate bool
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{nextID: 1, files: make(map[int]*entity.SubjectFile)}
}

func (r *fakeFileRepo) Create(_ context.Context, file *entity.SubjectFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCreate {
		return fmt.Errorf("insert failed")
	}

	file.ID = r.nextID
	r.nextID++
	copied := *file
	r.files[file.ID] = &copied
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, fileID int) (*entity.SubjectFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, ok := r.files[fileID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *file
	return &copied, nil
}

func (r *fakeFileRepo) GetBySubject(_ context.Context, subjectID int) ([]*entity.SubjectFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var files []*entity.SubjectFile
	for _, f := range r.files {
		if f.SubjectID == subjectID {
			copied := *f
			files = append(files, &copied)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID > files[j].ID })
	return files, nil
}

func (r *fakeFileRepo) Delete(_ context.Context, fileID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[fileID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.files, fileID)
	return nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeFileStorage хранит файлы в памяти и считает удаления
type fakeFileStorage struct {
	mu      sync.Mutex
	nextID  int
	files   map[string][]byte
	deletes int
	// failSave заставляет Save завершаться ошибкой
	failSave bool
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{files: make(map[string][]byte)}
}

func (s *fakeFileStorage) key(storageName string, subjectID int) string {
	return fmt.Sprintf("%d/%s", subjectID, storageName)
}

func (s *fakeFileStorage) Save(_ context.Context, r io.Reader, fileName string, subjectID int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSave {
		return "", fmt.Errorf("disk full")
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	s.nextID++
	name := fmt.Sprintf("stored_%d%s", s.nextID, ext(fileName))
	s.files[s.key(name, subjectID)] = content
	return name, nil
}

func (s *fakeFileStorage) Get(_ context.Context, storageName string, subjectID int) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.files[s.key(storageName, subjectID)]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(string(content))), nil
}

func (s *fakeFileStorage) Delete(_ context.Context, storageName string, subjectID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes++
	key := s.key(storageName, subjectID)
	if _, ok := s.files[key]; !ok {
		return false, nil
	}
	delete(s.files, key)
	return true, nil
}

func (s *fakeFileStorage) Exists(_ context.Context, storageName string, subjectID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.files[s.key(storageName, subjectID)]
	return ok, nil
}

func ext(fileName string) string {
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		return fileName[i:]
	}
	return ""
}
