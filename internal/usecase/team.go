package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/repository"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/storage"
)

// codeAttempts ограничивает число попыток подобрать свободный код приглашения
const codeAttempts = 10

// TeamUseCase реализует бизнес-логику для команд
type TeamUseCase struct {
	teamRepo    repository.TeamRepository
	memberRepo  repository.MemberRepository
	subjectRepo repository.SubjectRepository
	fileRepo    repository.SubjectFileRepository
	txManager   repository.TransactionManager
	fileStorage storage.FileStorage

	// mu защищает rnd: *rand.Rand не рассчитан на конкурентные вызовы
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewTeamUseCase создает новый usecase для команд
func NewTeamUseCase(
	teamRepo repository.TeamRepository,
	memberRepo repository.MemberRepository,
	subjectRepo repository.SubjectRepository,
	fileRepo repository.SubjectFileRepository,
	txManager repository.TransactionManager,
	fileStorage storage.FileStorage,
	rnd *rand.Rand,
) *TeamUseCase {
	return &TeamUseCase{
		teamRepo:    teamRepo,
		memberRepo:  memberRepo,
		subjectRepo: subjectRepo,
		fileRepo:    fileRepo,
		txManager:   txManager,
		fileStorage: fileStorage,
		rnd:         rnd,
	}
}

// CreateTeam создает команду и членство старосты для создателя.
// Обе записи создаются в одной транзакции: команда без старосты невозможна.
// Уникальность кода гарантирует индекс в базе, а не предварительная проверка;
// после нарушения уникальности постгрес отвергает все дальнейшие команды в
// той же транзакции, поэтому каждая попытка выполняется в свежей транзакции.
func (uc *TeamUseCase) CreateTeam(ctx context.Context, name string, ownerID int) (*entity.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.NewDomainError(
			"INVALID_INPUT",
			"team name is required",
			domainErrors.ErrInvalidInput,
		)
	}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		team := &entity.Team{
			Name:    name,
			Code:    uc.generateCode(),
			OwnerID: &ownerID,
		}

		err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
			if err := uc.teamRepo.Create(ctx, team); err != nil {
				return err
			}

			member := &entity.TeamMember{
				TeamID: team.ID,
				UserID: ownerID,
				Role:   entity.RoleHeadman,
			}

			if err := uc.memberRepo.Create(ctx, member); err != nil {
				return fmt.Errorf("failed to create headman membership: %w", err)
			}

			return nil
		})

		if err == nil {
			return team, nil
		}
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			// Транзакция откачена целиком, команда пробуется заново с новым кодом
			continue
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return nil, fmt.Errorf("failed to generate a unique team code after %d attempts", codeAttempts)
}

// generateCode возвращает случайный код приглашения
func (uc *TeamUseCase) generateCode() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	code := make([]byte, entity.TeamCodeLength)
	for i := range code {
		code[i] = entity.TeamCodeAlphabet[uc.rnd.Intn(len(entity.TeamCodeAlphabet))]
	}
	return string(code)
}

// GetTeamByID возвращает команду по ID
func (uc *TeamUseCase) GetTeamByID(ctx context.Context, teamID int) (*entity.Team, error) {
	team, err := uc.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, teamNotFound()
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// GetTeamByCode возвращает команду по коду приглашения
func (uc *TeamUseCase) GetTeamByCode(ctx context.Context, code string) (*entity.Team, error) {
	team, err := uc.teamRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, teamNotFound()
		}
		return nil, fmt.Errorf("failed to get team by code: %w", err)
	}
	return team, nil
}

// GetUserTeams возвращает команды, в которых состоит пользователь
func (uc *TeamUseCase) GetUserTeams(ctx context.Context, userID int) ([]*entity.Team, error) {
	teams, err := uc.teamRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user teams: %w", err)
	}

	if teams == nil {
		teams = []*entity.Team{}
	}

	return teams, nil
}

// JoinTeam добавляет пользователя в команду по коду приглашения с ролью студента.
// Повторное вступление не допускается.
func (uc *TeamUseCase) JoinTeam(ctx context.Context, userID int, code string) (*entity.Team, error) {
	team, err := uc.teamRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, teamNotFound()
		}
		return nil, fmt.Errorf("failed to get team by code: %w", err)
	}

	member := &entity.TeamMember{
		TeamID: team.ID,
		UserID: userID,
		Role:   entity.RoleStudent,
	}

	if err := uc.memberRepo.Create(ctx, member); err != nil {
		// Гонка двух вступлений разрешается составным ключом в базе
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.NewDomainError(
				"MEMBER_EXISTS",
				"user is already a member of this team",
				domainErrors.ErrAlreadyExists,
			)
		}
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	return team, nil
}

// DeleteTeam удаляет команду вместе с членствами, предметами, заданиями,
// сдачами и файлами. Записи убирает каскад в базе, байты файлов
// удаляются из хранилища по одному.
func (uc *TeamUseCase) DeleteTeam(ctx context.Context, teamID int) error {
	subjects, err := uc.subjectRepo.GetByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to list team subjects: %w", err)
	}

	var files []*entity.SubjectFile
	for _, subject := range subjects {
		subjectFiles, err := uc.fileRepo.GetBySubject(ctx, subject.ID)
		if err != nil {
			return fmt.Errorf("failed to list subject files: %w", err)
		}
		files = append(files, subjectFiles...)
	}

	err = uc.teamRepo.Delete(ctx, teamID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return teamNotFound()
		}
		return fmt.Errorf("failed to delete team: %w", err)
	}

	// Записи уже удалены, поэтому ошибка удаления байтов не отменяет операцию
	for _, file := range files {
		if _, err := uc.fileStorage.Delete(ctx, file.StorageName, file.SubjectID); err != nil {
			log.Printf("failed to delete stored file %s: %v", file.StorageName, err)
		}
	}

	return nil
}

// IsUserInTeam проверяет, состоит ли пользователь в команде
func (uc *TeamUseCase) IsUserInTeam(ctx context.Context, userID, teamID int) (bool, error) {
	_, err := uc.memberRepo.Get(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get membership: %w", err)
	}
	return true, nil
}

// GetUserRole возвращает роль пользователя в команде, nil для не-участника
func (uc *TeamUseCase) GetUserRole(ctx context.Context, userID, teamID int) (*entity.TeamMemberRole, error) {
	member, err := uc.memberRepo.Get(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return &member.Role, nil
}

// teamNotFound возвращает доменную ошибку отсутствия команды
func teamNotFound() error {
	return domainErrors.NewDomainError(
		"NOT_FOUND",
		"team not found",
		domainErrors.ErrNotFound,
	)
}
