package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/repository"
)

// MemberUseCase реализует бизнес-логику для участников команд
type MemberUseCase struct {
	memberRepo repository.MemberRepository
}

// NewMemberUseCase создает новый usecase для участников
func NewMemberUseCase(memberRepo repository.MemberRepository) *MemberUseCase {
	return &MemberUseCase{memberRepo: memberRepo}
}

// GetTeamMembers возвращает участников команды с отображаемыми полями пользователя
func (uc *MemberUseCase) GetTeamMembers(ctx context.Context, teamID int) ([]*entity.TeamMemberInfo, error) {
	members, err := uc.memberRepo.GetByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}

	if members == nil {
		members = []*entity.TeamMemberInfo{}
	}

	return members, nil
}

// UpdateMemberRole изменяет роль участника команды
func (uc *MemberUseCase) UpdateMemberRole(ctx context.Context, teamID, userID int, role entity.TeamMemberRole) error {
	if _, err := entity.ParseTeamMemberRole(role.String()); err != nil {
		return domainErrors.NewDomainError(
			"INVALID_INPUT",
			"unknown member role",
			domainErrors.ErrInvalidInput,
		)
	}

	err := uc.memberRepo.UpdateRole(ctx, teamID, userID, role)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return memberNotFound()
		}
		return fmt.Errorf("failed to update member role: %w", err)
	}

	return nil
}

// RemoveMember удаляет участника из команды
func (uc *MemberUseCase) RemoveMember(ctx context.Context, teamID, userID int) error {
	err := uc.memberRepo.Delete(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return memberNotFound()
		}
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// IsHeadman проверяет, является ли пользователь старостой команды.
// Для не-участника и студента возвращает false.
func (uc *MemberUseCase) IsHeadman(ctx context.Context, userID, teamID int) (bool, error) {
	member, err := uc.memberRepo.Get(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get membership: %w", err)
	}

	return member.Role == entity.RoleHeadman, nil
}

// memberNotFound возвращает доменную ошибку отсутствия членства
func memberNotFound() error {
	return domainErrors.NewDomainError(
		"NOT_FOUND",
		"team member not found",
		domainErrors.ErrNotFound,
	)
}
