package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
)

func newTestMemberUseCase(t *testing.T) (*MemberUseCase, *fakeMemberRepo) {
	t.Helper()

	memberRepo := newFakeMemberRepo()
	require.NoError(t, memberRepo.Create(context.Background(), &entity.TeamMember{
		TeamID: 1,
		UserID: 10,
		Role:   entity.RoleHeadman,
	}))
	require.NoError(t, memberRepo.Create(context.Background(), &entity.TeamMember{
		TeamID: 1,
		UserID: 11,
		Role:   entity.RoleStudent,
	}))

	return NewMemberUseCase(memberRepo), memberRepo
}

func TestUpdateMemberRole(t *testing.T) {
	uc, memberRepo := newTestMemberUseCase(t)

	require.NoError(t, uc.UpdateMemberRole(context.Background(), 1, 11, entity.RoleHeadman))

	member, err := memberRepo.Get(context.Background(), 1, 11)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleHeadman, member.Role)
}

func TestUpdateMemberRole_UnknownMember(t *testing.T) {
	uc, _ := newTestMemberUseCase(t)

	err := uc.UpdateMemberRole(context.Background(), 1, 99, entity.RoleStudent)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestUpdateMemberRole_UnknownRole(t *testing.T) {
	uc, _ := newTestMemberUseCase(t)

	err := uc.UpdateMemberRole(context.Background(), 1, 11, entity.TeamMemberRole("owner"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidInput)
}

func TestRemoveMember(t *testing.T) {
	uc, memberRepo := newTestMemberUseCase(t)

	require.NoError(t, uc.RemoveMember(context.Background(), 1, 11))

	_, err := memberRepo.Get(context.Background(), 1, 11)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestRemoveMember_LastHeadmanAllowed(t *testing.T) {
	uc, memberRepo := newTestMemberUseCase(t)

	// Удаление единственного старосты не блокируется на этом уровне
	require.NoError(t, uc.RemoveMember(context.Background(), 1, 10))

	members, err := memberRepo.GetByTeam(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, entity.RoleStudent, members[0].Role)
}

func TestIsHeadman(t *testing.T) {
	uc, _ := newTestMemberUseCase(t)

	isHeadman, err := uc.IsHeadman(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.True(t, isHeadman)

	isHeadman, err = uc.IsHeadman(context.Background(), 11, 1)
	require.NoError(t, err)
	assert.False(t, isHeadman)

	// Не-участник тоже не староста
	isHeadman, err = uc.IsHeadman(context.Background(), 99, 1)
	require.NoError(t, err)
	assert.False(t, isHeadman)
}

func TestGetTeamMembers_EmptyTeam(t *testing.T) {
	uc := NewMemberUseCase(newFakeMemberRepo())

	members, err := uc.GetTeamMembers(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, members)
	assert.Empty(t, members)
}
