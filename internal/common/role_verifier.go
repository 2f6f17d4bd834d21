package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/internal/repository"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type GlobalRoleVerifier struct {
	userRepo repository.UserRepository
}

func NewGlobalRoleVerifier(userRepo repository.UserRepository) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{userRepo: userRepo}
}

func (verifier *GlobalRoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.GlobalRole) error {
	userID := xcontext.RequestUserID(ctx)
	u, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user is not valid")
	}

	if !slices.Contains(requiredRoles, u.Role) {
		return errors.New("user role does not have permission")
	}

	return nil
}

type CommunityRoleVerifier struct {
	collaboratorRepo repository.CollaboratorRepository
	userRepo         repository.UserRepository
}

func NewCommunityRoleVerifier(
	collaboratorRepo repository.CollaboratorRepository,
	userRepo repository.UserRepository,
) *CommunityRoleVerifier {
	return &CommunityRoleVerifier{
		collaboratorRepo: collaboratorRepo,
		userRepo:         userRepo,
	}
}

// Verify checks that the acting user holds one of the required roles in the
// community. Global admins always pass.
func (verifier *CommunityRoleVerifier) Verify(
	ctx context.Context,
	communityID string,
	requiredRoles ...entity.Role,
) error {
	userID := xcontext.RequestUserID(ctx)
	u, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user is not valid")
	}

	if slices.Contains(entity.GlobalAdminRoles, u.Role) {
		return nil
	}

	collaborator, err := verifier.collaboratorRepo.Get(ctx, userID, communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user is not a collaborator of this community")
		}

		return err
	}

	if !slices.Contains(requiredRoles, collaborator.Role) {
		return errors.New("user role does not have permission")
	}

	return nil
}
