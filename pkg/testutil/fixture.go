package testutil

import (
	"context"
	"testing"

	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

var (
	User1 = entity.User{
		Base:   entity.Base{ID: "user1"},
		Name:   "user1",
		Role:   entity.RoleUser,
		Points: 50,
	}

	User2 = entity.User{
		Base:   entity.Base{ID: "user2"},
		Name:   "user2",
		Role:   entity.RoleUser,
		Points: 20,
	}

	User3 = entity.User{
		Base:   entity.Base{ID: "user3"},
		Name:   "user3",
		Role:   entity.RoleUser,
		Points: 0,
	}

	Admin = entity.User{
		Base: entity.Base{ID: "admin"},
		Name: "admin",
		Role: entity.RoleSuperAdmin,
	}

	Community1 = entity.Community{
		Base:        entity.Base{ID: "community1"},
		CreatedBy:   User2.ID,
		Handle:      "community1",
		DisplayName: "Community One",
	}

	Collaborator1 = entity.Collaborator{
		UserID:      User2.ID,
		CommunityID: Community1.ID,
		Role:        entity.Owner,
		CreatedBy:   User2.ID,
	}

	// Demo1 belongs to User2 and has never been published.
	Demo1 = entity.Demo{
		Base:      entity.Base{ID: "demo1"},
		CreatedBy: User2.ID,
		Title:     "Demo One",
		Tags:      entity.Array[string]{"go"},
		Status:    entity.DemoDraft,
	}

	// Demo2 belongs to User3.
	Demo2 = entity.Demo{
		Base:      entity.Base{ID: "demo2"},
		CreatedBy: User3.ID,
		Title:     "Demo Two",
		Status:    entity.DemoDraft,
	}

	// Demo3 belongs to User1, the usual bounty creator in tests.
	Demo3 = entity.Demo{
		Base:      entity.Base{ID: "demo3"},
		CreatedBy: User1.ID,
		Title:     "Demo Three",
		Status:    entity.DemoDraft,
	}
)

func insertFixtures(t *testing.T, ctx context.Context) {
	db := xcontext.DB(ctx)

	users := []entity.User{User1, User2, User3, Admin}
	require.NoError(t, db.Create(&users).Error)

	community := Community1
	require.NoError(t, db.Create(&community).Error)

	collaborator := Collaborator1
	require.NoError(t, db.Create(&collaborator).Error)

	demos := []entity.Demo{Demo1, Demo2, Demo3}
	require.NoError(t, db.Create(&demos).Error)
}
