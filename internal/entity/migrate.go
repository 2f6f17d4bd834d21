package entity

import (
	"context"

	"github.com/demohub-lab/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Community{},
		&Collaborator{},
		&Demo{},
		&Bounty{},
		&Solution{},
	)
}
