package testutil

import (
	"context"
	"testing"

	"github.com/demohub-lab/backend/config"
	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/pkg/authenticator"
	"github.com/demohub-lab/backend/pkg/logger"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockContext returns a context backed by a fresh in-memory database with
// migrated tables and fixture records.
func MockContext(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	cfg := config.Configs{
		ApiServer: config.ServerConfigs{
			DefaultLimit: 1,
			MaxLimit:     50,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
		},
		Bounty: config.BountyConfigs{
			ContributionPointsPerBounty: 10,
		},
	}

	ctx := xcontext.WithDB(context.Background(), db)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))

	require.NoError(t, entity.MigrateTable(ctx))
	insertFixtures(t, ctx)

	return ctx
}

// MockContextWithUserID is MockContext acting as the given user.
func MockContextWithUserID(t *testing.T, userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(t), userID)
}
