package main

import (
	"context"

	"github.com/BurntSushi/toml"
	"github.com/demohub-lab/backend/config"
	"github.com/demohub-lab/backend/internal/domain"
	"github.com/demohub-lab/backend/internal/domain/statistic"
	"github.com/demohub-lab/backend/internal/repository"
	"github.com/demohub-lab/backend/pkg/logger"
	"github.com/demohub-lab/backend/pkg/router"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"github.com/demohub-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB
	router  *router.Router

	redisClient xredis.Client
	leaderboard statistic.Leaderboard

	userRepo         repository.UserRepository
	communityRepo    repository.CommunityRepository
	collaboratorRepo repository.CollaboratorRepository
	demoRepo         repository.DemoRepository
	bountyRepo       repository.BountyRepository
	solutionRepo     repository.SolutionRepository

	userDomain        domain.UserDomain
	communityDomain   domain.CommunityDomain
	demoDomain        domain.DemoDomain
	bountyDomain      domain.BountyDomain
	solutionDomain    domain.SolutionDomain
	publicationDomain domain.PublicationDomain
	statisticDomain   domain.StatisticDomain
}

func (s *srv) loadConfig(cliCtx *cli.Context) {
	if _, err := toml.DecodeFile(cliCtx.String("config"), &s.configs); err != nil {
		panic(err)
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRedis(ctx context.Context) {
	var err error
	s.redisClient, err = xredis.NewClient(ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.communityRepo = repository.NewCommunityRepository()
	s.collaboratorRepo = repository.NewCollaboratorRepository()
	s.demoRepo = repository.NewDemoRepository()
	s.bountyRepo = repository.NewBountyRepository()
	s.solutionRepo = repository.NewSolutionRepository()
}

func (s *srv) loadDomains() {
	s.leaderboard = statistic.New(s.userRepo, s.redisClient)

	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.communityDomain = domain.NewCommunityDomain(s.communityRepo, s.collaboratorRepo, s.userRepo)
	s.demoDomain = domain.NewDemoDomain(s.demoRepo, s.communityRepo)
	s.bountyDomain = domain.NewBountyDomain(
		s.bountyRepo, s.solutionRepo, s.demoRepo, s.userRepo, s.communityRepo)
	s.solutionDomain = domain.NewSolutionDomain(s.solutionRepo, s.bountyRepo, s.demoRepo)
	s.publicationDomain = domain.NewPublicationDomain(
		s.demoRepo, s.bountyRepo, s.solutionRepo, s.userRepo, s.collaboratorRepo, s.leaderboard)
	s.statisticDomain = domain.NewStatisticDomain(s.leaderboard, s.userRepo)
}

// newContext returns the base context carrying the service dependencies, for
// code paths that run outside of the router.
func (s *srv) newContext() context.Context {
	ctx := xcontext.WithDB(context.Background(), s.db)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithConfigs(ctx, s.configs)
	return ctx
}
