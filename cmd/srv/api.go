package main

import (
	"net/http"

	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/internal/middleware"
	"github.com/demohub-lab/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cliCtx *cli.Context) error {
	s.loadConfig(cliCtx)
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis(s.newContext())
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.logger.Infof("Starting api server on %s", s.configs.ApiServer.Address())

	httpSrv := &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	if s.configs.ApiServer.Cert != "" {
		return httpSrv.ListenAndServeTLS(s.configs.ApiServer.Cert, s.configs.ApiServer.Key)
	}

	return httpSrv.ListenAndServe()
}

func (s *srv) startMigrate(cliCtx *cli.Context) error {
	s.loadConfig(cliCtx)
	s.loadLogger()
	s.loadDatabase()

	if err := entity.MigrateTable(s.newContext()); err != nil {
		return err
	}

	s.logger.Infof("Migrated database tables successfully")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	publicRouter := s.router.Branch()
	publicRouter.Before(middleware.Optional())
	router.GET(publicRouter, "/getBounty", s.bountyDomain.Get)
	router.GET(publicRouter, "/getListBounty", s.bountyDomain.GetList)
	router.GET(publicRouter, "/getListSolution", s.solutionDomain.GetList)
	router.GET(publicRouter, "/getDemo", s.demoDomain.Get)
	router.GET(publicRouter, "/getListDemo", s.demoDomain.GetList)
	router.GET(publicRouter, "/getListCommunity", s.communityDomain.GetList)
	router.GET(publicRouter, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)

	authRouter := s.router.Branch()
	authRouter.Before(middleware.AuthVerifier())
	router.GET(authRouter, "/getUser", s.userDomain.Get)
	router.GET(authRouter, "/getMyDemos", s.demoDomain.GetMyDemos)
	router.GET(authRouter, "/getPendingPublications", s.publicationDomain.GetPendingList)
	router.POST(authRouter, "/createBounty", s.bountyDomain.Create)
	router.POST(authRouter, "/deleteBounty", s.bountyDomain.Delete)
	router.POST(authRouter, "/submitSolution", s.solutionDomain.Submit)
	router.POST(authRouter, "/reviewSolution", s.solutionDomain.Review)
	router.POST(authRouter, "/createDemo", s.demoDomain.Create)
	router.POST(authRouter, "/requestPublication", s.demoDomain.RequestPublication)
	router.POST(authRouter, "/approvePublication", s.publicationDomain.Approve)
	router.POST(authRouter, "/rejectPublication", s.publicationDomain.Reject)
	router.POST(authRouter, "/createCommunity", s.communityDomain.Create)
	router.POST(authRouter, "/createCollaborator", s.communityDomain.CreateCollaborator)
}
