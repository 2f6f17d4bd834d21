package domain

import (
	"context"

	"github.com/demohub-lab/backend/internal/domain/statistic"
	"github.com/demohub-lab/backend/internal/model"
	"github.com/demohub-lab/backend/internal/repository"
	"github.com/demohub-lab/backend/pkg/errorx"
	"github.com/demohub-lab/backend/pkg/xcontext"
)

type StatisticDomain interface {
	GetLeaderBoard(context.Context, *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
}

type statisticDomain struct {
	leaderboard statistic.Leaderboard
	userRepo    repository.UserRepository
}

func NewStatisticDomain(
	leaderboard statistic.Leaderboard,
	userRepo repository.UserRepository,
) *statisticDomain {
	return &statisticDomain{leaderboard: leaderboard, userRepo: userRepo}
}

func (d *statisticDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	if req.OrderedBy != "" && req.OrderedBy != "points" {
		return nil, errorx.New(errorx.BadRequest, "Invalid ordered_by field")
	}

	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	scores, err := d.leaderboard.GetTopUsers(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	ids := make([]string, 0, len(scores))
	for _, s := range scores {
		ids = append(ids, s.UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard users: %v", err)
		return nil, errorx.Unknown
	}

	byID := map[string]model.User{}
	for i := range users {
		byID[users[i].ID] = model.ConvertUser(&users[i])
	}

	resp := &model.GetLeaderBoardResponse{LeaderBoard: []model.UserStatistic{}}
	for i, s := range scores {
		u, ok := byID[s.UserID]
		if !ok {
			xcontext.Logger(ctx).Warnf("Leaderboard member %s has no user record", s.UserID)
			continue
		}

		resp.LeaderBoard = append(resp.LeaderBoard, model.UserStatistic{
			User:        u,
			Value:       int(s.Points),
			CurrentRank: offset + i + 1,
		})
	}

	return resp, nil
}
