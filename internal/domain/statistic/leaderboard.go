package statistic

import (
	"context"
	"errors"

	"github.com/demohub-lab/backend/internal/repository"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"github.com/demohub-lab/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const pointsKey = "leaderboard:points"

// How many users the redis sorted set is seeded with when it is rebuilt
// from the database.
const rebuildSize = 1000

type Leaderboard interface {
	// ChangeUserPoints bumps a user's score on the leaderboard. A no-op if
	// the leaderboard has never been built.
	ChangeUserPoints(ctx context.Context, userID string, points int64) error

	GetTopUsers(ctx context.Context, offset, limit int) ([]UserScore, error)
	GetRank(ctx context.Context, userID string) (uint64, error)
}

type UserScore struct {
	UserID string
	Points int64
}

type leaderboard struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

func New(userRepo repository.UserRepository, redisClient xredis.Client) *leaderboard {
	return &leaderboard{userRepo: userRepo, redisClient: redisClient}
}

func (l *leaderboard) ChangeUserPoints(ctx context.Context, userID string, points int64) error {
	exist, err := l.redisClient.Exist(ctx, pointsKey)
	if err != nil {
		return err
	}

	if !exist {
		return nil
	}

	return l.redisClient.ZIncrBy(ctx, pointsKey, points, userID)
}

func (l *leaderboard) GetTopUsers(ctx context.Context, offset, limit int) ([]UserScore, error) {
	if err := l.rebuildIfAbsent(ctx); err != nil {
		return nil, err
	}

	zs, err := l.redisClient.ZRevRangeWithScores(ctx, pointsKey, offset, limit)
	if err != nil {
		return nil, err
	}

	scores := make([]UserScore, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			return nil, errors.New("invalid member type in leaderboard")
		}

		scores = append(scores, UserScore{UserID: member, Points: int64(z.Score)})
	}

	return scores, nil
}

func (l *leaderboard) GetRank(ctx context.Context, userID string) (uint64, error) {
	if err := l.rebuildIfAbsent(ctx); err != nil {
		return 0, err
	}

	rank, err := l.redisClient.ZRevRank(ctx, pointsKey, userID)
	if err != nil {
		return 0, err
	}

	return rank + 1, nil
}

func (l *leaderboard) rebuildIfAbsent(ctx context.Context) error {
	exist, err := l.redisClient.Exist(ctx, pointsKey)
	if err != nil {
		return err
	}

	if exist {
		return nil
	}

	xcontext.Logger(ctx).Infof("Rebuilding points leaderboard from database")
	users, err := l.userRepo.GetTopByPoints(ctx, rebuildSize)
	if err != nil {
		return err
	}

	for _, u := range users {
		err := l.redisClient.ZAdd(ctx, pointsKey, redis.Z{
			Score:  float64(u.Points),
			Member: u.ID,
		})
		if err != nil {
			return err
		}
	}

	return nil
}
