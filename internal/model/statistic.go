package model

type GetLeaderBoardRequest struct {
	OrderedBy string `form:"ordered_by" json:"ordered_by"`
	Offset    int    `form:"offset" json:"offset"`
	Limit     int    `form:"limit" json:"limit"`
}

type GetLeaderBoardResponse struct {
	LeaderBoard []UserStatistic `json:"leaderboard"`
}
