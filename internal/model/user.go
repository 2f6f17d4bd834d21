package model

type User struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	Points             int64  `json:"points"`
	ContributionPoints int64  `json:"contribution_points"`
	Level              int    `json:"level"`
}

type GetUserRequest struct {
	ID string `form:"id" json:"id"`
}

type GetUserResponse User

type UserStatistic struct {
	User        User `json:"user"`
	Value       int  `json:"value"`
	CurrentRank int  `json:"current_rank"`
}
