package model

type Bounty struct {
	ID                 string   `json:"id"`
	CreatedBy          string   `json:"created_by"`
	CreatedAt          string   `json:"created_at"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	RewardPoints       int64    `json:"reward_points"`
	Status             string   `json:"status"`
	PublishLayer       string   `json:"publish_layer"`
	PublishCommunityID string   `json:"publish_community_id,omitempty"`
	PublishCategoryID  string   `json:"publish_category_id,omitempty"`
	ProgramTitle       string   `json:"program_title"`
	ProgramDescription string   `json:"program_description"`
	ProgramTags        []string `json:"program_tags"`
}

type CreateBountyRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	RewardPoints       int64    `json:"reward_points"`
	PublishLayer       string   `json:"publish_layer"`
	PublishCommunityID string   `json:"publish_community_id"`
	PublishCategoryID  string   `json:"publish_category_id"`
	ProgramTitle       string   `json:"program_title"`
	ProgramDescription string   `json:"program_description"`
	ProgramTags        []string `json:"program_tags"`
}

type CreateBountyResponse struct {
	ID string `json:"id"`
}

type GetBountyRequest struct {
	ID string `form:"id" json:"id"`
}

type GetBountyResponse struct {
	Bounty
	Solutions []Solution `json:"solutions"`
}

type GetListBountyRequest struct {
	Status    string `form:"status" json:"status"`
	CreatedBy string `form:"created_by" json:"created_by"`
	Offset    int    `form:"offset" json:"offset"`
	Limit     int    `form:"limit" json:"limit"`
}

type GetListBountyResponse struct {
	Bounties []Bounty `json:"bounties"`
}

type DeleteBountyRequest struct {
	ID string `json:"id"`
}

type DeleteBountyResponse struct{}
