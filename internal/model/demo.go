package model

type Demo struct {
	ID             string   `json:"id"`
	CreatedBy      string   `json:"created_by"`
	CreatedAt      string   `json:"created_at"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags"`
	Status         string   `json:"status"`
	PublishLayer   string   `json:"publish_layer,omitempty"`
	CommunityID    string   `json:"community_id,omitempty"`
	CategoryID     string   `json:"category_id,omitempty"`
	BountyID       string   `json:"bounty_id,omitempty"`
	RejectedReason string   `json:"rejected_reason,omitempty"`
}

type CreateDemoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type CreateDemoResponse struct {
	ID string `json:"id"`
}

type GetDemoRequest struct {
	ID string `form:"id" json:"id"`
}

type GetDemoResponse Demo

type GetListDemoRequest struct {
	CommunityID string `form:"community_id" json:"community_id"`
	CategoryID  string `form:"category_id" json:"category_id"`
	Offset      int    `form:"offset" json:"offset"`
	Limit       int    `form:"limit" json:"limit"`
}

type GetListDemoResponse struct {
	Demos []Demo `json:"demos"`
}

type GetMyDemosRequest struct {
	Offset int `form:"offset" json:"offset"`
	Limit  int `form:"limit" json:"limit"`
}

type GetMyDemosResponse struct {
	Demos []Demo `json:"demos"`
}

type RequestPublicationRequest struct {
	DemoID       string `json:"demo_id"`
	PublishLayer string `json:"publish_layer"`
	CommunityID  string `json:"community_id"`
	CategoryID   string `json:"category_id"`
}

type RequestPublicationResponse struct {
	Status string `json:"status"`
}
