package model

type GetPendingPublicationsRequest struct {
	PublishLayer string `form:"publish_layer" json:"publish_layer"`
	CommunityID  string `form:"community_id" json:"community_id"`
	Offset       int    `form:"offset" json:"offset"`
	Limit        int    `form:"limit" json:"limit"`
}

type GetPendingPublicationsResponse struct {
	Demos []Demo `json:"demos"`
}

type ApprovePublicationRequest struct {
	DemoID string `json:"demo_id"`
}

type ApprovePublicationResponse struct {
	Demo         Demo   `json:"demo"`
	BountyStatus string `json:"bounty_status,omitempty"`
}

type RejectPublicationRequest struct {
	DemoID string `json:"demo_id"`
	Reason string `json:"reason"`
}

type RejectPublicationResponse struct {
	Demo         Demo   `json:"demo"`
	BountyStatus string `json:"bounty_status,omitempty"`
}
