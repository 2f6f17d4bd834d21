package model

type Community struct {
	ID           string `json:"id"`
	CreatedBy    string `json:"created_by"`
	Handle       string `json:"handle"`
	DisplayName  string `json:"display_name"`
	Introduction string `json:"introduction"`
}

type CreateCommunityRequest struct {
	Handle       string `json:"handle"`
	DisplayName  string `json:"display_name"`
	Introduction string `json:"introduction"`
}

type CreateCommunityResponse struct {
	ID string `json:"id"`
}

type GetListCommunityRequest struct {
	Offset int `form:"offset" json:"offset"`
	Limit  int `form:"limit" json:"limit"`
}

type GetListCommunityResponse struct {
	Communities []Community `json:"communities"`
}

type CreateCollaboratorRequest struct {
	CommunityID string `json:"community_id"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}

type CreateCollaboratorResponse struct{}
