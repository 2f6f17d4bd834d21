package model

type Solution struct {
	ID              string `json:"id"`
	BountyID        string `json:"bounty_id"`
	UserID          string `json:"user_id"`
	DemoID          string `json:"demo_id"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	SubmittedAt     string `json:"submitted_at"`
	ReviewedAt      string `json:"reviewed_at,omitempty"`
}

type SubmitSolutionRequest struct {
	BountyID string `json:"bounty_id"`
	DemoID   string `json:"demo_id"`
}

type SubmitSolutionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ReviewSolutionRequest struct {
	SolutionID string `json:"solution_id"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

type ReviewSolutionResponse struct {
	Solution     Solution `json:"solution"`
	BountyStatus string   `json:"bounty_status"`
}

type GetListSolutionRequest struct {
	BountyID string `form:"bounty_id" json:"bounty_id"`
	Status   string `form:"status" json:"status"`
	Offset   int    `form:"offset" json:"offset"`
	Limit    int    `form:"limit" json:"limit"`
}

type GetListSolutionResponse struct {
	Solutions []Solution `json:"solutions"`
}
