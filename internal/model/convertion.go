package model

import (
	"time"

	"github.com/demohub-lab/backend/internal/entity"
)

func ConvertUser(user *entity.User) User {
	return User{
		ID:                 user.ID,
		Name:               user.Name,
		Role:               string(user.Role),
		Points:             user.Points,
		ContributionPoints: user.ContributionPoints,
		Level:              user.Level(),
	}
}

func ConvertBounty(bounty *entity.Bounty) Bounty {
	return Bounty{
		ID:                 bounty.ID,
		CreatedBy:          bounty.CreatedBy,
		CreatedAt:          bounty.CreatedAt.Format(time.RFC3339Nano),
		Title:              bounty.Title,
		Description:        string(bounty.Description),
		RewardPoints:       bounty.RewardPoints,
		Status:             string(bounty.Status),
		PublishLayer:       string(bounty.PublishLayer),
		PublishCommunityID: bounty.PublishCommunityID.String,
		PublishCategoryID:  bounty.PublishCategoryID.String,
		ProgramTitle:       bounty.ProgramTitle,
		ProgramDescription: string(bounty.ProgramDescription),
		ProgramTags:        bounty.ProgramTags,
	}
}

func ConvertSolution(solution *entity.Solution) Solution {
	reviewedAt := ""
	if !solution.ReviewedAt.IsZero() {
		reviewedAt = solution.ReviewedAt.Format(time.RFC3339Nano)
	}

	return Solution{
		ID:              solution.ID,
		BountyID:        solution.BountyID,
		UserID:          solution.UserID,
		DemoID:          solution.DemoID,
		Status:          string(solution.Status),
		RejectionReason: solution.RejectionReason,
		SubmittedAt:     solution.CreatedAt.Format(time.RFC3339Nano),
		ReviewedAt:      reviewedAt,
	}
}

func ConvertDemo(demo *entity.Demo) Demo {
	return Demo{
		ID:             demo.ID,
		CreatedBy:      demo.CreatedBy,
		CreatedAt:      demo.CreatedAt.Format(time.RFC3339Nano),
		Title:          demo.Title,
		Description:    string(demo.Description),
		Tags:           demo.Tags,
		Status:         string(demo.Status),
		PublishLayer:   string(demo.PublishLayer),
		CommunityID:    demo.CommunityID.String,
		CategoryID:     demo.CategoryID.String,
		BountyID:       demo.BountyID.String,
		RejectedReason: demo.RejectedReason,
	}
}

func ConvertCommunity(community *entity.Community) Community {
	return Community{
		ID:           community.ID,
		CreatedBy:    community.CreatedBy,
		Handle:       community.Handle,
		DisplayName:  community.DisplayName,
		Introduction: string(community.Introduction),
	}
}
