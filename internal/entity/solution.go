package entity

import (
	"time"

	"github.com/demohub-lab/backend/pkg/enum"
)

type SolutionStatus string

var (
	SolutionPending  = enum.New(SolutionStatus("pending"))
	SolutionAccepted = enum.New(SolutionStatus("accepted"))
	SolutionRejected = enum.New(SolutionStatus("rejected"))
)

// Solution is a candidate demo a user offers against an open bounty. At most
// one solution of a bounty ever becomes accepted.
type Solution struct {
	Base

	BountyID string
	Bounty   Bounty `gorm:"foreignKey:BountyID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	DemoID string
	Demo   Demo `gorm:"foreignKey:DemoID"`

	Status          SolutionStatus
	RejectionReason string
	ReviewedAt      time.Time
}
