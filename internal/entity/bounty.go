package entity

import (
	"database/sql"

	"github.com/demohub-lab/backend/pkg/enum"
)

type BountyStatus string

var (
	// BountyOpen accepts new solutions, the escrow is held.
	BountyOpen = enum.New(BountyStatus("open"))
	// BountyInReview has an accepted solution awaiting publication approval.
	BountyInReview = enum.New(BountyStatus("in_review"))
	// BountyClosed is settled and terminal.
	BountyClosed = enum.New(BountyStatus("closed"))
)

type Bounty struct {
	Base
	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`

	Title       string
	Description []byte `gorm:"type:longtext"`

	// RewardPoints were already deducted from the creator's balance when the
	// bounty was created. They are paid to the winner on settlement or
	// refunded when the bounty is deleted before closing.
	RewardPoints int64

	Status BountyStatus

	// Where the winning demo is published to.
	PublishLayer       PublishLayer
	PublishCommunityID sql.NullString
	PublishCommunity   Community `gorm:"foreignKey:PublishCommunityID"`
	PublishCategoryID  sql.NullString

	ProgramTitle       string
	ProgramDescription []byte `gorm:"type:longtext"`
	ProgramTags        Array[string]
}
