package entity

import (
	"database/sql"

	"github.com/demohub-lab/backend/pkg/enum"
)

type DemoStatus string

var (
	DemoDraft    = enum.New(DemoStatus("draft"))
	DemoPending  = enum.New(DemoStatus("pending"))
	DemoApproved = enum.New(DemoStatus("approved"))
	DemoRejected = enum.New(DemoStatus("rejected"))
)

type PublishLayer string

var (
	LayerGeneral   = enum.New(PublishLayer("general"))
	LayerCommunity = enum.New(PublishLayer("community"))
)

// Demo is the metadata of a browser-runnable program. The program content
// itself lives in the external storage subsystem and is never touched here.
type Demo struct {
	Base
	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`

	Title       string
	Description []byte `gorm:"type:longtext"`
	Tags        Array[string]

	Status       DemoStatus
	PublishLayer PublishLayer
	CommunityID  sql.NullString
	Community    Community `gorm:"foreignKey:CommunityID"`
	CategoryID   sql.NullString

	// BountyID is the provenance of a demo submitted through the bounty
	// workflow. The publication decision of such a demo also resolves the
	// bounty.
	BountyID sql.NullString

	RejectedReason string
}
