package asset

import "time"

type EventType string

const (
	EventAttached        EventType = "attached"
	EventDetached        EventType = "detached"
	EventRetireRequested EventType = "retire_requested"
	EventRetireRejected  EventType = "retire_rejected"
	EventRetired         EventType = "retired"
)

// Event describes a committed change to an asset or one of its attachments.
type Event struct {
	Type         EventType `json:"type"`
	AssetID      uint      `json:"asset_id"`
	AssetClass   Class     `json:"asset_class,omitempty"`
	AssetNumber  string    `json:"asset_number,omitempty"`
	AttachmentID uint      `json:"attachment_id,omitempty"`
	TargetKind   string    `json:"target_kind,omitempty"`
	TargetID     uint      `json:"target_id,omitempty"`
	ApprovalID   string    `json:"approval_id,omitempty"`
	ActorID      uint      `json:"actor_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
