package attachment

import "time"

type Action string

const (
	ActionAttached Action = "attached"
	ActionDetached Action = "detached"
	// ActionVoided marks a detach performed by a retirement cascade.
	ActionVoided Action = "voided"
)

// HistoryEntry is an append-only record of one attach or detach.
type HistoryEntry struct {
	ID           uint
	AttachmentID uint
	DeviceID     uint
	TargetKind   TargetKind
	TargetID     uint
	Action       Action
	ActorID      uint
	Comment      string
	CreatedAt    time.Time
}

func NewHistoryEntry(a *Attachment, action Action, actorID uint, comment string, at time.Time) *HistoryEntry {
	return &HistoryEntry{
		AttachmentID: a.ID(),
		DeviceID:     a.DeviceID(),
		TargetKind:   a.TargetKind(),
		TargetID:     a.TargetID(),
		Action:       action,
		ActorID:      actorID,
		Comment:      comment,
		CreatedAt:    at.UTC(),
	}
}
