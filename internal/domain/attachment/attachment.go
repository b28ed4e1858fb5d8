package attachment

import (
	"fmt"
	"time"

	"github.com/assetdesk/assetdesk/internal/shared/biztime"
)

type TargetKind string

const (
	TargetPart     TargetKind = "part"
	TargetSoftware TargetKind = "software"
	TargetUser     TargetKind = "user"
)

func (k TargetKind) IsValid() bool {
	switch k {
	case TargetPart, TargetSoftware, TargetUser:
		return true
	}
	return false
}

type Status string

const (
	StatusAttached Status = "attached"
	StatusDetached Status = "detached"
)

// Attachment links a device to a part, a software license or a user. Rows are
// never deleted; detaching flips the status and clears activeKey, which backs
// the unique index over currently attached pairs.
type Attachment struct {
	id            uint
	deviceID      uint
	targetKind    TargetKind
	targetID      uint
	status        Status
	activeKey     *string
	creatorID     uint
	comment       string
	detachedBy    *uint
	detachComment string
	detachedAt    *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewAttachment(deviceID uint, kind TargetKind, targetID, creatorID uint, comment string) (*Attachment, error) {
	if deviceID == 0 {
		return nil, ErrInvalidDevice
	}
	if !kind.IsValid() {
		return nil, ErrInvalidTargetKind
	}
	if targetID == 0 {
		return nil, ErrInvalidTarget
	}
	key := ActiveKey(deviceID, kind, targetID)
	now := biztime.NowUTC()
	return &Attachment{
		deviceID:   deviceID,
		targetKind: kind,
		targetID:   targetID,
		status:     StatusAttached,
		activeKey:  &key,
		creatorID:  creatorID,
		comment:    comment,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructAttachment(
	id, deviceID uint,
	kind TargetKind,
	targetID uint,
	status Status,
	activeKey *string,
	creatorID uint,
	comment string,
	detachedBy *uint,
	detachComment string,
	detachedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Attachment {
	return &Attachment{
		id:            id,
		deviceID:      deviceID,
		targetKind:    kind,
		targetID:      targetID,
		status:        status,
		activeKey:     activeKey,
		creatorID:     creatorID,
		comment:       comment,
		detachedBy:    detachedBy,
		detachComment: detachComment,
		detachedAt:    detachedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ActiveKey identifies a currently attached (device, target) pair.
func ActiveKey(deviceID uint, kind TargetKind, targetID uint) string {
	return fmt.Sprintf("%d:%s:%d", deviceID, kind, targetID)
}

func (a *Attachment) ID() uint               { return a.id }
func (a *Attachment) DeviceID() uint         { return a.deviceID }
func (a *Attachment) TargetKind() TargetKind { return a.targetKind }
func (a *Attachment) TargetID() uint         { return a.targetID }
func (a *Attachment) Status() Status         { return a.status }
func (a *Attachment) ActiveKey() *string     { return a.activeKey }
func (a *Attachment) CreatorID() uint        { return a.creatorID }
func (a *Attachment) Comment() string        { return a.comment }
func (a *Attachment) DetachedBy() *uint      { return a.detachedBy }
func (a *Attachment) DetachComment() string  { return a.detachComment }
func (a *Attachment) DetachedAt() *time.Time { return a.detachedAt }
func (a *Attachment) CreatedAt() time.Time   { return a.createdAt }
func (a *Attachment) UpdatedAt() time.Time   { return a.updatedAt }

func (a *Attachment) SetID(id uint) {
	a.id = id
}

func (a *Attachment) IsActive() bool { return a.status == StatusAttached }

// Detach ends the relation. A second detach is rejected.
func (a *Attachment) Detach(actorID uint, comment string, at time.Time) error {
	if !a.IsActive() {
		return ErrAttachmentAlreadyDetached
	}
	at = at.UTC()
	a.status = StatusDetached
	a.activeKey = nil
	a.detachedBy = &actorID
	a.detachComment = comment
	a.detachedAt = &at
	a.updatedAt = at
	return nil
}
