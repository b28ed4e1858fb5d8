package attachment

import "context"

type Repository interface {
	// Create returns ErrDuplicateAttachment when the active pair already exists.
	Create(ctx context.Context, a *Attachment) error
	GetByID(ctx context.Context, id uint) (*Attachment, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*Attachment, error)
	Update(ctx context.Context, a *Attachment) error

	// The active-relation reads below are locking reads when ctx carries a
	// transaction.
	ExistsActive(ctx context.Context, deviceID uint, kind TargetKind, targetID uint) (bool, error)
	ListActiveByDevice(ctx context.Context, deviceID uint, kinds ...TargetKind) ([]*Attachment, error)
	ListActiveByTarget(ctx context.Context, kind TargetKind, targetID uint) ([]*Attachment, error)
	ListByDevice(ctx context.Context, deviceID uint, includeDetached bool) ([]*Attachment, error)
	CountActiveByTarget(ctx context.Context, kind TargetKind, targetID uint) (int64, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	ListByAttachment(ctx context.Context, attachmentID uint) ([]*HistoryEntry, error)
}
