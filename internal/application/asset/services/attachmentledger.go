package services

import (
	"context"
	"errors"
	"time"

	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/domain/attachment"
	"github.com/assetdesk/assetdesk/internal/infrastructure/metrics"
	"github.com/assetdesk/assetdesk/internal/shared/biztime"
	"github.com/assetdesk/assetdesk/internal/shared/db"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// AttachCommand asks for target to be attached to a device.
type AttachCommand struct {
	DeviceID    uint
	TargetKind  attachment.TargetKind
	TargetID    uint
	RequesterID uint
	Comment     string
}

// AttachmentLedger records device relations. Locks are always taken device
// first, then target, then attachment rows.
type AttachmentLedger struct {
	tx          TransactionRunner
	assets      asset.Repository
	attachments attachment.Repository
	history     attachment.HistoryRepository
	licenses    *LicenseCounter
	publisher   EventPublisher
	now         Clock
	logger      logger.Interface
}

func NewAttachmentLedger(
	tx TransactionRunner,
	assets asset.Repository,
	attachments attachment.Repository,
	history attachment.HistoryRepository,
	licenses *LicenseCounter,
	publisher EventPublisher,
	logger logger.Interface,
) *AttachmentLedger {
	return &AttachmentLedger{
		tx:          tx,
		assets:      assets,
		attachments: attachments,
		history:     history,
		licenses:    licenses,
		publisher:   publisher,
		now:         biztime.NowUTC,
		logger:      logger,
	}
}

// Attach creates an active relation. The device row and then the target row
// are locked before any active relation is read; the guard reads themselves
// are locking reads, so the seat check sees every committed attachment.
func (l *AttachmentLedger) Attach(ctx context.Context, cmd AttachCommand) (*attachment.Attachment, error) {
	if !cmd.TargetKind.IsValid() {
		return nil, attachment.ErrInvalidTargetKind
	}
	if cmd.TargetID == 0 {
		return nil, attachment.ErrInvalidTarget
	}

	var created *attachment.Attachment
	err := l.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		device, err := l.lockDevice(ctx, cmd.DeviceID)
		if err != nil {
			return err
		}
		target, err := l.lockTargetOf(ctx, cmd.TargetKind, cmd.TargetID)
		if err != nil {
			return err
		}

		exists, err := l.attachments.ExistsActive(ctx, device.ID(), cmd.TargetKind, cmd.TargetID)
		if err != nil {
			return err
		}
		if exists {
			return attachment.ErrDuplicateAttachment
		}

		if err := l.checkTarget(ctx, device, cmd.TargetKind, target); err != nil {
			return err
		}

		a, err := attachment.NewAttachment(device.ID(), cmd.TargetKind, cmd.TargetID, cmd.RequesterID, cmd.Comment)
		if err != nil {
			return err
		}
		if err := l.attachments.Create(ctx, a); err != nil {
			return err
		}
		now := l.now()
		if err := l.history.Append(ctx, attachment.NewHistoryEntry(a, attachment.ActionAttached, cmd.RequesterID, cmd.Comment, now)); err != nil {
			return err
		}

		created = a
		event := attachmentEvent(asset.EventAttached, device, a, cmd.RequesterID, now)
		db.AfterCommit(ctx, func() {
			metrics.AttachmentCounter.WithLabelValues(string(cmd.TargetKind), string(attachment.ActionAttached)).Inc()
			l.logger.Infow("target attached",
				"attachment_id", a.ID(),
				"device_id", cmd.DeviceID,
				"target_kind", cmd.TargetKind,
				"target_id", cmd.TargetID,
				"requester_id", cmd.RequesterID,
			)
			l.publisher.Publish(ctx, event)
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, attachment.ErrLicenseExhausted) {
			metrics.LicenseRejectionCounter.Inc()
		}
		return nil, err
	}
	return created, nil
}

// Detach ends an active relation. Detaching twice returns
// attachment.ErrAttachmentAlreadyDetached and changes nothing.
func (l *AttachmentLedger) Detach(ctx context.Context, attachmentID, requesterID uint, comment string) (*attachment.Attachment, error) {
	var detached *attachment.Attachment
	err := l.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		peek, err := l.attachments.GetByID(ctx, attachmentID)
		if err != nil {
			return err
		}
		if !peek.IsActive() {
			return attachment.ErrAttachmentAlreadyDetached
		}
		device, err := l.lockDevice(ctx, peek.DeviceID())
		if err != nil {
			return err
		}

		a, err := l.attachments.GetByIDForUpdate(ctx, attachmentID)
		if err != nil {
			return err
		}
		now := l.now()
		if err := l.detach(ctx, a, attachment.ActionDetached, requesterID, comment, now); err != nil {
			return err
		}

		detached = a
		event := attachmentEvent(asset.EventDetached, device, a, requesterID, now)
		db.AfterCommit(ctx, func() {
			metrics.AttachmentCounter.WithLabelValues(string(a.TargetKind()), string(attachment.ActionDetached)).Inc()
			l.logger.Infow("target detached",
				"attachment_id", attachmentID,
				"device_id", a.DeviceID(),
				"requester_id", requesterID,
			)
			l.publisher.Publish(ctx, event)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detached, nil
}

func (l *AttachmentLedger) ListByDevice(ctx context.Context, deviceID uint, includeDetached bool) ([]*attachment.Attachment, error) {
	if _, err := l.assets.GetByID(ctx, deviceID); err != nil {
		return nil, err
	}
	return l.attachments.ListByDevice(ctx, deviceID, includeDetached)
}

func (l *AttachmentLedger) History(ctx context.Context, attachmentID uint) ([]*attachment.HistoryEntry, error) {
	if _, err := l.attachments.GetByID(ctx, attachmentID); err != nil {
		return nil, err
	}
	return l.history.ListByAttachment(ctx, attachmentID)
}

// voidAll detaches every attachment in list inside the caller's transaction.
// Rows are re-read under lock so a concurrent detach is not recorded twice.
func (l *AttachmentLedger) voidAll(ctx context.Context, list []*attachment.Attachment, actorID uint, reason string, at time.Time) (int, error) {
	voided := 0
	for _, stale := range list {
		a, err := l.attachments.GetByIDForUpdate(ctx, stale.ID())
		if err != nil {
			return voided, err
		}
		if !a.IsActive() {
			continue
		}
		if err := l.detach(ctx, a, attachment.ActionVoided, actorID, reason, at); err != nil {
			return voided, err
		}
		kind := string(a.TargetKind())
		db.AfterCommit(ctx, func() {
			metrics.AttachmentCounter.WithLabelValues(kind, string(attachment.ActionVoided)).Inc()
		})
		voided++
	}
	return voided, nil
}

func (l *AttachmentLedger) detach(ctx context.Context, a *attachment.Attachment, action attachment.Action, actorID uint, comment string, at time.Time) error {
	if err := a.Detach(actorID, comment, at); err != nil {
		return err
	}
	if err := l.attachments.Update(ctx, a); err != nil {
		return err
	}
	return l.history.Append(ctx, attachment.NewHistoryEntry(a, action, actorID, comment, at))
}

func (l *AttachmentLedger) lockDevice(ctx context.Context, deviceID uint) (*asset.Asset, error) {
	device, err := l.assets.GetByIDForUpdate(ctx, deviceID)
	if errors.Is(err, asset.ErrAssetNotFound) {
		return nil, asset.ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}
	if device.Class() != asset.ClassDevice {
		return nil, attachment.ErrNotADevice
	}
	if err := device.EnsureMutable(); err != nil {
		return nil, err
	}
	return device, nil
}

// lockTargetOf locks the part or software row being attached. Users are
// external identities and have no row; nil is returned for them.
func (l *AttachmentLedger) lockTargetOf(ctx context.Context, kind attachment.TargetKind, targetID uint) (*asset.Asset, error) {
	switch kind {
	case attachment.TargetPart:
		return l.lockTarget(ctx, targetID, asset.ClassPart, asset.ErrPartNotFound)
	case attachment.TargetSoftware:
		return l.lockTarget(ctx, targetID, asset.ClassSoftware, asset.ErrSoftwareNotFound)
	}
	return nil, nil
}

// checkTarget enforces the per-kind limits. It runs after the device and
// target rows are locked, so the counts cannot change underneath it.
func (l *AttachmentLedger) checkTarget(ctx context.Context, device *asset.Asset, kind attachment.TargetKind, target *asset.Asset) error {
	switch kind {
	case attachment.TargetPart:
		inUse, err := l.attachments.CountActiveByTarget(ctx, attachment.TargetPart, target.ID())
		if err != nil {
			return err
		}
		if inUse > 0 {
			return attachment.ErrPartInUse
		}

	case attachment.TargetSoftware:
		ok, err := l.licenses.hasCapacityFor(ctx, target)
		if err != nil {
			return err
		}
		if !ok {
			return attachment.ErrLicenseExhausted
		}

	case attachment.TargetUser:
		assigned, err := l.attachments.ListActiveByDevice(ctx, device.ID(), attachment.TargetUser)
		if err != nil {
			return err
		}
		if len(assigned) > 0 {
			return attachment.ErrDeviceAlreadyAssigned
		}
	}
	return nil
}

func (l *AttachmentLedger) lockTarget(ctx context.Context, id uint, class asset.Class, notFound error) (*asset.Asset, error) {
	target, err := l.assets.GetByIDForUpdate(ctx, id)
	if errors.Is(err, asset.ErrAssetNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	if target.Class() != class {
		return nil, notFound
	}
	if err := target.EnsureMutable(); err != nil {
		return nil, err
	}
	return target, nil
}

func attachmentEvent(t asset.EventType, device *asset.Asset, a *attachment.Attachment, actorID uint, at time.Time) asset.Event {
	return asset.Event{
		Type:         t,
		AssetID:      device.ID(),
		AssetClass:   device.Class(),
		AssetNumber:  device.AssetNumber(),
		AttachmentID: a.ID(),
		TargetKind:   string(a.TargetKind()),
		TargetID:     a.TargetID(),
		ActorID:      actorID,
		OccurredAt:   at,
	}
}
