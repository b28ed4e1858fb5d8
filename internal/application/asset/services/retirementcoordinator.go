package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/domain/attachment"
	"github.com/assetdesk/assetdesk/internal/infrastructure/metrics"
	"github.com/assetdesk/assetdesk/internal/shared/biztime"
	"github.com/assetdesk/assetdesk/internal/shared/db"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

const (
	retireModeForce    = "force"
	retireModeApproval = "approval"
	retireModeCascade  = "cascade"
)

// RetirementRequest is returned when a retirement was handed to the
// approval workflow.
type RetirementRequest struct {
	ApprovalID string
	AssetID    uint
	FlowID     uint
	FlowName   string
}

// RetirementCoordinator retires assets either immediately or through an
// approval flow. Every retirement and its cascade commit as one transaction.
type RetirementCoordinator struct {
	tx          TransactionRunner
	assets      asset.Repository
	attachments attachment.Repository
	ledger      *AttachmentLedger
	gateway     ApprovalGateway
	publisher   EventPublisher
	now         Clock
	logger      logger.Interface
}

func NewRetirementCoordinator(
	tx TransactionRunner,
	assets asset.Repository,
	attachments attachment.Repository,
	ledger *AttachmentLedger,
	gateway ApprovalGateway,
	publisher EventPublisher,
	logger logger.Interface,
) *RetirementCoordinator {
	return &RetirementCoordinator{
		tx:          tx,
		assets:      assets,
		attachments: attachments,
		ledger:      ledger,
		gateway:     gateway,
		publisher:   publisher,
		now:         biztime.NowUTC,
		logger:      logger,
	}
}

// ForceRetire retires assetID without approval.
func (c *RetirementCoordinator) ForceRetire(ctx context.Context, assetID, actorID uint, comment string) (*asset.Asset, error) {
	var retired *asset.Asset
	err := c.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		a, err := c.assets.GetByIDForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if err := a.EnsureMutable(); err != nil {
			return err
		}

		now := c.now()
		events, err := c.teardown(ctx, a, actorID, comment, now)
		if err != nil {
			return err
		}
		if err := a.ForceRetire(now); err != nil {
			return err
		}
		if err := c.assets.Update(ctx, a); err != nil {
			return err
		}

		retired = a
		events = append(events, retireEvent(asset.EventRetired, a, "", actorID, now))
		c.afterCommit(ctx, retireModeForce, a, events)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return retired, nil
}

// RequestFlowRetire opens an approval for retiring assetID and parks the
// asset in pending_retirement. Without a configured flow nothing changes.
func (c *RetirementCoordinator) RequestFlowRetire(ctx context.Context, assetID, actorID uint, comment string) (*RetirementRequest, error) {
	a, err := c.assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err := a.EnsureMutable(); err != nil {
		return nil, err
	}

	flow, err := c.gateway.GetConfiguredFlow(ctx, a.Class())
	if err != nil {
		return nil, err
	}

	var req *RetirementRequest
	err = c.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		a, err := c.assets.GetByIDForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if err := a.EnsureMutable(); err != nil {
			return err
		}

		payload := approval.Payload{
			AssetID:     a.ID(),
			AssetClass:  a.Class().String(),
			AssetNumber: a.AssetNumber(),
		}
		approvalID, err := c.gateway.CreateApprovalInstance(ctx, flow, retirementFormName(a), actorID, comment, payload)
		if err != nil {
			return err
		}
		if err := a.RequestRetire(approvalID); err != nil {
			return err
		}
		if err := c.assets.Update(ctx, a); err != nil {
			return err
		}

		req = &RetirementRequest{
			ApprovalID: approvalID,
			AssetID:    a.ID(),
			FlowID:     flow.ID(),
			FlowName:   flow.Name(),
		}
		event := retireEvent(asset.EventRetireRequested, a, approvalID, actorID, c.now())
		class := a.Class().String()
		db.AfterCommit(ctx, func() {
			metrics.RetireRequestCounter.WithLabelValues(class).Inc()
			c.logger.Infow("retirement requested",
				"asset_id", assetID,
				"approval_id", approvalID,
				"flow_id", flow.ID(),
			)
			c.publisher.Publish(ctx, event)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// OnApprovalResolved applies the outcome of approvalID to the asset waiting
// on it. An approval no asset is waiting on is ignored; that happens when
// the asset was retired by its device in the meantime.
func (c *RetirementCoordinator) OnApprovalResolved(ctx context.Context, approvalID string, outcome approval.Outcome, actorID uint, comment string) error {
	if !outcome.IsValid() {
		return approval.ErrInvalidOutcome
	}
	return c.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		a, err := c.assets.GetByPendingApprovalForUpdate(ctx, approvalID)
		if errors.Is(err, asset.ErrAssetNotFound) {
			c.logger.Warnw("no asset waiting on approval", "approval_id", approvalID, "outcome", outcome)
			return nil
		}
		if err != nil {
			return err
		}

		now := c.now()
		if outcome == approval.OutcomeRejected {
			if err := a.RejectRetire(approvalID); err != nil {
				return err
			}
			if err := c.assets.Update(ctx, a); err != nil {
				return err
			}
			event := retireEvent(asset.EventRetireRejected, a, approvalID, actorID, now)
			db.AfterCommit(ctx, func() {
				c.logger.Infow("retirement rejected", "asset_id", a.ID(), "approval_id", approvalID)
				c.publisher.Publish(ctx, event)
			})
			return nil
		}

		events, err := c.teardown(ctx, a, actorID, comment, now)
		if err != nil {
			return err
		}
		if err := a.ApproveRetire(approvalID, now); err != nil {
			return err
		}
		if err := c.assets.Update(ctx, a); err != nil {
			return err
		}
		events = append(events, retireEvent(asset.EventRetired, a, approvalID, actorID, now))
		c.afterCommit(ctx, retireModeApproval, a, events)
		return nil
	})
}

// teardown voids every active relation of a and, for devices, retires the
// attached parts. The caller holds the lock on a.
func (c *RetirementCoordinator) teardown(ctx context.Context, a *asset.Asset, actorID uint, reason string, at time.Time) ([]asset.Event, error) {
	var events []asset.Event

	switch a.Class() {
	case asset.ClassDevice:
		for _, kind := range []attachment.TargetKind{attachment.TargetUser, attachment.TargetPart, attachment.TargetSoftware} {
			active, err := c.attachments.ListActiveByDevice(ctx, a.ID(), kind)
			if err != nil {
				return nil, err
			}
			if _, err := c.ledger.voidAll(ctx, active, actorID, reason, at); err != nil {
				return nil, err
			}
			if kind != attachment.TargetPart {
				continue
			}
			for _, rel := range active {
				part, err := c.retirePart(ctx, rel.TargetID(), at)
				if err != nil {
					return nil, err
				}
				if part != nil {
					events = append(events, retireEvent(asset.EventRetired, part, "", actorID, at))
				}
			}
		}

	case asset.ClassPart:
		if err := c.voidByTarget(ctx, attachment.TargetPart, a.ID(), actorID, reason, at); err != nil {
			return nil, err
		}

	case asset.ClassSoftware:
		if err := c.voidByTarget(ctx, attachment.TargetSoftware, a.ID(), actorID, reason, at); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (c *RetirementCoordinator) voidByTarget(ctx context.Context, kind attachment.TargetKind, targetID, actorID uint, reason string, at time.Time) error {
	active, err := c.attachments.ListActiveByTarget(ctx, kind, targetID)
	if err != nil {
		return err
	}
	_, err = c.ledger.voidAll(ctx, active, actorID, reason, at)
	return err
}

// retirePart returns nil when the part was already retired.
func (c *RetirementCoordinator) retirePart(ctx context.Context, partID uint, at time.Time) (*asset.Asset, error) {
	part, err := c.assets.GetByIDForUpdate(ctx, partID)
	if errors.Is(err, asset.ErrAssetNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if part.IsRetired() {
		return nil, nil
	}
	if err := part.RetireAsPart(at); err != nil {
		return nil, err
	}
	if err := c.assets.Update(ctx, part); err != nil {
		return nil, err
	}
	db.AfterCommit(ctx, func() {
		metrics.RetirementCounter.WithLabelValues(asset.ClassPart.String(), retireModeCascade).Inc()
	})
	return part, nil
}

func (c *RetirementCoordinator) afterCommit(ctx context.Context, mode string, a *asset.Asset, events []asset.Event) {
	db.AfterCommit(ctx, func() {
		metrics.RetirementCounter.WithLabelValues(a.Class().String(), mode).Inc()
		c.logger.Infow("asset retired",
			"asset_id", a.ID(),
			"asset_number", a.AssetNumber(),
			"class", a.Class(),
			"mode", mode,
		)
		c.publisher.Publish(ctx, events...)
	})
}

func retirementFormName(a *asset.Asset) string {
	class := a.Class().String()
	return fmt.Sprintf("%s%s retirement - %s", strings.ToUpper(class[:1]), class[1:], a.AssetNumber())
}

func retireEvent(t asset.EventType, a *asset.Asset, approvalID string, actorID uint, at time.Time) asset.Event {
	return asset.Event{
		Type:        t,
		AssetID:     a.ID(),
		AssetClass:  a.Class(),
		AssetNumber: a.AssetNumber(),
		ApprovalID:  approvalID,
		ActorID:     actorID,
		OccurredAt:  at,
	}
}
