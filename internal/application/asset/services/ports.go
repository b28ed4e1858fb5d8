package services

import (
	"context"
	"time"

	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
)

// TransactionRunner is satisfied by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher receives asset events after their transaction committed.
// Implementations log failures instead of returning them.
type EventPublisher interface {
	Publish(ctx context.Context, events ...asset.Event)
}

// ApprovalGateway is the boundary to the approval workflow.
type ApprovalGateway interface {
	// GetConfiguredFlow returns asset.ErrNoRetireFlowConfigured when the class
	// has no retire flow and asset.ErrRetireFlowMissing when the configured
	// flow no longer exists.
	GetConfiguredFlow(ctx context.Context, class asset.Class) (*approval.Flow, error)
	CreateApprovalInstance(ctx context.Context, flow *approval.Flow, name string, applicantID uint, comment string, payload approval.Payload) (string, error)
}

// Clock returns the current time; tests replace it.
type Clock func() time.Time

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...asset.Event) {}

// NopPublisher drops every event.
func NopPublisher() EventPublisher { return nopPublisher{} }
