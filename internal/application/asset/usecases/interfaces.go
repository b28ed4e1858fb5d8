package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/asset/dto"
)

type CreateAssetExecutor interface {
	Execute(ctx context.Context, cmd CreateAssetCommand) (*dto.AssetDTO, error)
}

type GetAssetExecutor interface {
	Execute(ctx context.Context, assetID uint) (*dto.AssetDTO, error)
}

type ListAssetsExecutor interface {
	Execute(ctx context.Context, query ListAssetsQuery) (*ListAssetsResult, error)
}

type AttachExecutor interface {
	Execute(ctx context.Context, cmd AttachCommand) (*dto.AttachmentDTO, error)
}

type AttachSoftwareExecutor interface {
	Execute(ctx context.Context, cmd AttachSoftwareCommand) ([]*dto.AttachmentDTO, error)
}

type DetachExecutor interface {
	Execute(ctx context.Context, cmd DetachCommand) (*dto.AttachmentDTO, error)
}

type BatchDetachExecutor interface {
	Execute(ctx context.Context, cmd BatchDetachCommand) ([]*dto.BatchItemResultDTO, error)
}

type ListAttachmentsExecutor interface {
	Execute(ctx context.Context, deviceID uint, includeDetached bool) ([]*dto.AttachmentDTO, error)
}

type AttachmentHistoryExecutor interface {
	Execute(ctx context.Context, attachmentID uint) ([]*dto.HistoryEntryDTO, error)
}

type LicenseUsageExecutor interface {
	Execute(ctx context.Context, softwareID uint) (*dto.LicenseUsageDTO, error)
}

type ForceRetireExecutor interface {
	Execute(ctx context.Context, cmd RetireCommand) (*dto.AssetDTO, error)
}

type RequestRetireExecutor interface {
	Execute(ctx context.Context, cmd RetireCommand) (*dto.RetirementRequestDTO, error)
}

type CreateNumberRuleExecutor interface {
	Execute(ctx context.Context, cmd CreateNumberRuleCommand) (*dto.NumberRuleDTO, error)
}

type ListNumberRulesExecutor interface {
	Execute(ctx context.Context) ([]*dto.NumberRuleDTO, error)
}

type BindNumberRuleExecutor interface {
	Execute(ctx context.Context, cmd BindNumberRuleCommand) (*dto.NumberRuleDTO, error)
}

type UnbindNumberRuleExecutor interface {
	Execute(ctx context.Context, class string) error
}

// TransactionRunner is satisfied by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
