package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/approval/dto"
	"github.com/assetdesk/assetdesk/internal/domain/approval"
)

type CreateFlowExecutor interface {
	Execute(ctx context.Context, cmd CreateFlowCommand) (*dto.FlowDTO, error)
}

type ListFlowsExecutor interface {
	Execute(ctx context.Context) ([]*dto.FlowDTO, error)
}

type DeleteFlowExecutor interface {
	Execute(ctx context.Context, flowID uint) error
}

type SetRetireFlowExecutor interface {
	Execute(ctx context.Context, cmd SetRetireFlowCommand) (*dto.RetireFlowDTO, error)
}

type GetRetireFlowExecutor interface {
	Execute(ctx context.Context, class string) (*dto.RetireFlowDTO, error)
}

type GetFormExecutor interface {
	Execute(ctx context.Context, formUUID string) (*dto.FormDTO, error)
}

type ResolveFormExecutor interface {
	Execute(ctx context.Context, cmd ResolveFormCommand) (*dto.FormDTO, error)
}

// TransactionRunner is satisfied by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ResolutionHandler is told about every resolved form inside the resolving
// transaction, so a failing handler rolls the resolution back.
type ResolutionHandler interface {
	OnApprovalResolved(ctx context.Context, formUUID string, outcome approval.Outcome, actorID uint, comment string) error
}
