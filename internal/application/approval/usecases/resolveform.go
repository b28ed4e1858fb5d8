package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/approval/dto"
	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/infrastructure/metrics"
	"github.com/assetdesk/assetdesk/internal/shared/biztime"
	"github.com/assetdesk/assetdesk/internal/shared/db"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

type ResolveFormCommand struct {
	FormUUID string
	Outcome  string
	ActorID  uint
	Comment  string
}

// ResolveFormUseCase is the workflow engine callback. The form and whatever
// the handler changes commit together.
type ResolveFormUseCase struct {
	tx      TransactionRunner
	forms   approval.FormRepository
	handler ResolutionHandler
	logger  logger.Interface
}

func NewResolveFormUseCase(tx TransactionRunner, forms approval.FormRepository, handler ResolutionHandler, logger logger.Interface) *ResolveFormUseCase {
	return &ResolveFormUseCase{tx: tx, forms: forms, handler: handler, logger: logger}
}

func (uc *ResolveFormUseCase) Execute(ctx context.Context, cmd ResolveFormCommand) (*dto.FormDTO, error) {
	outcome := approval.Outcome(cmd.Outcome)
	if !outcome.IsValid() {
		return nil, approval.ErrInvalidOutcome
	}
	comment := utils.SanitizeComment(cmd.Comment)

	var resolved *approval.Form
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		form, err := uc.forms.GetByUUIDForUpdate(ctx, cmd.FormUUID)
		if err != nil {
			return err
		}
		if err := form.Resolve(outcome, cmd.ActorID, comment, biztime.NowUTC()); err != nil {
			return err
		}
		if err := uc.forms.Update(ctx, form); err != nil {
			return err
		}
		if err := uc.handler.OnApprovalResolved(ctx, form.UUID(), outcome, cmd.ActorID, comment); err != nil {
			return err
		}
		resolved = form
		db.AfterCommit(ctx, func() {
			metrics.ApprovalCounter.WithLabelValues(string(outcome)).Inc()
		})
		return nil
	})
	if err != nil {
		uc.logger.Warnw("failed to resolve approval form", "form_uuid", cmd.FormUUID, "outcome", cmd.Outcome, "error", err)
		return nil, err
	}

	uc.logger.Infow("approval form resolved", "form_uuid", resolved.UUID(), "outcome", outcome, "actor_id", cmd.ActorID)
	return dto.ToFormDTO(resolved), nil
}
