package http

import (
	approvalUsecases "github.com/assetdesk/assetdesk/internal/application/approval/usecases"
	assetUsecases "github.com/assetdesk/assetdesk/internal/application/asset/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Assets
	createAssetUC *assetUsecases.CreateAssetUseCase
	getAssetUC    *assetUsecases.GetAssetUseCase
	listAssetsUC  *assetUsecases.ListAssetsUseCase

	// Attachments
	attachUC            *assetUsecases.AttachUseCase
	attachSoftwareUC    *assetUsecases.AttachSoftwareUseCase
	detachUC            *assetUsecases.DetachUseCase
	batchDetachUC       *assetUsecases.BatchDetachUseCase
	listAttachmentsUC   *assetUsecases.ListAttachmentsUseCase
	attachmentHistoryUC *assetUsecases.AttachmentHistoryUseCase
	licenseUsageUC      *assetUsecases.LicenseUsageUseCase

	// Retirement
	forceRetireUC   *assetUsecases.ForceRetireUseCase
	requestRetireUC *assetUsecases.RequestRetireUseCase

	// Number rules
	createNumberRuleUC *assetUsecases.CreateNumberRuleUseCase
	listNumberRulesUC  *assetUsecases.ListNumberRulesUseCase
	bindNumberRuleUC   *assetUsecases.BindNumberRuleUseCase
	unbindNumberRuleUC *assetUsecases.UnbindNumberRuleUseCase

	// Approval
	createFlowUC    *approvalUsecases.CreateFlowUseCase
	listFlowsUC     *approvalUsecases.ListFlowsUseCase
	deleteFlowUC    *approvalUsecases.DeleteFlowUseCase
	setRetireFlowUC *approvalUsecases.SetRetireFlowUseCase
	getRetireFlowUC *approvalUsecases.GetRetireFlowUseCase
	getFormUC       *approvalUsecases.GetFormUseCase
	resolveFormUC   *approvalUsecases.ResolveFormUseCase
}

// ============================================================
// Section 3: Use cases
// ============================================================

func (c *Container) initUseCases() {
	r := c.repos
	s := c.svcs
	log := c.log

	c.ucs = &allUseCases{
		createAssetUC: assetUsecases.NewCreateAssetUseCase(c.tm, r.assetRepo, s.allocator, log),
		getAssetUC:    assetUsecases.NewGetAssetUseCase(r.assetRepo),
		listAssetsUC:  assetUsecases.NewListAssetsUseCase(r.assetRepo),

		attachUC:            assetUsecases.NewAttachUseCase(s.ledger),
		attachSoftwareUC:    assetUsecases.NewAttachSoftwareUseCase(c.tm, s.ledger, log),
		detachUC:            assetUsecases.NewDetachUseCase(s.ledger),
		batchDetachUC:       assetUsecases.NewBatchDetachUseCase(s.ledger, log),
		listAttachmentsUC:   assetUsecases.NewListAttachmentsUseCase(s.ledger),
		attachmentHistoryUC: assetUsecases.NewAttachmentHistoryUseCase(s.ledger),
		licenseUsageUC:      assetUsecases.NewLicenseUsageUseCase(s.licenses),

		forceRetireUC:   assetUsecases.NewForceRetireUseCase(s.coordinator),
		requestRetireUC: assetUsecases.NewRequestRetireUseCase(s.coordinator),

		createNumberRuleUC: assetUsecases.NewCreateNumberRuleUseCase(r.numberRuleRepo, s.allocator, log),
		listNumberRulesUC:  assetUsecases.NewListNumberRulesUseCase(r.numberRuleRepo, s.allocator),
		bindNumberRuleUC:   assetUsecases.NewBindNumberRuleUseCase(s.allocator),
		unbindNumberRuleUC: assetUsecases.NewUnbindNumberRuleUseCase(s.allocator),

		createFlowUC:    approvalUsecases.NewCreateFlowUseCase(r.flowRepo, log),
		listFlowsUC:     approvalUsecases.NewListFlowsUseCase(r.flowRepo),
		deleteFlowUC:    approvalUsecases.NewDeleteFlowUseCase(r.flowRepo, log),
		setRetireFlowUC: approvalUsecases.NewSetRetireFlowUseCase(r.settingRepo, r.flowRepo, log),
		getRetireFlowUC: approvalUsecases.NewGetRetireFlowUseCase(s.gateway, r.flowRepo),
		getFormUC:       approvalUsecases.NewGetFormUseCase(r.formRepo),
		resolveFormUC:   approvalUsecases.NewResolveFormUseCase(c.tm, r.formRepo, s.coordinator, log),
	}
}
