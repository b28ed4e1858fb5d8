// Package services adapts the approval workflow to the retirement ports of
// the asset services.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/domain/setting"
	"github.com/assetdesk/assetdesk/internal/shared/constants"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// RetireFlowKey is the setting key holding the retire flow id of class.
func RetireFlowKey(class asset.Class) string {
	return fmt.Sprintf("%s_retire_flow_id", class)
}

// Gateway resolves retire flows from system settings and files approval
// forms against them.
type Gateway struct {
	settings setting.Repository
	flows    approval.FlowRepository
	forms    approval.FormRepository
	logger   logger.Interface
}

func NewGateway(settings setting.Repository, flows approval.FlowRepository, forms approval.FormRepository, logger logger.Interface) *Gateway {
	return &Gateway{settings: settings, flows: flows, forms: forms, logger: logger}
}

// ConfiguredFlowID returns 0 when class has no retire flow.
func (g *Gateway) ConfiguredFlowID(ctx context.Context, class asset.Class) (uint, error) {
	s, err := g.settings.GetByKey(ctx, constants.SettingCategoryAsset, RetireFlowKey(class))
	if errors.Is(err, setting.ErrSettingNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return s.GetUintValue()
}

func (g *Gateway) GetConfiguredFlow(ctx context.Context, class asset.Class) (*approval.Flow, error) {
	flowID, err := g.ConfiguredFlowID(ctx, class)
	if err != nil {
		return nil, err
	}
	if flowID == 0 {
		return nil, asset.ErrNoRetireFlowConfigured
	}

	flow, err := g.flows.GetByID(ctx, flowID)
	if errors.Is(err, approval.ErrFlowNotFound) {
		g.logger.Warnw("configured retire flow no longer exists", "class", class, "flow_id", flowID)
		return nil, asset.ErrRetireFlowMissing
	}
	if err != nil {
		return nil, err
	}
	return flow, nil
}

func (g *Gateway) CreateApprovalInstance(
	ctx context.Context,
	flow *approval.Flow,
	name string,
	applicantID uint,
	comment string,
	payload approval.Payload,
) (string, error) {
	form, err := approval.NewForm(flow, name, applicantID, comment, payload)
	if err != nil {
		return "", err
	}
	if err := g.forms.Create(ctx, form); err != nil {
		return "", err
	}
	g.logger.Infow("approval form created",
		"form_uuid", form.UUID(),
		"flow_id", flow.ID(),
		"asset_id", payload.AssetID,
	)
	return form.UUID(), nil
}
