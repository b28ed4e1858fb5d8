package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/asset/dto"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

type ListAssetsQuery struct {
	Class    string
	State    string
	Page     int
	PageSize int
}

type ListAssetsResult struct {
	Items    []*dto.AssetDTO
	Total    int64
	Page     int
	PageSize int
}

type ListAssetsUseCase struct {
	assets asset.Repository
}

func NewListAssetsUseCase(assets asset.Repository) *ListAssetsUseCase {
	return &ListAssetsUseCase{assets: assets}
}

func (uc *ListAssetsUseCase) Execute(ctx context.Context, query ListAssetsQuery) (*ListAssetsResult, error) {
	filter := asset.ListFilter{
		Class: asset.Class(query.Class),
		State: asset.State(query.State),
	}
	if filter.Class != "" && !filter.Class.IsValid() {
		return nil, asset.ErrInvalidClass
	}
	p := utils.ValidatePagination(query.Page, query.PageSize)
	filter.Page, filter.PageSize = p.Page, p.PageSize

	list, total, err := uc.assets.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListAssetsResult{
		Items:    dto.ToAssetDTOs(list),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
