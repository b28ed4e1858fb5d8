package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/asset/dto"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
)

type GetAssetUseCase struct {
	assets asset.Repository
}

func NewGetAssetUseCase(assets asset.Repository) *GetAssetUseCase {
	return &GetAssetUseCase{assets: assets}
}

func (uc *GetAssetUseCase) Execute(ctx context.Context, assetID uint) (*dto.AssetDTO, error) {
	a, err := uc.assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return dto.ToAssetDTO(a), nil
}
