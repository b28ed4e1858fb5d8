package usecases

import (
	"context"
	"strings"

	"github.com/assetdesk/assetdesk/internal/application/asset/dto"
	"github.com/assetdesk/assetdesk/internal/application/asset/services"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/infrastructure/metrics"
	"github.com/assetdesk/assetdesk/internal/shared/db"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

type CreateAssetCommand struct {
	Class           string
	AssetNumber     string
	Name            string
	CategoryID      uint
	BrandID         uint
	SerialNumber    string
	Specification   string
	MaxLicenseCount int
	CreatorID       uint
}

// CreateAssetUseCase registers an asset. Classes bound to an auto rule get a
// generated number; a number supplied for such a class is rejected.
type CreateAssetUseCase struct {
	tx        TransactionRunner
	assets    asset.Repository
	allocator *services.NumberAllocator
	logger    logger.Interface
}

func NewCreateAssetUseCase(tx TransactionRunner, assets asset.Repository, allocator *services.NumberAllocator, logger logger.Interface) *CreateAssetUseCase {
	return &CreateAssetUseCase{tx: tx, assets: assets, allocator: allocator, logger: logger}
}

func (uc *CreateAssetUseCase) Execute(ctx context.Context, cmd CreateAssetCommand) (*dto.AssetDTO, error) {
	class := asset.Class(cmd.Class)
	if !class.IsValid() {
		return nil, asset.ErrInvalidClass
	}

	var created *asset.Asset
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		auto, err := uc.allocator.IsAuto(ctx, class)
		if err != nil {
			return err
		}

		number := strings.TrimSpace(cmd.AssetNumber)
		var ruleID *uint
		source := "manual"
		if auto {
			if number != "" {
				return asset.ErrAssetNumberManaged
			}
			generated, id, err := uc.allocator.Allocate(ctx, class)
			if err != nil {
				return err
			}
			number, ruleID, source = generated, &id, "auto"
		} else if number != "" {
			taken, err := uc.assets.ExistsByNumber(ctx, class, number)
			if err != nil {
				return err
			}
			if taken {
				return asset.ErrDuplicateAssetNumber
			}
		}

		a, err := asset.NewAsset(asset.NewAssetParams{
			Class:           class,
			AssetNumber:     number,
			Name:            cmd.Name,
			CategoryID:      cmd.CategoryID,
			BrandID:         cmd.BrandID,
			SerialNumber:    cmd.SerialNumber,
			Specification:   cmd.Specification,
			MaxLicenseCount: cmd.MaxLicenseCount,
			CreatorID:       cmd.CreatorID,
		})
		if err != nil {
			return err
		}
		if err := uc.assets.Create(ctx, a); err != nil {
			return err
		}
		if err := uc.allocator.Track(ctx, a, ruleID); err != nil {
			return err
		}
		created = a
		if source == "manual" {
			db.AfterCommit(ctx, func() {
				metrics.AssetNumberCounter.WithLabelValues(class.String(), source).Inc()
			})
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("failed to create asset", "class", cmd.Class, "asset_number", cmd.AssetNumber, "error", err)
		return nil, err
	}

	uc.logger.Infow("asset created",
		"asset_id", created.ID(),
		"class", created.Class(),
		"asset_number", created.AssetNumber(),
		"creator_id", cmd.CreatorID,
	)
	return dto.ToAssetDTO(created), nil
}
