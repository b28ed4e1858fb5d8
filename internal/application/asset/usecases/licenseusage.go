package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/asset/dto"
	"github.com/assetdesk/assetdesk/internal/application/asset/services"
)

type LicenseUsageUseCase struct {
	licenses *services.LicenseCounter
}

func NewLicenseUsageUseCase(licenses *services.LicenseCounter) *LicenseUsageUseCase {
	return &LicenseUsageUseCase{licenses: licenses}
}

func (uc *LicenseUsageUseCase) Execute(ctx context.Context, softwareID uint) (*dto.LicenseUsageDTO, error) {
	used, max, err := uc.licenses.Usage(ctx, softwareID)
	if err != nil {
		return nil, err
	}
	available := int64(-1)
	if max > 0 {
		available = int64(max) - used
		if available < 0 {
			available = 0
		}
	}
	return &dto.LicenseUsageDTO{
		SoftwareID:      softwareID,
		Used:            used,
		MaxLicenseCount: max,
		Available:       available,
	}, nil
}
