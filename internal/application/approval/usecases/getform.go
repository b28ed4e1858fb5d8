package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/approval/dto"
	"github.com/assetdesk/assetdesk/internal/domain/approval"
)

type GetFormUseCase struct {
	forms approval.FormRepository
}

func NewGetFormUseCase(forms approval.FormRepository) *GetFormUseCase {
	return &GetFormUseCase{forms: forms}
}

func (uc *GetFormUseCase) Execute(ctx context.Context, formUUID string) (*dto.FormDTO, error) {
	form, err := uc.forms.GetByUUID(ctx, formUUID)
	if err != nil {
		return nil, err
	}
	return dto.ToFormDTO(form), nil
}
