package dto

import (
	"time"

	"github.com/assetdesk/assetdesk/internal/domain/approval"
)

type FlowDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type FormDTO struct {
	UUID           string           `json:"uuid"`
	FlowID         uint             `json:"flow_id"`
	FlowName       string           `json:"flow_name"`
	Name           string           `json:"name"`
	ApplicantID    uint             `json:"applicant_id"`
	Comment        string           `json:"comment"`
	Payload        approval.Payload `json:"payload"`
	Status         string           `json:"status"`
	ResolvedBy     *uint            `json:"resolved_by,omitempty"`
	ResolveComment string           `json:"resolve_comment,omitempty"`
	ResolvedAt     *time.Time       `json:"resolved_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// RetireFlowDTO reports the retire flow bound to an asset class. FlowID is 0
// when none is configured.
type RetireFlowDTO struct {
	Class    string `json:"class"`
	FlowID   uint   `json:"flow_id"`
	FlowName string `json:"flow_name,omitempty"`
	Missing  bool   `json:"missing,omitempty"`
}

func ToFlowDTO(f *approval.Flow) *FlowDTO {
	if f == nil {
		return nil
	}
	return &FlowDTO{
		ID:          f.ID(),
		Name:        f.Name(),
		Description: f.Description(),
		CreatedAt:   f.CreatedAt(),
		UpdatedAt:   f.UpdatedAt(),
	}
}

func ToFlowDTOs(flows []*approval.Flow) []*FlowDTO {
	out := make([]*FlowDTO, 0, len(flows))
	for _, f := range flows {
		out = append(out, ToFlowDTO(f))
	}
	return out
}

func ToFormDTO(f *approval.Form) *FormDTO {
	if f == nil {
		return nil
	}
	return &FormDTO{
		UUID:           f.UUID(),
		FlowID:         f.FlowID(),
		FlowName:       f.FlowName(),
		Name:           f.Name(),
		ApplicantID:    f.ApplicantID(),
		Comment:        f.Comment(),
		Payload:        f.Payload(),
		Status:         string(f.Status()),
		ResolvedBy:     f.ResolvedBy(),
		ResolveComment: f.ResolveComment(),
		ResolvedAt:     f.ResolvedAt(),
		CreatedAt:      f.CreatedAt(),
	}
}
