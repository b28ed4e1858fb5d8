package approval

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/assetdesk/assetdesk/internal/shared/biztime"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Outcome is the terminal decision reported by the workflow engine.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

func (o Outcome) IsValid() bool {
	return o == OutcomeApproved || o == OutcomeRejected
}

// Payload is the snapshot taken when the form is submitted.
type Payload struct {
	AssetID     uint   `json:"asset_id"`
	AssetClass  string `json:"asset_class"`
	AssetNumber string `json:"asset_number"`
}

// Form is one approval instance of a Flow.
type Form struct {
	id             uint
	uuid           string
	flowID         uint
	flowName       string
	name           string
	applicantID    uint
	comment        string
	payload        Payload
	status         Status
	resolvedBy     *uint
	resolveComment string
	resolvedAt     *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewForm(flow *Flow, name string, applicantID uint, comment string, payload Payload) (*Form, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidFormName
	}
	now := biztime.NowUTC()
	return &Form{
		uuid:        uuid.NewString(),
		flowID:      flow.ID(),
		flowName:    flow.Name(),
		name:        name,
		applicantID: applicantID,
		comment:     comment,
		payload:     payload,
		status:      StatusPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructForm(
	id uint,
	formUUID string,
	flowID uint,
	flowName, name string,
	applicantID uint,
	comment string,
	payload Payload,
	status Status,
	resolvedBy *uint,
	resolveComment string,
	resolvedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Form {
	return &Form{
		id:             id,
		uuid:           formUUID,
		flowID:         flowID,
		flowName:       flowName,
		name:           name,
		applicantID:    applicantID,
		comment:        comment,
		payload:        payload,
		status:         status,
		resolvedBy:     resolvedBy,
		resolveComment: resolveComment,
		resolvedAt:     resolvedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (f *Form) ID() uint               { return f.id }
func (f *Form) UUID() string           { return f.uuid }
func (f *Form) FlowID() uint           { return f.flowID }
func (f *Form) FlowName() string       { return f.flowName }
func (f *Form) Name() string           { return f.name }
func (f *Form) ApplicantID() uint      { return f.applicantID }
func (f *Form) Comment() string        { return f.comment }
func (f *Form) Payload() Payload       { return f.payload }
func (f *Form) Status() Status         { return f.status }
func (f *Form) ResolvedBy() *uint      { return f.resolvedBy }
func (f *Form) ResolveComment() string { return f.resolveComment }
func (f *Form) ResolvedAt() *time.Time { return f.resolvedAt }
func (f *Form) CreatedAt() time.Time   { return f.createdAt }
func (f *Form) UpdatedAt() time.Time   { return f.updatedAt }

func (f *Form) SetID(id uint) {
	f.id = id
}

func (f *Form) IsFinished() bool { return f.status != StatusPending }

// Resolve records the terminal decision. A form resolves exactly once.
func (f *Form) Resolve(outcome Outcome, actorID uint, comment string, at time.Time) error {
	if !outcome.IsValid() {
		return ErrInvalidOutcome
	}
	if f.IsFinished() {
		return ErrFormAlreadyResolved
	}
	at = at.UTC()
	if outcome == OutcomeApproved {
		f.status = StatusApproved
	} else {
		f.status = StatusRejected
	}
	f.resolvedBy = &actorID
	f.resolveComment = comment
	f.resolvedAt = &at
	f.updatedAt = at
	return nil
}
