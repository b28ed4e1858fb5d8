package approval

import (
	"strings"
	"time"

	"github.com/assetdesk/assetdesk/internal/shared/biztime"
)

// Flow is an approval workflow definition. Steps and approvers are owned by
// the workflow engine; only identity and name are kept here.
type Flow struct {
	id          uint
	name        string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewFlow(name, description string) (*Flow, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidFlowName
	}
	now := biztime.NowUTC()
	return &Flow{name: name, description: description, createdAt: now, updatedAt: now}, nil
}

func ReconstructFlow(id uint, name, description string, createdAt, updatedAt time.Time) *Flow {
	return &Flow{id: id, name: name, description: description, createdAt: createdAt, updatedAt: updatedAt}
}

func (f *Flow) ID() uint             { return f.id }
func (f *Flow) Name() string         { return f.name }
func (f *Flow) Description() string  { return f.description }
func (f *Flow) CreatedAt() time.Time { return f.createdAt }
func (f *Flow) UpdatedAt() time.Time { return f.updatedAt }

func (f *Flow) SetID(id uint) {
	f.id = id
}
