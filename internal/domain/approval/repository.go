package approval

import "context"

type FlowRepository interface {
	Create(ctx context.Context, f *Flow) error
	GetByID(ctx context.Context, id uint) (*Flow, error)
	List(ctx context.Context) ([]*Flow, error)
	Delete(ctx context.Context, id uint) error
}

type FormRepository interface {
	Create(ctx context.Context, f *Form) error
	GetByUUID(ctx context.Context, formUUID string) (*Form, error)
	GetByUUIDForUpdate(ctx context.Context, formUUID string) (*Form, error)
	Update(ctx context.Context, f *Form) error
}
