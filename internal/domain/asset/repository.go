package asset

import "context"

type ListFilter struct {
	Class    Class
	State    State
	Page     int
	PageSize int
}

type Repository interface {
	Create(ctx context.Context, a *Asset) error
	GetByID(ctx context.Context, id uint) (*Asset, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uint) (*Asset, error)
	// GetByPendingApprovalForUpdate locks the asset waiting on approvalID.
	GetByPendingApprovalForUpdate(ctx context.Context, approvalID string) (*Asset, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*Asset, error)
	Update(ctx context.Context, a *Asset) error
	ExistsByNumber(ctx context.Context, class Class, assetNumber string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Asset, int64, error)
}

type NumberRuleRepository interface {
	Create(ctx context.Context, r *NumberRule) error
	GetByID(ctx context.Context, id uint) (*NumberRule, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*NumberRule, error)
	// GetByClass returns ErrRuleNotBound when no rule is bound to class.
	GetByClass(ctx context.Context, class Class) (*NumberRule, error)
	GetByClassForUpdate(ctx context.Context, class Class) (*NumberRule, error)
	List(ctx context.Context) ([]*NumberRule, error)
	Update(ctx context.Context, r *NumberRule) error
}

type NumberTrackRepository interface {
	Create(ctx context.Context, t *NumberTrack) error
	ListByAsset(ctx context.Context, assetID uint) ([]*NumberTrack, error)
}
