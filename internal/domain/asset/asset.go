package asset

import (
	"strings"
	"time"

	"github.com/assetdesk/assetdesk/internal/shared/biztime"
)

// Class tags what kind of asset a row is.
type Class string

const (
	ClassDevice   Class = "device"
	ClassPart     Class = "part"
	ClassSoftware Class = "software"
)

func (c Class) IsValid() bool {
	switch c {
	case ClassDevice, ClassPart, ClassSoftware:
		return true
	}
	return false
}

func (c Class) String() string { return string(c) }

type State string

const (
	StateActive            State = "active"
	StatePendingRetirement State = "pending_retirement"
	StateRetired           State = "retired"
)

// Asset is a device, part or software license. Retired is terminal.
type Asset struct {
	id                uint
	class             Class
	assetNumber       string
	name              string
	categoryID        uint
	brandID           uint
	serialNumber      string
	specification     string
	maxLicenseCount   int
	state             State
	pendingApprovalID string
	creatorID         uint
	retiredAt         *time.Time
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewAssetParams groups the descriptive fields of a new asset.
type NewAssetParams struct {
	Class           Class
	AssetNumber     string
	Name            string
	CategoryID      uint
	BrandID         uint
	SerialNumber    string
	Specification   string
	MaxLicenseCount int
	CreatorID       uint
}

func NewAsset(p NewAssetParams) (*Asset, error) {
	if !p.Class.IsValid() {
		return nil, ErrInvalidClass
	}
	number := strings.TrimSpace(p.AssetNumber)
	if number == "" {
		return nil, ErrInvalidAssetNumber
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if p.MaxLicenseCount < 0 {
		return nil, ErrInvalidLicenseCount
	}
	maxLicense := p.MaxLicenseCount
	if p.Class != ClassSoftware {
		maxLicense = 0
	}

	now := biztime.NowUTC()
	return &Asset{
		class:           p.Class,
		assetNumber:     number,
		name:            name,
		categoryID:      p.CategoryID,
		brandID:         p.BrandID,
		serialNumber:    strings.TrimSpace(p.SerialNumber),
		specification:   p.Specification,
		maxLicenseCount: maxLicense,
		state:           StateActive,
		creatorID:       p.CreatorID,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructAsset rebuilds an asset from persistence without validation.
func ReconstructAsset(
	id uint,
	class Class,
	assetNumber, name string,
	categoryID, brandID uint,
	serialNumber, specification string,
	maxLicenseCount int,
	state State,
	pendingApprovalID string,
	creatorID uint,
	retiredAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) *Asset {
	return &Asset{
		id:                id,
		class:             class,
		assetNumber:       assetNumber,
		name:              name,
		categoryID:        categoryID,
		brandID:           brandID,
		serialNumber:      serialNumber,
		specification:     specification,
		maxLicenseCount:   maxLicenseCount,
		state:             state,
		pendingApprovalID: pendingApprovalID,
		creatorID:         creatorID,
		retiredAt:         retiredAt,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (a *Asset) ID() uint                  { return a.id }
func (a *Asset) Class() Class              { return a.class }
func (a *Asset) AssetNumber() string       { return a.assetNumber }
func (a *Asset) Name() string              { return a.name }
func (a *Asset) CategoryID() uint          { return a.categoryID }
func (a *Asset) BrandID() uint             { return a.brandID }
func (a *Asset) SerialNumber() string      { return a.serialNumber }
func (a *Asset) Specification() string     { return a.specification }
func (a *Asset) MaxLicenseCount() int      { return a.maxLicenseCount }
func (a *Asset) State() State              { return a.state }
func (a *Asset) PendingApprovalID() string { return a.pendingApprovalID }
func (a *Asset) CreatorID() uint           { return a.creatorID }
func (a *Asset) RetiredAt() *time.Time     { return a.retiredAt }
func (a *Asset) Version() int              { return a.version }
func (a *Asset) CreatedAt() time.Time      { return a.createdAt }
func (a *Asset) UpdatedAt() time.Time      { return a.updatedAt }

func (a *Asset) SetID(id uint) {
	a.id = id
}

func (a *Asset) IsRetired() bool { return a.state == StateRetired }

// IsLicenseBounded reports whether attachments to this software are capped.
func (a *Asset) IsLicenseBounded() bool {
	return a.class == ClassSoftware && a.maxLicenseCount > 0
}

// EnsureMutable rejects changes to retired assets and to assets waiting on a
// retirement approval.
func (a *Asset) EnsureMutable() error {
	switch a.state {
	case StateRetired:
		return ErrAssetAlreadyRetired
	case StatePendingRetirement:
		return ErrRetirementPending
	}
	return nil
}

func (a *Asset) touch() {
	a.version++
	a.updatedAt = biztime.NowUTC()
}
