package services

import (
	"context"
	"errors"

	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/domain/attachment"
)

// LicenseCounter derives the seat usage of a software asset from its
// currently attached devices.
type LicenseCounter struct {
	assets      asset.Repository
	attachments attachment.Repository
}

func NewLicenseCounter(assets asset.Repository, attachments attachment.Repository) *LicenseCounter {
	return &LicenseCounter{assets: assets, attachments: attachments}
}

// UsedCount counts active attachments only.
func (c *LicenseCounter) UsedCount(ctx context.Context, softwareID uint) (int64, error) {
	return c.attachments.CountActiveByTarget(ctx, attachment.TargetSoftware, softwareID)
}

// HasCapacity is always true for max_license_count 0, otherwise true while
// usedCount < max_license_count.
func (c *LicenseCounter) HasCapacity(ctx context.Context, softwareID uint) (bool, error) {
	software, err := c.loadSoftware(ctx, softwareID)
	if err != nil {
		return false, err
	}
	return c.hasCapacityFor(ctx, software)
}

// Usage returns used seats and the bound for softwareID.
func (c *LicenseCounter) Usage(ctx context.Context, softwareID uint) (used int64, max int, err error) {
	software, err := c.loadSoftware(ctx, softwareID)
	if err != nil {
		return 0, 0, err
	}
	used, err = c.UsedCount(ctx, softwareID)
	if err != nil {
		return 0, 0, err
	}
	return used, software.MaxLicenseCount(), nil
}

// hasCapacityFor expects the caller to hold the software row lock when the
// answer gates an insert.
func (c *LicenseCounter) hasCapacityFor(ctx context.Context, software *asset.Asset) (bool, error) {
	if !software.IsLicenseBounded() {
		return true, nil
	}
	used, err := c.UsedCount(ctx, software.ID())
	if err != nil {
		return false, err
	}
	return used < int64(software.MaxLicenseCount()), nil
}

func (c *LicenseCounter) loadSoftware(ctx context.Context, softwareID uint) (*asset.Asset, error) {
	software, err := c.assets.GetByID(ctx, softwareID)
	if errors.Is(err, asset.ErrAssetNotFound) {
		return nil, asset.ErrSoftwareNotFound
	}
	if err != nil {
		return nil, err
	}
	if software.Class() != asset.ClassSoftware {
		return nil, asset.ErrSoftwareNotFound
	}
	return software, nil
}
