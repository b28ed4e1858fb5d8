package asset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/assetdesk/assetdesk/internal/shared/biztime"
)

const (
	PlaceholderYear   = "{year}"
	PlaceholderMonth  = "{month}"
	PlaceholderDay    = "{day}"
	PlaceholderNumber = "{number}"

	maxIncrementLength = 12

	// MaxAssetNumberLength is the width of the asset_number column.
	MaxAssetNumberLength = 100
)

// maxCounterDigits is the widest the counter can render once it outgrows its
// padding.
var maxCounterDigits = len(strconv.FormatInt(math.MaxInt64, 10))

// NumberRule is a template for auto-generated asset numbers, for example
// "PC-{year}{month}-{number}". At most one rule is bound to a class.
type NumberRule struct {
	id                  uint
	name                string
	formula             string
	autoIncrementLength int
	autoIncrementCount  int64
	boundClass          *Class
	isAuto              bool
	createdAt           time.Time
	updatedAt           time.Time
}

func NewNumberRule(name, formula string, autoIncrementLength int) (*NumberRule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidRuleName
	}
	if !strings.Contains(formula, PlaceholderNumber) {
		return nil, ErrInvalidFormula
	}
	if autoIncrementLength < 1 || autoIncrementLength > maxIncrementLength {
		return nil, ErrInvalidIncrementLn
	}
	if n := maxRenderedLength(formula, autoIncrementLength); n > MaxAssetNumberLength {
		return nil, fmt.Errorf("%w: renders up to %d characters, limit is %d", ErrInvalidFormula, n, MaxAssetNumberLength)
	}
	now := biztime.NowUTC()
	return &NumberRule{
		name:                name,
		formula:             formula,
		autoIncrementLength: autoIncrementLength,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

func ReconstructNumberRule(
	id uint,
	name, formula string,
	autoIncrementLength int,
	autoIncrementCount int64,
	boundClass *Class,
	isAuto bool,
	createdAt, updatedAt time.Time,
) *NumberRule {
	return &NumberRule{
		id:                  id,
		name:                name,
		formula:             formula,
		autoIncrementLength: autoIncrementLength,
		autoIncrementCount:  autoIncrementCount,
		boundClass:          boundClass,
		isAuto:              isAuto,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

func (r *NumberRule) ID() uint                  { return r.id }
func (r *NumberRule) Name() string              { return r.name }
func (r *NumberRule) Formula() string           { return r.formula }
func (r *NumberRule) AutoIncrementLength() int  { return r.autoIncrementLength }
func (r *NumberRule) AutoIncrementCount() int64 { return r.autoIncrementCount }
func (r *NumberRule) BoundClass() *Class        { return r.boundClass }
func (r *NumberRule) IsAuto() bool              { return r.isAuto }
func (r *NumberRule) CreatedAt() time.Time      { return r.createdAt }
func (r *NumberRule) UpdatedAt() time.Time      { return r.updatedAt }

func (r *NumberRule) SetID(id uint) {
	r.id = id
}

// Generate renders the number the next issuance would receive. It does not
// advance the counter.
func (r *NumberRule) Generate(now time.Time) string {
	local := biztime.ToBizTimezone(now)
	seq := strconv.FormatInt(r.autoIncrementCount+1, 10)
	if pad := r.autoIncrementLength - len(seq); pad > 0 {
		seq = strings.Repeat("0", pad) + seq
	}
	return strings.NewReplacer(
		PlaceholderYear, fmt.Sprintf("%04d", local.Year()),
		PlaceholderMonth, fmt.Sprintf("%02d", int(local.Month())),
		PlaceholderDay, fmt.Sprintf("%02d", local.Day()),
		PlaceholderNumber, seq,
	).Replace(r.formula)
}

// maxRenderedLength is the longest number formula can produce for any date
// and counter value.
func maxRenderedLength(formula string, autoIncrementLength int) int {
	width := max(autoIncrementLength, maxCounterDigits)
	return len(strings.NewReplacer(
		PlaceholderYear, "0000",
		PlaceholderMonth, "00",
		PlaceholderDay, "00",
		PlaceholderNumber, strings.Repeat("0", width),
	).Replace(formula))
}

// IncrementCounter advances the counter by one.
func (r *NumberRule) IncrementCounter() {
	r.autoIncrementCount++
	r.updatedAt = biztime.NowUTC()
}

// Bind attaches the rule to class. isAuto controls whether numbers for the
// class are generated rather than typed in.
func (r *NumberRule) Bind(class Class, isAuto bool) error {
	if !class.IsValid() {
		return ErrInvalidClass
	}
	c := class
	r.boundClass = &c
	r.isAuto = isAuto
	r.updatedAt = biztime.NowUTC()
	return nil
}

func (r *NumberRule) Unbind() {
	r.boundClass = nil
	r.isAuto = false
	r.updatedAt = biztime.NowUTC()
}

// NumberTrack records one issued asset number.
type NumberTrack struct {
	ID          uint
	AssetNumber string
	AssetID     uint
	Class       Class
	RuleID      *uint
	CreatedAt   time.Time
}
