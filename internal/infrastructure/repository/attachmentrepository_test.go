package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/assetdesk/assetdesk/internal/domain/attachment"
	"github.com/assetdesk/assetdesk/internal/shared/db"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

var errNoServer = errors.New("statements are only rendered")

// renderedPool lets gorm build MySQL statements inside a transaction without a
// server. Queries are never executed in DryRun mode.
type renderedPool struct{}

func (renderedPool) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errNoServer
}

func (renderedPool) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errNoServer
}

func (renderedPool) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errNoServer
}

func (renderedPool) QueryRowContext(context.Context, string, ...any) *sql.Row { return nil }

func (p renderedPool) BeginTx(context.Context, *sql.TxOptions) (gorm.ConnPool, error) {
	return &renderedTx{p}, nil
}

type renderedTx struct{ renderedPool }

func (renderedTx) Commit() error   { return nil }
func (renderedTx) Rollback() error { return nil }

type sqlRecorder struct {
	mu   sync.Mutex
	stmt []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...any)             {}
func (r *sqlRecorder) Warn(context.Context, string, ...any)             {}
func (r *sqlRecorder) Error(context.Context, string, ...any)            {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	statement, _ := fc()
	r.mu.Lock()
	r.stmt = append(r.stmt, statement)
	r.mu.Unlock()
}

func (r *sqlRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stmt) == 0 {
		return ""
	}
	return r.stmt[len(r.stmt)-1]
}

func newMySQLRenderer(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      renderedPool{},
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, Logger: rec})
	require.NoError(t, err)
	return gdb, rec
}

func TestAttachmentRepository_GuardQueriesLockInTransaction(t *testing.T) {
	gdb, rec := newMySQLRenderer(t)
	repo := NewAttachmentRepository(gdb, logger.NewNopLogger())
	tm := db.NewTransactionManager(gdb)

	guards := map[string]func(ctx context.Context) error{
		"seat count": func(ctx context.Context) error {
			_, err := repo.CountActiveByTarget(ctx, attachment.TargetSoftware, 7)
			return err
		},
		"duplicate pair": func(ctx context.Context) error {
			_, err := repo.ExistsActive(ctx, 3, attachment.TargetSoftware, 7)
			return err
		},
		"device relations": func(ctx context.Context) error {
			_, err := repo.ListActiveByDevice(ctx, 3, attachment.TargetUser)
			return err
		},
		"target relations": func(ctx context.Context) error {
			_, err := repo.ListActiveByTarget(ctx, attachment.TargetPart, 9)
			return err
		},
	}

	for name, guard := range guards {
		t.Run(name, func(t *testing.T) {
			err := tm.RunInTransaction(context.Background(), guard)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(rec.last(), "FOR SHARE"), rec.last())

			require.NoError(t, guard(context.Background()))
			assert.NotContains(t, rec.last(), "FOR SHARE")
		})
	}
}
