package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MichalMitros/catalog-sync/internal/platform"
	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-sync/internal/platform/storage/gen/postgres/public/table"

	pgmodels "github.com/MichalMitros/catalog-sync/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

//go:generate make -C ../../../ generate-db

const (
	defaultRunTimeout = 15 * time.Minute
	abandonedMessage  = "abandoned: run timeout exceeded"
)

// Postgres is journal of sync runs.
type Postgres struct {
	db         *sql.DB
	runTimeout time.Duration
}

// Option configures Postgres.
type Option func(p *Postgres)

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB, ops ...Option) Postgres {
	p := Postgres{
		db:         db,
		runTimeout: defaultRunTimeout,
	}

	for _, op := range ops {
		op(&p)
	}

	return p
}

// WithRunTimeout sets age after which unfinished run is treated as abandoned.
func WithRunTimeout(timeout time.Duration) Option {
	return func(p *Postgres) {
		if timeout > 0 {
			p.runTimeout = timeout
		}
	}
}

// StartRun creates new unfinished run for scope and returns it.
// It returns platform.ErrAlreadyRunning if scope has unfinished run younger than run timeout.
// Older unfinished runs are closed as failed.
func (p Postgres) StartRun(ctx context.Context, scope models.Scope, force bool) (*models.Run, error) {
	run := &models.Run{
		Scope: scope,
		Force: force,
	}

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		if err := lockScope(ctx, tx, scope); err != nil {
			return fmt.Errorf("can't lock scope: %w", err)
		}

		running, err := hasRunningRun(ctx, tx, scope, p.runTimeout)
		if err != nil {
			return fmt.Errorf("can't get running runs from database: %w", err)
		}
		if running {
			return platform.ErrAlreadyRunning
		}

		if err = closeAbandonedRuns(ctx, tx, scope); err != nil {
			return fmt.Errorf("can't close abandoned runs: %w", err)
		}

		newRun := toDBRun(run)
		err = table.SyncRun.INSERT(
			table.SyncRun.Tenant,
			table.SyncRun.Store,
			table.SyncRun.Force,
		).
			MODEL(newRun).
			RETURNING(table.SyncRun.ID, table.SyncRun.CreatedAt).
			QueryContext(ctx, tx, newRun)
		if err != nil {
			return fmt.Errorf("can't insert run into database: %w", err)
		}

		run.ID = int(newRun.ID)
		run.CreatedAt = newRun.CreatedAt

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't add run: %w", err)
	}

	return run, nil
}

// FinishRun sets run as finished and updates run's statistics.
func (p Postgres) FinishRun(ctx context.Context, run *models.Run) error {
	columnList := pg.ColumnList{
		table.SyncRun.FinishedAt,
		table.SyncRun.Success,
		table.SyncRun.StatusMessage,
		table.SyncRun.FetchedProducts,
		table.SyncRun.PropagatedProducts,
		table.SyncRun.Chunks,
	}

	result, err := table.SyncRun.UPDATE(columnList).
		MODEL(toDBRun(run)).
		WHERE(table.SyncRun.ID.EQ(pg.Int32(int32(run.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("can't update run %d: %w", run.ID, qrm.ErrNoRows)
	}

	return nil
}

// LastRun returns the most recent run of scope or nil when scope was never synced.
func (p Postgres) LastRun(ctx context.Context, scope models.Scope) (*models.Run, error) {
	var runs []pgmodels.SyncRun
	err := table.SyncRun.SELECT(table.SyncRun.AllColumns).
		WHERE(scopeCondition(scope)).
		ORDER_BY(table.SyncRun.CreatedAt.DESC()).
		LIMIT(1).
		QueryContext(ctx, p.db, &runs)
	if err != nil {
		return nil, fmt.Errorf("can't get last run: %w", err)
	}

	if len(runs) == 0 {
		return nil, nil
	}

	return fromDBRun(&runs[0]), nil
}

func lockScope(ctx context.Context, db qrm.DB, scope models.Scope) error {
	_, err := pg.RawStatement(
		"SELECT pg_advisory_xact_lock(hashtext(#scope))",
		pg.RawArgs{"#scope": scope.String()},
	).ExecContext(ctx, db)
	return err
}

func hasRunningRun(ctx context.Context, db qrm.DB, scope models.Scope, timeout time.Duration) (bool, error) {
	var runs []pgmodels.SyncRun
	err := table.SyncRun.SELECT(table.SyncRun.ID).
		WHERE(pg.AND(
			scopeCondition(scope),
			table.SyncRun.FinishedAt.IS_NULL(),
			table.SyncRun.CreatedAt.GT(pg.NOW().SUB(pg.INTERVALd(timeout))),
		)).
		LIMIT(1).
		QueryContext(ctx, db, &runs)
	if err != nil {
		return false, err
	}

	return len(runs) > 0, nil
}

func closeAbandonedRuns(ctx context.Context, db qrm.DB, scope models.Scope) error {
	_, err := table.SyncRun.UPDATE().
		SET(
			table.SyncRun.FinishedAt.SET(pg.NOW()),
			table.SyncRun.Success.SET(pg.Bool(false)),
			table.SyncRun.StatusMessage.SET(pg.String(abandonedMessage)),
		).
		WHERE(pg.AND(
			scopeCondition(scope),
			table.SyncRun.FinishedAt.IS_NULL(),
		)).
		ExecContext(ctx, db)
	return err
}

func scopeCondition(scope models.Scope) pg.BoolExpression {
	return pg.AND(
		table.SyncRun.Tenant.EQ(pg.String(scope.Tenant)),
		table.SyncRun.Store.EQ(pg.String(scope.Store)),
	)
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
