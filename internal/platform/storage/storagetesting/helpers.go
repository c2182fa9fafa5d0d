package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	"github.com/MichalMitros/catalog-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-sync/internal/platform/storage"
	pgmodels "github.com/MichalMitros/catalog-sync/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/catalog-sync/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB and applies migrations.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	if err := storage.Migrate(db); err != nil {
		t.Fatalf("can't migrate %q: %s", dbURL, err)
	}

	return db
}

// InsertRuns is a helper test function to insert runs.
func InsertRuns(t *testing.T, exc qrm.Executable, runs ...pgmodels.SyncRun) {
	t.Helper()

	if len(runs) == 0 {
		return
	}

	_, err := table.SyncRun.INSERT(table.SyncRun.AllColumns).MODELS(runs).Exec(exc)
	if err != nil {
		t.Fatal("can't insert runs", err)
	}
}

// GetRuns is a helper test function to get all runs ordered by ID.
func GetRuns(t *testing.T, queryable qrm.Queryable) []pgmodels.SyncRun {
	t.Helper()

	runs := []pgmodels.SyncRun{}
	err := table.SyncRun.SELECT(table.SyncRun.AllColumns).
		WHERE(table.SyncRun.ID.IS_NOT_NULL()).
		ORDER_BY(table.SyncRun.ID.ASC()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get runs", err)
	}

	return runs
}

// GetScopeRuns is a helper test function to get runs of scope ordered by ID.
func GetScopeRuns(t *testing.T, queryable qrm.Queryable, scope models.Scope) []pgmodels.SyncRun {
	t.Helper()

	runs := []pgmodels.SyncRun{}
	err := table.SyncRun.SELECT(table.SyncRun.AllColumns).
		WHERE(pg.AND(
			table.SyncRun.Tenant.EQ(pg.String(scope.Tenant)),
			table.SyncRun.Store.EQ(pg.String(scope.Store)),
		)).
		ORDER_BY(table.SyncRun.ID.ASC()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get runs", err)
	}

	return runs
}

// CleanupData removes all runs.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.SyncRun.DELETE().WHERE(table.SyncRun.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete runs data", err)
	}
}
