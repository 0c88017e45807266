package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"job-radar/internal/database"
	"job-radar/internal/domain/job"
)

// fakeDB emulates the handful of statements the repositories issue. Job rows
// are keyed by "sourceUrl" so the conflict-skip behavior matches Postgres.
type fakeDB struct {
	mu sync.Mutex

	jobsByURL map[string][]any
	runs      map[uuid.UUID]string
	logs      int

	execErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		jobsByURL: map[string][]any{},
		runs:      map[uuid.UUID]string{},
	}
}

func (db *fakeDB) Ping(ctx context.Context) error { return nil }
func (db *fakeDB) Close() error                   { return nil }
func (db *fakeDB) SQLDB() *sql.DB                 { return nil }

func (db *fakeDB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.execErr != nil {
		return 0, db.execErr
	}

	q := strings.ToLower(strings.TrimSpace(query))
	switch {
	case strings.HasPrefix(q, "insert into scraped_jobs"):
		url := args[7].(string)
		if _, ok := db.jobsByURL[url]; ok {
			return 0, nil
		}
		db.jobsByURL[url] = args
		return 1, nil

	case strings.HasPrefix(q, "insert into scrape_runs"):
		db.runs[args[0].(uuid.UUID)] = "running"
		return 1, nil

	case strings.HasPrefix(q, "insert into scrape_logs"):
		db.logs++
		return 1, nil

	case strings.HasPrefix(q, "update scrape_runs"):
		db.runs[args[0].(uuid.UUID)] = args[1].(string)
		return 1, nil
	}
	return 0, fmt.Errorf("unexpected statement: %s", q)
}

func (db *fakeDB) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return nil, fmt.Errorf("not implemented")
}

func (db *fakeDB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return nil
}

func testRecord(url string) job.Record {
	return job.Record{
		Title:               "Go Engineer",
		CompanyName:         "Acme",
		Description:         "Build things.",
		LocationRequirement: job.Remote,
		Location:            "Berlin",
		SourceURL:           url,
		SourceSite:          "Python.org",
	}
}

func TestInsertJobReportsNewAndDuplicate(t *testing.T) {
	db := newFakeDB()
	repo := NewScrapedJobRepository(db, zap.NewNop())
	ctx := context.Background()

	ok, err := repo.InsertJob(ctx, testRecord("https://example.com/j/1"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !ok {
		t.Fatal("first insert reported duplicate")
	}

	ok, err = repo.InsertJob(ctx, testRecord("https://example.com/j/1"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ok {
		t.Fatal("duplicate insert reported as new")
	}
	if len(db.jobsByURL) != 1 {
		t.Fatalf("stored %d rows, want 1", len(db.jobsByURL))
	}
}

func TestInsertJobWrapsExecError(t *testing.T) {
	db := newFakeDB()
	db.execErr = fmt.Errorf("connection refused")
	repo := NewScrapedJobRepository(db, zap.NewNop())

	_, err := repo.InsertJob(context.Background(), testRecord("https://example.com/j/1"))
	if err == nil || !strings.Contains(err.Error(), "https://example.com/j/1") {
		t.Fatalf("err = %v, want wrapped with source url", err)
	}
}

func TestScrapeRunLifecycle(t *testing.T) {
	db := newFakeDB()
	repo := NewScrapeRunRepository(db)
	ctx := context.Background()

	id, err := repo.StartRun(ctx, "Python.org")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if db.runs[id] != "running" {
		t.Fatalf("run status = %q, want running", db.runs[id])
	}

	if err := repo.LogRun(ctx, id, "", "inserted 3 new jobs"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if db.logs != 1 {
		t.Fatalf("logged %d rows, want 1", db.logs)
	}

	// Empty messages and nil run ids are silently dropped.
	if err := repo.LogRun(ctx, id, "info", "   "); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := repo.LogRun(ctx, uuid.Nil, "info", "orphan"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if db.logs != 1 {
		t.Fatalf("logged %d rows after no-op calls, want 1", db.logs)
	}

	if err := repo.FinishRun(ctx, id, "finished"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if db.runs[id] != "finished" {
		t.Fatalf("run status = %q, want finished", db.runs[id])
	}
}
