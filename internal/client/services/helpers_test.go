package services

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/surlink/internal/client/client"
	"github.com/dmitrijs2005/surlink/internal/client/config"
	"github.com/dmitrijs2005/surlink/internal/client/repositories/records"
	"github.com/dmitrijs2005/surlink/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func newTestStore(t *testing.T) records.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, client.RunMigrations(context.Background(), db, config.StoreSQLite))
	return records.NewSQLiteStore(db)
}

func nopLog() logging.Logger {
	return logging.NewNopLogger()
}

// pngBytes is a 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

// ---- fake scanner client ----

type fakeScannerClient struct {
	mu sync.Mutex

	AnalyzeRet *client.Analysis
	AnalyzeErr error
	// AnalyzeBlock, when set, is waited on inside Analyze.
	AnalyzeBlock   chan struct{}
	AnalyzeStarted chan struct{}

	ExplainRet string
	ExplainErr error
	Explainer  bool

	ClassifierErr error
	ExplainerErr  error

	analyzeCalls atomic.Int32
	explainCalls atomic.Int32
	LastLabel    string
}

func (f *fakeScannerClient) Analyze(ctx context.Context, message string) (*client.Analysis, error) {
	f.analyzeCalls.Add(1)
	if f.AnalyzeStarted != nil {
		close(f.AnalyzeStarted)
	}
	if f.AnalyzeBlock != nil {
		select {
		case <-f.AnalyzeBlock:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.AnalyzeRet, f.AnalyzeErr
}

func (f *fakeScannerClient) Explain(ctx context.Context, message, label string) (string, error) {
	f.explainCalls.Add(1)
	f.mu.Lock()
	f.LastLabel = label
	f.mu.Unlock()
	return f.ExplainRet, f.ExplainErr
}

func (f *fakeScannerClient) ClassifierHealth(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ClassifierErr
}

func (f *fakeScannerClient) ExplainerHealth(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.Explainer {
		return client.ErrNotConfigured
	}
	return f.ExplainerErr
}

func (f *fakeScannerClient) ExplainerConfigured() bool { return f.Explainer }

func (f *fakeScannerClient) setHealth(classifier, explainer error) {
	f.mu.Lock()
	f.ClassifierErr, f.ExplainerErr = classifier, explainer
	f.mu.Unlock()
}

// ---- failing store ----

type failingStore struct {
	records.Store
}

func (f *failingStore) Put(ctx context.Context, key string, value []byte) error {
	return errStore
}

func (f *failingStore) InTx(ctx context.Context, fn func(ctx context.Context, repo records.Repository) error) error {
	return errStore
}

var errStore = errors.New("store unavailable")
