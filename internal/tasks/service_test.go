package tasks

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authmaint/internal/archive"
	"github.com/dmitrijs2005/authmaint/internal/common"
	"github.com/dmitrijs2005/authmaint/internal/dbx"
	"github.com/dmitrijs2005/authmaint/internal/logging"
	"github.com/dmitrijs2005/authmaint/internal/models"
	"github.com/dmitrijs2005/authmaint/internal/repositories/accounts"
	"github.com/dmitrijs2005/authmaint/internal/repositories/authrequests"
	"github.com/dmitrijs2005/authmaint/internal/repositories/characters"
	"github.com/dmitrijs2005/authmaint/internal/repositories/credentials"
	"github.com/dmitrijs2005/authmaint/internal/repositories/runs"
)

// ---- fakes ----

type fakeAccounts struct {
	byUsername    map[string]*models.Account
	caseSensitive []models.Account
	conflicts     []models.Account
	folded        []string
	foldErr       error
}

func (f *fakeAccounts) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	if a, ok := f.byUsername[username]; ok {
		return a, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAccounts) ListCaseSensitive(ctx context.Context) ([]models.Account, error) {
	return f.caseSensitive, nil
}

func (f *fakeAccounts) ListFoldConflicts(ctx context.Context) ([]models.Account, error) {
	return f.conflicts, nil
}

func (f *fakeAccounts) FoldCase(ctx context.Context, id string) error {
	if f.foldErr != nil {
		return f.foldErr
	}
	f.folded = append(f.folded, id)
	return nil
}

type fakeCharacters struct {
	batches [][]models.Character
	deleted [][]string
}

func (f *fakeCharacters) ListOrphanBatch(ctx context.Context, limit int) ([]models.Character, error) {
	if len(f.batches) == 0 {
		return nil, nil
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return b, nil
}

func (f *fakeCharacters) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	f.deleted = append(f.deleted, ids)
	return int64(len(ids)), nil
}

type fakeCredentials struct {
	batches [][]models.Credential
	deleted [][]string
}

func (f *fakeCredentials) ListDuplicateBatch(ctx context.Context, limit int) ([]models.Credential, error) {
	if len(f.batches) == 0 {
		return nil, nil
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return b, nil
}

func (f *fakeCredentials) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	f.deleted = append(f.deleted, ids)
	return int64(len(ids)), nil
}

type fakeAuthReqs struct {
	expired int64
}

func (f *fakeAuthReqs) CountExpired(ctx context.Context) (int64, error) { return f.expired, nil }

func (f *fakeAuthReqs) DeleteExpired(ctx context.Context) (int64, error) {
	n := f.expired
	f.expired = 0
	return n, nil
}

type finishCall struct {
	status   string
	examined int64
	changed  int64
	detail   string
}

type fakeRuns struct {
	created  []*models.Run
	finished map[string]finishCall
}

func (f *fakeRuns) Create(ctx context.Context, run *models.Run) error {
	run.Status = models.RunStatusRunning
	f.created = append(f.created, run)
	return nil
}

func (f *fakeRuns) Finish(ctx context.Context, id, status string, examined, changed int64, detail string) error {
	if f.finished == nil {
		f.finished = make(map[string]finishCall)
	}
	f.finished[id] = finishCall{status: status, examined: examined, changed: changed, detail: detail}
	return nil
}

func (f *fakeRuns) List(ctx context.Context, limit int) ([]models.Run, error) { return nil, nil }

type fakeManager struct {
	accounts     *fakeAccounts
	characters   *fakeCharacters
	credentials  *fakeCredentials
	authrequests *fakeAuthReqs
	runs         *fakeRuns
	migrated     bool
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		accounts:     &fakeAccounts{},
		characters:   &fakeCharacters{},
		credentials:  &fakeCredentials{},
		authrequests: &fakeAuthReqs{},
		runs:         &fakeRuns{},
	}
}

func (m *fakeManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	m.migrated = true
	return nil
}

func (m *fakeManager) Accounts(db dbx.DBTX) accounts.Repository { return m.accounts }

func (m *fakeManager) Characters(db dbx.DBTX) characters.Repository { return m.characters }

func (m *fakeManager) Credentials(db dbx.DBTX) credentials.Repository { return m.credentials }

func (m *fakeManager) AuthRequests(db dbx.DBTX) authrequests.Repository { return m.authrequests }

func (m *fakeManager) Runs(db dbx.DBTX) runs.Repository { return m.runs }

type sinkCall struct {
	task    string
	name    string
	payload []byte
}

type fakeSink struct {
	calls []sinkCall
	err   error
}

func (f *fakeSink) Store(ctx context.Context, task, name string, payload []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.calls = append(f.calls, sinkCall{task: task, name: name, payload: payload})
	return "s3://purged/authmaint/" + task + "/" + name + ".jsonl", nil
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newServiceWithMock(t *testing.T, m *fakeManager, sink archive.Sink, batchSize int) (*Service, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewService(db, m, sink, discardLogger(), batchSize), mock, db
}

// ---- tests ----

func TestRun_UnknownTask(t *testing.T) {
	m := newFakeManager()
	svc, _, db := newServiceWithMock(t, m, archive.NopSink{}, 100)
	defer db.Close()

	_, err := svc.Run(context.Background(), "defrag")
	assert.ErrorIs(t, err, common.ErrorUnknownTask)

	require.Len(t, m.runs.created, 1)
	finish := m.runs.finished[m.runs.created[0].ID]
	assert.Equal(t, models.RunStatusFailed, finish.status)
}

func TestRun_AuthReqs(t *testing.T) {
	m := newFakeManager()
	m.authrequests.expired = 7

	svc, mock, db := newServiceWithMock(t, m, archive.NopSink{}, 100)
	defer db.Close()

	// count and delete must run inside one transaction
	mock.ExpectBegin()
	mock.ExpectCommit()

	report, err := svc.Run(context.Background(), TaskAuthReqs)
	require.NoError(t, err)

	assert.Equal(t, int64(7), report.RowsExamined)
	assert.Equal(t, int64(7), report.RowsChanged)

	finish := m.runs.finished[report.RunID]
	assert.Equal(t, models.RunStatusOK, finish.status)
	assert.Equal(t, int64(7), finish.changed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_Delegates(t *testing.T) {
	m := newFakeManager()
	svc, _, db := newServiceWithMock(t, m, archive.NopSink{}, 100)
	defer db.Close()

	require.NoError(t, svc.RunMigrations(context.Background()))
	assert.True(t, m.migrated)
}

func TestIsDestructive(t *testing.T) {
	assert.False(t, IsDestructive(TaskCasefold))
	assert.True(t, IsDestructive(TaskOrphans))
	assert.True(t, IsDestructive(TaskDupKeys))
	assert.True(t, IsDestructive(TaskAuthReqs))
	assert.False(t, IsDestructive("defrag"))
}

func TestNames_Order(t *testing.T) {
	assert.Equal(t, []string{TaskCasefold, TaskOrphans, TaskDupKeys, TaskAuthReqs}, Names())
}
