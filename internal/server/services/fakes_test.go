package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cybervault/internal/common"
	"github.com/dmitrijs2005/cybervault/internal/cryptox"
	"github.com/dmitrijs2005/cybervault/internal/dbx"
	"github.com/dmitrijs2005/cybervault/internal/server/models"
	"github.com/dmitrijs2005/cybervault/internal/server/repositories/recovery"
	"github.com/dmitrijs2005/cybervault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cybervault/internal/server/repositories/vault"
	"github.com/fernet/fernet-go"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// -------- test fakes --------

type fakeRecoveryRepo struct {
	mu      sync.Mutex
	records map[string]*models.RecoveryRecord
	upserts int
	gets    int

	upsertErr error
	getErr    error
}

func newFakeRecoveryRepo() *fakeRecoveryRepo {
	return &fakeRecoveryRepo{records: map[string]*models.RecoveryRecord{}}
}

func (f *fakeRecoveryRepo) Upsert(ctx context.Context, email, q, a string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records[email] = &models.RecoveryRecord{Email: email, SecurityQuestionCiphertext: q, SecurityAnswerCiphertext: a}
	return nil
}

func (f *fakeRecoveryRepo) Get(ctx context.Context, email string) (*models.RecoveryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.records[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *r
	return &c, nil
}

type fakeVaultRepo struct {
	blob string

	getErr    error
	lockErr   error
	putErr    error
	putCalled bool
}

func (f *fakeVaultRepo) Get(ctx context.Context) (*models.VaultBlob, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &models.VaultBlob{Blob: f.blob}, nil
}

func (f *fakeVaultRepo) GetForUpdate(ctx context.Context) (string, error) {
	if f.lockErr != nil {
		return "", f.lockErr
	}
	return f.blob, nil
}

func (f *fakeVaultRepo) Put(ctx context.Context, blob string) error {
	f.putCalled = true
	if f.putErr != nil {
		return f.putErr
	}
	f.blob = blob
	return nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	r *fakeRecoveryRepo
	v *fakeVaultRepo
}

func (m *fakeRepoManager) Recovery(db dbx.DBTX) recovery.Repository { return m.r }
func (m *fakeRepoManager) Vault(db dbx.DBTX) vault.Repository       { return m.v }

type sentMail struct {
	To, Subject, Body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return f.err
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeArchiver struct {
	blobs []string
	err   error
}

func (f *fakeArchiver) Archive(ctx context.Context, blob string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.blobs = append(f.blobs, blob)
	return "vault/2024/01/01/x.blob", nil
}

// -------- helpers --------

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newEngine(t *testing.T) *cryptox.Engine {
	t.Helper()
	var k fernet.Key
	require.NoError(t, k.Generate())
	e, err := cryptox.NewEngine(&k)
	require.NoError(t, err)
	return e
}
