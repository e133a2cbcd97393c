package service

import (
	"path/filepath"
	"testing"

	"github.com/molliqajbedrush-arch/enerbewwer/db"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/security"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.New(db.Options{
		Driver: "sqlite",
		URL:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)

	t.Cleanup(func() { db.Close(conn) })

	return conn
}

// cheapArgon keeps hashing fast in tests
func cheapArgon() *security.ArgonHash {
	return &security.ArgonHash{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func newTestAccounts(t *testing.T) *Accounts {
	t.Helper()

	tokens, err := security.NewTokens("test-secret")
	require.NoError(t, err)

	a, err := NewAccounts(newTestDB(t), cheapArgon(), tokens)
	require.NoError(t, err)

	return a
}
