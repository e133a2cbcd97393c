package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeKey(t *testing.T) {
	key, err := ResumeKey("user-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "resumes/user-1/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	other, err := ResumeKey("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestLocalArchivePut(t *testing.T) {
	root := t.TempDir()
	a := NewLocalArchive(root)

	err := a.Put(context.Background(), "resumes/user-1/abc.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(root, "resumes", "user-1", "abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), got)
}
