package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/studygo-backend/internal/config"
)

func TestNewName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	tests := []struct {
		original string
		pattern  string
	}{
		{"photo.png", `^1700000000123_[0-9a-f]{8}\.png$`},
		{"archive.tar.gz", `^1700000000123_[0-9a-f]{8}\.gz$`},
		{"noext", `^1700000000123_[0-9a-f]{8}$`},
		{"../../etc/passwd.txt", `^1700000000123_[0-9a-f]{8}\.txt$`},
		{`C:\Users\me\avatar.JPG`, `^1700000000123_[0-9a-f]{8}\.JPG$`},
		{"weird.p/ng", `^1700000000123_[0-9a-f]{8}$`},
		{"evil.p;ng", `^1700000000123_[0-9a-f]{8}$`},
	}
	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			name, err := NewName(tt.original, now)
			require.NoError(t, err)
			assert.Regexp(t, regexp.MustCompile(tt.pattern), name)
			assert.True(t, ValidName(name))
		})
	}

	a, _ := NewName("x.png", now)
	b, _ := NewName("x.png", now)
	assert.NotEqual(t, a, b)
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("1700_abcd.png"))
	for _, bad := range []string{"", ".", "..", "../x", "a/b", `a\b`, "x..png"} {
		assert.False(t, ValidName(bad), bad)
	}
}

func TestLocal_SaveOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	l, err := NewLocal(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, l.Save(ctx, "f1.txt", strings.NewReader("hello"), 5, "text/plain"))

	rc, err := l.Open(ctx, "f1.txt")
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	onDisk, err := os.ReadFile(filepath.Join(dir, "f1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(onDisk))
}

func TestLocal_RefusesOverwriteAndTraversal(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, l.Save(ctx, "once.bin", strings.NewReader("a"), 1, ""))
	assert.Error(t, l.Save(ctx, "once.bin", strings.NewReader("b"), 1, ""))
	assert.ErrorIs(t, l.Save(ctx, "../escape.bin", strings.NewReader("c"), 1, ""), ErrInvalidName)

	_, err = l.Open(ctx, "missing.bin")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.Open(ctx, "../once.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewMinIO_RequiresEndpoint(t *testing.T) {
	_, err := NewMinIO(config.MinIOConfig{})
	assert.Error(t, err)

	m, err := NewMinIO(config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "studygo-uploads", m.bucket)
}
