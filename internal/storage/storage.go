// Package storage holds uploaded files. Names are generated by the caller via
// NewName, so backends never see user-controlled paths.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidName = errors.New("invalid file name")
)

type Store interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// NewName builds "<unix millis>_<8 hex><ext>", keeping the original extension.
func NewName(original string, now time.Time) (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "_" + hex.EncodeToString(b[:]) + cleanExt(original), nil
}

func cleanExt(original string) string {
	ext := filepath.Ext(filepath.Base(strings.ReplaceAll(original, "\\", "/")))
	if len(ext) > 16 {
		return ""
	}
	for _, r := range ext[min(1, len(ext)):] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}

// ValidName rejects anything that could escape the upload namespace.
func ValidName(name string) bool {
	if name == "" || name == "." || strings.Contains(name, "..") {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
