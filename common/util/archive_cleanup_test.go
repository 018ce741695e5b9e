package util

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveObjectName(t *testing.T) {
	at := time.Date(2025, time.May, 2, 13, 4, 5, 0, time.FixedZone("ICT", 7*3600))
	const stamp = "archives/s-1/20250502T060405Z/"

	tests := []struct {
		name      string
		sessionID string
		filename  string
		expect    string
	}{
		{"plain", "s-1", "certificates-Intro-to-Testing.zip", stamp + "certificates-Intro-to-Testing.zip"},
		{"parent segments", "s-1", "certificates-x/../../../../evil.zip", stamp + "evil.zip"},
		{"backslashes", "s-1", `..\..\evil.zip`, stamp + "evil.zip"},
		{"absolute", "s-1", "/evil.zip", stamp + "evil.zip"},
		{"only dots", "s-1", "..", stamp + "archive.zip"},
		{"empty", "s-1", "", stamp + "archive.zip"},
		{"session escapes", "../..", "certificates-A.zip", "archives/session/20250502T060405Z/certificates-A.zip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			object := ArchiveObjectName(tt.sessionID, tt.filename, at)
			assert.Equal(t, tt.expect, object)
			assert.True(t, strings.HasPrefix(object, ArchivePrefix+"/"))
		})
	}
}

func TestCleanupArchives(t *testing.T) {
	now := time.Date(2025, time.May, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	store := NewMockArchiveStore()
	uploads := []struct {
		name string
		age  time.Duration
	}{
		{"archives/s-1/a/certificates-A.zip", 72 * time.Hour},
		{"archives/s-2/b/certificates-B.zip", 25 * time.Hour},
		{"archives/s-3/c/certificates-C.zip", time.Hour},
		{"other/keep.zip", 100 * time.Hour},
	}
	for _, u := range uploads {
		stamp := now.Add(-u.age)
		store.Now = func() time.Time { return stamp }
		_, err := store.Upload(ctx, u.name, []byte("zip"), "application/zip")
		require.NoError(t, err)
	}

	removed := CleanupArchives(ctx, store, 24*time.Hour, now)
	assert.Equal(t, 2, removed)
	assert.Contains(t, store.Uploaded, "archives/s-3/c/certificates-C.zip")
	assert.Contains(t, store.Uploaded, "other/keep.zip")
	assert.NotContains(t, store.Uploaded, "archives/s-1/a/certificates-A.zip")
	assert.Len(t, store.Uploaded, 2)
}

func TestCleanupArchives_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("listing fails", func(t *testing.T) {
		store := NewMockArchiveStore()
		store.ListBeforeFunc = func(ctx context.Context, prefix string, cutoff time.Time) ([]string, error) {
			return nil, errors.New("bucket unavailable")
		}
		assert.Equal(t, 0, CleanupArchives(ctx, store, time.Hour, time.Now()))
	})

	t.Run("one delete fails", func(t *testing.T) {
		store := NewMockArchiveStore()
		store.ListBeforeFunc = func(ctx context.Context, prefix string, cutoff time.Time) ([]string, error) {
			assert.Equal(t, "archives/", prefix)
			return []string{"archives/a.zip", "archives/b.zip"}, nil
		}
		var deleted []string
		store.DeleteFunc = func(ctx context.Context, objectName string) error {
			if objectName == "archives/a.zip" {
				return errors.New("denied")
			}
			deleted = append(deleted, objectName)
			return nil
		}
		assert.Equal(t, 1, CleanupArchives(ctx, store, time.Hour, time.Now()))
		assert.Equal(t, []string{"archives/b.zip"}, deleted)
	})
}
