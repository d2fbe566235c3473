package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/docchat"
	"github.com/fwojciec/docchat/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure UploadStore implements docchat.UploadStore at compile time.
var _ docchat.UploadStore = (*fs.UploadStore)(nil)

func TestUploadPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{
			name:     "plain name",
			filename: "report.pdf",
			want:     "uploads/report.pdf",
		},
		{
			name:     "strips directories",
			filename: "../../etc/passwd",
			want:     "uploads/passwd",
		},
		{
			name:     "strips windows client path",
			filename: `C:\Users\me\Documents\report.pdf`,
			want:     "uploads/report.pdf",
		},
		{
			name:     "keeps spaces inside name",
			filename: "annual report.pdf",
			want:     "uploads/annual report.pdf",
		},
		{
			name:     "rejects dot-dot",
			filename: "..",
			wantErr:  true,
		},
		{
			name:     "rejects bare slash",
			filename: "/",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.UploadPath("uploads", tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, docchat.EINVALID, docchat.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestNewUploadStore_CreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	store, err := fs.NewUploadStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestUploadStore_SaveUpload(t *testing.T) {
	t.Parallel()

	t.Run("writes file under its base name", func(t *testing.T) {
		t.Parallel()

		store, err := fs.NewUploadStore(t.TempDir())
		require.NoError(t, err)

		path, err := store.SaveUpload(context.Background(), "doc.pdf", strings.NewReader("%PDF-1.4 body"))

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(store.Dir(), "doc.pdf"), path)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 body", string(content))
	})

	t.Run("last write wins for the same name", func(t *testing.T) {
		t.Parallel()

		store, err := fs.NewUploadStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.SaveUpload(context.Background(), "doc.pdf", strings.NewReader("first"))
		require.NoError(t, err)
		path, err := store.SaveUpload(context.Background(), "doc.pdf", strings.NewReader("second"))
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "second", string(content))
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		t.Parallel()

		store, err := fs.NewUploadStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.SaveUpload(context.Background(), "doc.pdf", strings.NewReader("data"))
		require.NoError(t, err)

		entries, err := os.ReadDir(store.Dir())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "doc.pdf", entries[0].Name())
	})

	t.Run("rejects empty file name", func(t *testing.T) {
		t.Parallel()

		store, err := fs.NewUploadStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.SaveUpload(context.Background(), "", strings.NewReader("data"))

		require.Error(t, err)
		assert.Equal(t, docchat.EINVALID, docchat.ErrorCode(err))
	})

	t.Run("stops on canceled context", func(t *testing.T) {
		t.Parallel()

		store, err := fs.NewUploadStore(t.TempDir())
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = store.SaveUpload(ctx, "doc.pdf", strings.NewReader("data"))

		require.ErrorIs(t, err, context.Canceled)
		_, statErr := os.Stat(filepath.Join(store.Dir(), "doc.pdf"))
		assert.True(t, os.IsNotExist(statErr))
	})
}
