package ingest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataroomhq/dataroom/pkg/filetype"
	"github.com/dataroomhq/dataroom/pkg/ingest"
	"github.com/dataroomhq/dataroom/pkg/objectpath"
	"github.com/dataroomhq/dataroom/pkg/storage"
)

func newTestService(t *testing.T) (*ingest.Service, storage.Storage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return ingest.NewService(store), store
}

func TestService_Ingest(t *testing.T) {
	ctx := context.Background()
	pdf := []byte("%PDF-1.4\nsome document body")

	t.Run("stores validated upload at content-addressed path", func(t *testing.T) {
		svc, store := newTestService(t)

		res, err := svc.Ingest(ctx, ingest.Request{
			Data:         pdf,
			Filename:     "Q3 report.pdf",
			DeclaredMIME: "application/pdf",
			Metadata:     map[string]string{"tenant": "acme"},
		})

		require.NoError(t, err)
		assert.Equal(t, objectpath.Digest(pdf), res.Digest)
		assert.Equal(t, res.Digest[0:2]+"/"+res.Digest[2:4]+"/"+res.Digest+".pdf", res.Path)
		assert.Equal(t, filetype.CategoryDocument, res.Validation.Category)
		assert.NotEmpty(t, res.UploadID)

		got, err := store.Retrieve(ctx, res.Path)
		require.NoError(t, err)
		assert.Equal(t, pdf, got)
	})

	t.Run("identical content lands on the identical path", func(t *testing.T) {
		svc, _ := newTestService(t)

		first, err := svc.Ingest(ctx, ingest.Request{Data: pdf, Filename: "a.pdf"})
		require.NoError(t, err)

		second, err := svc.Ingest(ctx, ingest.Request{Data: pdf, Filename: "b.pdf"})
		require.NoError(t, err)

		assert.Equal(t, first.Path, second.Path)
		assert.NotEqual(t, first.UploadID, second.UploadID)
	})

	t.Run("rejection stores nothing", func(t *testing.T) {
		svc, store := newTestService(t)

		_, err := svc.Ingest(ctx, ingest.Request{
			Data:         pdf,
			Filename:     "payload.exe",
			DeclaredMIME: "application/pdf",
		})
		require.ErrorIs(t, err, filetype.ErrDisallowedType)

		// Nothing reached the backend: the content-addressed path for
		// these bytes must not exist.
		digest := objectpath.Digest(pdf)
		path, pathErr := objectpath.StoragePath(digest, ".pdf", "")
		require.NoError(t, pathErr)

		ok, existsErr := store.Exists(ctx, path)
		require.NoError(t, existsErr)
		assert.False(t, ok)
	})

	t.Run("empty upload rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Ingest(ctx, ingest.Request{Filename: "empty.txt"})
		assert.ErrorIs(t, err, ingest.ErrEmptyUpload)
	})
}

func TestService_RetrieveAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	res, err := svc.Ingest(ctx, ingest.Request{
		Data:     []byte("plain text notes"),
		Filename: "notes.txt",
	})
	require.NoError(t, err)

	got, err := svc.Retrieve(ctx, res.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("plain text notes"), got)

	require.NoError(t, svc.Delete(ctx, res.Path))
	require.NoError(t, svc.Delete(ctx, res.Path), "delete is idempotent")

	_, err = svc.Retrieve(ctx, res.Path)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
