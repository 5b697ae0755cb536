package api

import (
	"context"
	"errors"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/errs"
	"github.com/natakamm/My-Art-Gallery-BE/storage"
)

// maxUploadBytes bounds a whole multipart upload form.
const maxUploadBytes = 32 << 20

// saveUpload streams one multipart file into the blob store and returns its
// public URL together with the key needed to roll it back.
func saveUpload(ctx context.Context, store storage.Store, prefix string, fh *multipart.FileHeader) (url, key string, err error) {
	f, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	key = prefix + "/" + uuid.NewString() + strings.ToLower(path.Ext(fh.Filename))
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err = store.Put(ctx, key, contentType, f)
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}

// saveUploads stores a batch; on failure the already-stored blobs are
// removed before the error is returned.
func saveUploads(ctx context.Context, store storage.Store, prefix string, fhs []*multipart.FileHeader) (urls, keys []string, err error) {
	for _, fh := range fhs {
		url, key, err := saveUpload(ctx, store, prefix, fh)
		if err != nil {
			for _, k := range keys {
				_ = store.Delete(ctx, k)
			}
			return nil, nil, err
		}
		urls = append(urls, url)
		keys = append(keys, key)
	}
	return urls, keys, nil
}

// rollbackUploads compensates a failed database write that followed a
// successful blob upload. The blob store and the database are separate
// systems with no shared transaction: when the compensating delete itself
// fails, the orphaned blob is a reportable inconsistency and the original
// error is upgraded to a PartialUpdate instead of being silently narrowed.
// Both failures stay in the cause chain so the log shows what triggered the
// rollback and why it could not complete.
func rollbackUploads(ctx context.Context, store storage.Store, keys []string, orig error) error {
	for _, key := range keys {
		if derr := store.Delete(ctx, key); derr != nil {
			e := errs.PartialUpdate("update failed and an uploaded image could not be rolled back",
				errors.Join(orig, derr))
			e.Details = "orphaned blob: " + key
			return e
		}
	}
	return orig
}
