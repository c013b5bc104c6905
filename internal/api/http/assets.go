package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/v-scorm/scormgen/internal/storage"
)

// MountAssets serves stored blobs (course videos) for the authoring UI and
// the preview player. Uploads go through the course video endpoint.
func MountAssets(r chi.Router, bs storage.BlobStore) {
	// GET /assets/*  -> the blob at whatever follows /assets/
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		key = strings.TrimPrefix(key, "/")
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found: "+err.Error(), http.StatusNotFound)
			return
		}
		defer rc.Close()
		ct := "application/octet-stream"
		if strings.HasSuffix(key, ".mp4") {
			ct = "video/mp4"
		}
		w.Header().Set("Content-Type", ct)
		_, _ = io.Copy(w, rc)
	})
}
