package http

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/v-scorm/scormgen/internal/course"
	"github.com/v-scorm/scormgen/internal/scorm"
	"github.com/v-scorm/scormgen/internal/storage"
)

// GET /courses/{courseID}/package
// Builds the distributable archive and serves it as a download. No partial
// archive survives a failed build.
func PackageHandler(store course.Store, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := store.GetCourse(chi.URLParam(r, "courseID"))
		if err != nil {
			courseError(w, err)
			return
		}
		if c.VideoKey == "" {
			http.Error(w, "course has no video", http.StatusConflict)
			return
		}
		if len(c.Quiz) == 0 {
			http.Error(w, "course has no quiz", http.StatusConflict)
			return
		}
		video, err := bs.Get(c.VideoKey)
		if err != nil {
			http.Error(w, "video not found: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer video.Close()

		in := scorm.InputFromCourse(c)
		pkg, err := scorm.BuildPackage(in, video, time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		name := scorm.PackageFilename(in)
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
		http.ServeContent(w, r, name, time.Now(), bytesReader(pkg))
	}
}

// GET /courses/{courseID}/preview
// Serves the test-mode player (mock host compiled in) with the video bound
// to the course's asset URL. Fails loudly when the course cannot be played.
func PreviewHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := store.GetCourse(chi.URLParam(r, "courseID"))
		if err != nil {
			courseError(w, err)
			return
		}
		if c.VideoKey == "" {
			http.Error(w, "course has no video", http.StatusConflict)
			return
		}
		if len(c.Quiz) == 0 {
			http.Error(w, "course has no quiz", http.StatusConflict)
			return
		}
		doc, err := scorm.PreviewDocument(scorm.InputFromCourse(c), "/assets/"+c.VideoKey)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, doc)
	}
}

func bytesReader(b []byte) io.ReadSeeker {
	return bytes.NewReader(b)
}
