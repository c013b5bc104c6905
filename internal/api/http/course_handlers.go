package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/v-scorm/scormgen/internal/course"
	"github.com/v-scorm/scormgen/internal/gen"
	"github.com/v-scorm/scormgen/internal/media"
	"github.com/v-scorm/scormgen/internal/storage"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func courseError(w http.ResponseWriter, err error) {
	if errors.Is(err, course.ErrNotFound) {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// POST /courses  { "title": "...", "settings": {...} }
func CreateCourseHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title    string           `json:"title"`
			Settings *course.Settings `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		s := course.Settings{
			ScormVersion: course.V12,
			NumQuestions: 10,
			PassingScore: 80,
		}
		if req.Settings != nil {
			s = *req.Settings
		}
		if s.CourseTitle == "" {
			s.CourseTitle = req.Title
		}
		if req.Title == "" {
			req.Title = s.CourseTitle
		}
		if err := course.ValidateSettings(s); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c := course.Course{
			ID:        uuid.NewString(),
			Title:     req.Title,
			Settings:  s,
			CreatedAt: time.Now().Unix(),
		}
		if err := store.PutCourse(c); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, c)
	}
}

// GET /courses
func ListCoursesHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := store.ListCourses()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if cs == nil {
			cs = []course.Course{}
		}
		writeJSON(w, cs)
	}
}

// GET /courses/{courseID}
func GetCourseHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := store.GetCourse(chi.URLParam(r, "courseID"))
		if err != nil {
			courseError(w, err)
			return
		}
		writeJSON(w, c)
	}
}

// DELETE /courses/{courseID}
func DeleteCourseHandler(store course.Store, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "courseID")
		c, err := store.GetCourse(id)
		if err != nil {
			courseError(w, err)
			return
		}
		if c.VideoKey != "" {
			if err := bs.Delete(c.VideoKey); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		if err := store.DeleteCourse(id); err != nil {
			courseError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /courses/{courseID}/video (multipart: file, optional duration/thumbnail
// from the client-side extractor)
func UploadVideoHandler(store course.Store, bs storage.BlobStore, prober media.Prober) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "courseID")
		c, err := store.GetCourse(id)
		if err != nil {
			courseError(w, err)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		key := path.Join("courses", id, "video.mp4")
		if _, err := bs.Put(key, f); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		meta := media.Metadata{
			ThumbnailDataURI: r.FormValue("thumbnail"),
		}
		if d := r.FormValue("duration"); d != "" {
			meta.DurationSeconds, _ = strconv.ParseFloat(d, 64)
		}
		if meta.DurationSeconds == 0 && prober != nil {
			rc, err := bs.Get(key)
			if err != nil {
				http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			probed, err := prober.Probe(r.Context(), rc, hdr.Filename)
			rc.Close()
			if err != nil {
				http.Error(w, "video metadata extraction failed", http.StatusBadGateway)
				return
			}
			meta.DurationSeconds = probed.DurationSeconds
			if meta.ThumbnailDataURI == "" {
				meta.ThumbnailDataURI = probed.ThumbnailDataURI
			}
		}

		c.VideoKey = key
		c.VideoName = hdr.Filename
		c.Thumbnail = meta.ThumbnailDataURI
		c.DurationSec = meta.DurationSeconds
		if err := store.PutCourse(c); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, c)
	}
}

// POST /courses/{courseID}/generate  { "transcript": "..." }
// Calls the generation collaborator once; its error is surfaced verbatim
// and the caller retries explicitly.
func GenerateQuizHandler(store course.Store, provider gen.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "courseID")
		c, err := store.GetCourse(id)
		if err != nil {
			courseError(w, err)
			return
		}
		if c.VideoKey == "" {
			http.Error(w, "course has no video", http.StatusConflict)
			return
		}
		var req struct {
			Transcript string `json:"transcript"`
		}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
		}
		res, err := provider.GenerateCourse(r.Context(), gen.Request{
			FileName:        c.VideoName,
			DurationSeconds: c.DurationSec,
			Transcript:      req.Transcript,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		c.Objectives = res.Objectives
		c.Quiz = res.QuizBank
		c.Settings.NumQuestions = course.CapQuestions(c.Settings.NumQuestions, len(c.Quiz))
		if err := store.PutCourse(c); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, c)
	}
}

// PUT /courses/{courseID}/quiz  [QuizItem...]
// Replaces the bank with the curated, reordered array: what is stored here
// is exactly what packaging consumes.
func UpdateQuizHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "courseID")
		c, err := store.GetCourse(id)
		if err != nil {
			courseError(w, err)
			return
		}
		var items []course.QuizItem
		if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := course.ValidateQuiz(items); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c.Quiz = items
		c.Settings.NumQuestions = course.CapQuestions(c.Settings.NumQuestions, len(items))
		if err := store.PutCourse(c); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, c)
	}
}

// PUT /courses/{courseID}/settings
func UpdateSettingsHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "courseID")
		c, err := store.GetCourse(id)
		if err != nil {
			courseError(w, err)
			return
		}
		var s course.Settings
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := course.ValidateSettings(s); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(c.Quiz) > 0 {
			s.NumQuestions = course.CapQuestions(s.NumQuestions, len(c.Quiz))
		}
		c.Settings = s
		c.Title = s.CourseTitle
		if err := store.PutCourse(c); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, c)
	}
}
