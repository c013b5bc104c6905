package scorm

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// BuildPackage assembles the distributable archive: manifest, production
// player (no mock) and the raw video bytes, all at the zip root. The output
// is deterministic for identical inputs and timestamp.
func BuildPackage(in PackageInput, video io.Reader, buildTime time.Time) ([]byte, error) {
	player, err := SynthesizePlayer(in, false)
	if err != nil {
		return nil, fmt.Errorf("synthesize player: %w", err)
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	w, err := zw.Create(ManifestName)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, BuildManifest(in.Settings, buildTime)); err != nil {
		return nil, err
	}

	w, err = zw.Create(PlayerName)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, player); err != nil {
		return nil, err
	}

	w, err = zw.Create(VideoName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(w, video); err != nil {
		return nil, fmt.Errorf("copy video: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]`)

// PackageFilename derives the download name from the course title, reduced
// to [a-z0-9_] and tagged with the dialect.
func PackageFilename(in PackageInput) string {
	safe := unsafeFilename.ReplaceAllString(strings.ToLower(in.Settings.CourseTitle), "_")
	return fmt.Sprintf("%s_scorm_%s.zip", safe, in.Settings.ScormVersion)
}

// PreviewDocument renders the test-mode player with the video bound to a
// served asset URL instead of the packaged filename. This is the local-test
// path: the mock host is compiled in and every runtime call is logged to the
// console for inspection.
func PreviewDocument(in PackageInput, videoURL string) (string, error) {
	return synthesizePlayer(in, true, videoURL)
}
