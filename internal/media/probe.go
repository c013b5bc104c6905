// Package media specifies the video metadata extraction collaborator.
// Extraction itself (decode, thumbnail, duration) happens outside this
// service, in the authoring front end; the service only carries the result.
package media

import (
	"context"
	"errors"
	"io"
)

// Metadata is the extractor's output for one media blob. Failure yields a
// single generic error with no partial result.
type Metadata struct {
	AccessURL        string  `json:"accessURL"`
	ThumbnailDataURI string  `json:"thumbnailDataURI"`
	DurationSeconds  float64 `json:"durationSeconds"`
}

var ErrExtractFailed = errors.New("media: metadata extraction failed")

type Prober interface {
	Probe(ctx context.Context, r io.Reader, filename string) (Metadata, error)
}

// StaticProber answers every probe with a fixed result. It stands in for
// the external extractor in tests and offline wiring.
type StaticProber struct {
	Meta Metadata
	Err  error
}

func (p StaticProber) Probe(_ context.Context, _ io.Reader, _ string) (Metadata, error) {
	if p.Err != nil {
		return Metadata{}, ErrExtractFailed
	}
	return p.Meta, nil
}
