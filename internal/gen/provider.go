// Package gen is the quiz-generation collaborator: one structured-output
// LLM call that turns video metadata (plus an optional transcript) into
// learning objectives and a fixed-size quiz bank. No retries; a malformed
// or incomplete response fails the call as a whole.
package gen

import (
	"context"
	"fmt"

	"github.com/v-scorm/scormgen/internal/course"
)

// BankSize is the number of questions every generation must return.
const BankSize = 20

// The difficulty split the prompt demands of the bank.
const (
	easyCount   = 10
	mediumCount = 7
	hardCount   = 3
)

type Request struct {
	FileName        string
	DurationSeconds float64
	Transcript      string // empty when no transcript was supplied
}

type Result struct {
	Objectives []string          `json:"learningObjectives"`
	QuizBank   []course.QuizItem `json:"quizBank"`
}

type Provider interface {
	GenerateCourse(ctx context.Context, req Request) (*Result, error)
}

// validateResult rejects the whole response on any structural defect:
// objective count outside 5-8, a bank that is not exactly BankSize items,
// or any item violating the quiz invariants.
func validateResult(r *Result) error {
	if len(r.Objectives) < 5 || len(r.Objectives) > 8 {
		return fmt.Errorf("expected 5-8 learning objectives, got %d", len(r.Objectives))
	}
	for i, o := range r.Objectives {
		if o == "" {
			return fmt.Errorf("objective %d is empty", i+1)
		}
	}
	if len(r.QuizBank) != BankSize {
		return fmt.Errorf("expected %d quiz questions, got %d", BankSize, len(r.QuizBank))
	}
	if err := course.ValidateQuiz(r.QuizBank); err != nil {
		return err
	}
	return nil
}
