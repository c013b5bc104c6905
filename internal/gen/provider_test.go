package gen

import (
	"context"
	"testing"

	"github.com/v-scorm/scormgen/internal/course"
)

func TestMockProviderContract(t *testing.T) {
	res, err := NewMockProvider().GenerateCourse(context.Background(), Request{
		FileName:        "lezione.mp4",
		DurationSeconds: 300,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(res.Objectives) < 5 || len(res.Objectives) > 8 {
		t.Fatalf("objectives = %d", len(res.Objectives))
	}
	if len(res.QuizBank) != BankSize {
		t.Fatalf("bank = %d items, want %d", len(res.QuizBank), BankSize)
	}

	counts := map[course.Difficulty]int{}
	for _, q := range res.QuizBank {
		counts[q.Difficulty]++
	}
	if counts[course.DifficultyEasy] != 10 || counts[course.DifficultyMedium] != 7 || counts[course.DifficultyHard] != 3 {
		t.Fatalf("difficulty split %v, want 10/7/3", counts)
	}

	for i, q := range res.QuizBank {
		if len(q.SourceSpans) == 0 || q.SourceSpans[0][1] > 300 {
			t.Fatalf("question %d span outside the video: %v", i+1, q.SourceSpans)
		}
	}
	if err := course.ValidateQuiz(res.QuizBank); err != nil {
		t.Fatalf("bank fails quiz invariants: %v", err)
	}
}

func TestValidateResult(t *testing.T) {
	good := func(t *testing.T) *Result {
		t.Helper()
		r, err := NewMockProvider().GenerateCourse(context.Background(), Request{FileName: "v.mp4", DurationSeconds: 60})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		return r
	}

	r := good(t)
	if err := validateResult(r); err != nil {
		t.Fatalf("valid result rejected: %v", err)
	}

	r = good(t)
	r.Objectives = r.Objectives[:4]
	if err := validateResult(r); err == nil {
		t.Fatalf("too few objectives: expected error")
	}

	r = good(t)
	r.Objectives = append(r.Objectives, "a", "b", "c", "d")
	if err := validateResult(r); err == nil {
		t.Fatalf("too many objectives: expected error")
	}

	r = good(t)
	r.Objectives[2] = ""
	if err := validateResult(r); err == nil {
		t.Fatalf("empty objective: expected error")
	}

	r = good(t)
	r.QuizBank = r.QuizBank[:19]
	if err := validateResult(r); err == nil {
		t.Fatalf("short bank: expected error")
	}

	r = good(t)
	r.QuizBank[4].CorrectAnswer = "Maybe" // a true/false item
	if err := validateResult(r); err == nil {
		t.Fatalf("invalid item: expected error")
	}
}

func TestFactorySelectsProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Fatalf("provider is %T, want *MockProvider", p)
	}
	if _, err := NewProvider(context.Background(), Config{Provider: "clippy"}); err == nil {
		t.Fatalf("unknown provider: expected error")
	}
}
