package gen

import (
	"context"
	"fmt"

	"github.com/v-scorm/scormgen/internal/course"
)

// MockProvider returns a deterministic bank with the contract's difficulty
// split. Useful for tests and offline development.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (MockProvider) GenerateCourse(_ context.Context, req Request) (*Result, error) {
	out := &Result{
		Objectives: []string{
			"Riconoscere i concetti principali del video",
			"Descrivere il processo illustrato",
			"Applicare il metodo a un caso nuovo",
			"Identificare gli errori comuni",
			"Riassumere i punti chiave",
		},
	}
	difficulties := make([]course.Difficulty, 0, BankSize)
	for i := 0; i < easyCount; i++ {
		difficulties = append(difficulties, course.DifficultyEasy)
	}
	for i := 0; i < mediumCount; i++ {
		difficulties = append(difficulties, course.DifficultyMedium)
	}
	for i := 0; i < hardCount; i++ {
		difficulties = append(difficulties, course.DifficultyHard)
	}
	levels := []course.CognitiveLevel{course.LevelRecall, course.LevelUnderstand, course.LevelApply}

	span := course.Span{0, req.DurationSeconds}
	for i, d := range difficulties {
		q := course.QuizItem{
			Difficulty:       d,
			CognitiveLevel:   levels[i%len(levels)],
			Prompt:           fmt.Sprintf("Domanda %d su %q", i+1, req.FileName),
			RationaleCorrect: "Risposta indicata nel video.",
			SourceSpans:      []course.Span{span},
			Tags:             []string{"video", "quiz"},
		}
		switch i % 3 {
		case 0:
			q.Kind = course.KindMultipleChoice
			q.Options = map[string]string{"A": "Opzione A", "B": "Opzione B", "C": "Opzione C", "D": "Opzione D"}
			q.CorrectAnswer = "B"
			q.RationaleIncorrect = map[string]string{"A": "Non pertinente", "C": "Non pertinente", "D": "Non pertinente"}
		case 1:
			q.Kind = course.KindTrueFalse
			q.CorrectAnswer = "True"
		default:
			q.Kind = course.KindShortAnswer
			q.CorrectAnswer = "risposta"
		}
		out.QuizBank = append(out.QuizBank, q)
	}

	if err := validateResult(out); err != nil {
		return nil, err
	}
	return out, nil
}
