package course

import (
	"errors"
	"fmt"
)

var questionCounts = []int{5, 10, 15, 20}

// ValidateSettings rejects settings outside the authoring contract.
func ValidateSettings(s Settings) error {
	if s.ScormVersion != V12 && s.ScormVersion != V2004 {
		return fmt.Errorf("unsupported scorm version %q", s.ScormVersion)
	}
	if s.CourseTitle == "" {
		return errors.New("course title required")
	}
	ok := false
	for _, n := range questionCounts {
		if s.NumQuestions == n {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("numQuestions must be one of 5, 10, 15, 20; got %d", s.NumQuestions)
	}
	if s.PassingScore < 0 || s.PassingScore > 100 {
		return fmt.Errorf("passingScore must be 0-100; got %d", s.PassingScore)
	}
	if s.AttemptLimit < 0 {
		return fmt.Errorf("attemptLimit must be >= 0; got %d", s.AttemptLimit)
	}
	return nil
}

// CapQuestions returns the largest selectable question count that does not
// exceed both the requested count and the bank size. A bank smaller than the
// smallest selectable count caps at the bank size itself.
func CapQuestions(requested, bankSize int) int {
	capped := 0
	for _, n := range questionCounts {
		if n <= requested && n <= bankSize {
			capped = n
		}
	}
	if capped == 0 {
		if bankSize < requested {
			return bankSize
		}
		return requested
	}
	return capped
}

// ValidateItem enforces the per-item invariants: options present iff
// multiple-choice, the correct answer well-formed for the kind, and sane
// source spans.
func ValidateItem(q QuizItem) error {
	switch q.Kind {
	case KindMultipleChoice, KindTrueFalse, KindShortAnswer:
	default:
		return fmt.Errorf("unknown question type %q", q.Kind)
	}
	switch q.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("unknown difficulty %q", q.Difficulty)
	}
	switch q.CognitiveLevel {
	case LevelRecall, LevelUnderstand, LevelApply:
	default:
		return fmt.Errorf("unknown cognitive level %q", q.CognitiveLevel)
	}
	if q.Prompt == "" {
		return errors.New("question stem required")
	}

	if q.Kind == KindMultipleChoice {
		if len(q.Options) == 0 {
			return errors.New("mcq requires choices")
		}
		for label := range q.Options {
			if len(label) != 1 || label[0] < 'A' || label[0] > 'D' {
				return fmt.Errorf("choice label %q outside A-D", label)
			}
		}
		if _, ok := q.Options[q.CorrectAnswer]; !ok {
			return fmt.Errorf("correct answer %q is not a choice label", q.CorrectAnswer)
		}
	} else if len(q.Options) != 0 {
		return fmt.Errorf("choices not allowed for %s", q.Kind)
	}

	switch q.Kind {
	case KindTrueFalse:
		if q.CorrectAnswer != "True" && q.CorrectAnswer != "False" {
			return fmt.Errorf(`true/false answer must be "True" or "False"; got %q`, q.CorrectAnswer)
		}
	case KindShortAnswer:
		if q.CorrectAnswer == "" {
			return errors.New("short answer key required")
		}
	}

	for _, sp := range q.SourceSpans {
		if sp[0] < 0 || sp[1] < sp[0] {
			return fmt.Errorf("bad source span [%v, %v]", sp[0], sp[1])
		}
	}
	return nil
}

// ValidateQuiz validates every item, reporting the first defect by index.
func ValidateQuiz(items []QuizItem) error {
	for i, q := range items {
		if err := ValidateItem(q); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}
