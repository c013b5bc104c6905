package runtime

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/v-scorm/scormgen/internal/course"
)

func testBank(n int) []course.QuizItem {
	items := make([]course.QuizItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, course.QuizItem{
			Kind:          course.KindTrueFalse,
			Difficulty:    course.DifficultyEasy,
			Prompt:        fmt.Sprintf("Domanda %d", i+1),
			CorrectAnswer: "True",
		})
	}
	return items
}

func testSettings(n, passing int) course.Settings {
	return course.Settings{
		ScormVersion: course.V12,
		CourseTitle:  "Corso",
		NumQuestions: n,
		PassingScore: passing,
	}
}

func boundClient(t *testing.T, v course.Version) (*Client, *MockAPI) {
	t.Helper()
	api := quietMock()
	return Bind(chain(1, 1, api), v, false), api
}

// run answers every question with pick and submits.
func run(s *Session, pick func(i int) string) {
	s.Begin()
	s.StartQuiz()
	for i := 0; i < len(s.Quiz()); i++ {
		s.Select(pick(i))
		s.Next()
	}
}

func TestSessionPerfectRun(t *testing.T) {
	c, api := boundClient(t, course.V12)
	s := NewSession(c, testBank(10), testSettings(10, 80))

	run(s, func(int) string { return "True" })

	if s.Page() != PageResults {
		t.Fatalf("page = %q, want results", s.Page())
	}
	r := s.Grade()
	if r.Score != 10 || r.Total != 10 || r.Percentage != 100 || !r.Passed {
		t.Fatalf("results = %+v", r)
	}
	if got := api.Value("cmi.core.lesson_status"); got != "passed" {
		t.Fatalf("lesson_status = %q", got)
	}
	if got := api.Value("cmi.core.score.raw"); got != "10" {
		t.Fatalf("score.raw = %q", got)
	}
}

func TestSessionFailingRun(t *testing.T) {
	c, api := boundClient(t, course.V12)
	s := NewSession(c, testBank(10), testSettings(10, 80))

	// 7 of 10 correct: 70% < 80%.
	run(s, func(i int) string {
		if i < 7 {
			return "True"
		}
		return "False"
	})

	r := s.Grade()
	if r.Score != 7 || r.Percentage != 70 || r.Passed {
		t.Fatalf("results = %+v", r)
	}
	if got := api.Value("cmi.core.lesson_status"); got != "failed" {
		t.Fatalf("lesson_status = %q", got)
	}
}

func TestGradePassBoundary(t *testing.T) {
	// 4/5 = 80% meets an 80 threshold exactly.
	s := NewSession(nil, testBank(5), testSettings(5, 80))
	run(s, func(i int) string {
		if i == 0 {
			return "False"
		}
		return "True"
	})
	if r := s.Grade(); r.Percentage != 80 || !r.Passed {
		t.Fatalf("4/5 results = %+v, want 80%% passed", r)
	}

	// 11/14 rounds to 79%: the rounded percentage decides, not the ratio.
	s = NewSession(nil, testBank(14), testSettings(14, 80))
	run(s, func(i int) string {
		if i < 11 {
			return "True"
		}
		return "False"
	})
	if r := s.Grade(); r.Percentage != 79 || r.Passed {
		t.Fatalf("11/14 results = %+v, want 79%% failed", r)
	}
}

func TestGradeIsPure(t *testing.T) {
	s := NewSession(nil, testBank(5), testSettings(5, 60))
	run(s, func(int) string { return "True" })
	if a, b := s.Grade(), s.Grade(); a != b {
		t.Fatalf("grading not repeatable: %+v vs %+v", a, b)
	}
}

func TestSessionTruncatesBank(t *testing.T) {
	s := NewSession(nil, testBank(20), testSettings(5, 80))
	if got := len(s.Quiz()); got != 5 {
		t.Fatalf("delivered %d questions, want 5", got)
	}

	// Count above the bank falls back to the whole bank.
	s = NewSession(nil, testBank(7), testSettings(10, 80))
	if got := len(s.Quiz()); got != 7 {
		t.Fatalf("delivered %d questions, want 7", got)
	}
}

func TestShufflePreservesItems(t *testing.T) {
	settings := testSettings(10, 80)
	settings.RandomizeOrder = true
	s := NewSession(nil, testBank(10), settings, WithRand(rand.New(rand.NewSource(1))))
	s.Begin()
	s.StartQuiz()

	seen := map[string]bool{}
	for _, q := range s.Quiz() {
		seen[q.Prompt] = true
	}
	for i := 1; i <= 10; i++ {
		if !seen[fmt.Sprintf("Domanda %d", i)] {
			t.Fatalf("shuffle lost question %d", i)
		}
	}
}

func TestNavigationBounds(t *testing.T) {
	s := NewSession(nil, testBank(3), testSettings(3, 80))
	s.Begin()
	s.StartQuiz()

	s.Prev()
	if s.QuestionIndex() != 0 {
		t.Fatalf("Prev moved before the first question")
	}
	s.Next()
	s.Next()
	if s.QuestionIndex() != 2 {
		t.Fatalf("index = %d, want 2", s.QuestionIndex())
	}
	s.Prev()
	if s.QuestionIndex() != 1 {
		t.Fatalf("index = %d after Prev, want 1", s.QuestionIndex())
	}
	// Next on the last question submits; Select on results is ignored.
	s.Next()
	s.Next()
	if s.Page() != PageResults {
		t.Fatalf("page = %q, want results", s.Page())
	}
	s.Select("True")
	if _, ok := s.Answer(2); ok {
		t.Fatalf("answer recorded after submission")
	}
}

func TestUnansweredGradesIncorrect(t *testing.T) {
	s := NewSession(nil, testBank(4), testSettings(4, 50))
	s.Begin()
	s.StartQuiz()
	s.Select("True") // only question 1 answered
	for i := 0; i < 4; i++ {
		s.Next()
	}
	if r := s.Grade(); r.Score != 1 || r.Percentage != 25 || r.Passed {
		t.Fatalf("results = %+v, want 1/4 failed", r)
	}
}

func TestShortAnswerNeverCredited(t *testing.T) {
	bank := testBank(4)
	bank[3] = course.QuizItem{
		Kind:          course.KindShortAnswer,
		Difficulty:    course.DifficultyHard,
		Prompt:        "Riassumi il concetto principale.",
		CorrectAnswer: "sicurezza",
	}
	c, api := boundClient(t, course.V12)
	s := NewSession(c, bank, testSettings(4, 75))
	s.Begin()
	s.StartQuiz()

	// The delivered player renders no input for a short-answer question, so
	// nothing ever selects an answer for it; it can only grade incorrect.
	for i := 0; i < 3; i++ {
		s.Select("True")
		s.Next()
	}
	s.Next()

	r := s.Grade()
	if r.Score != 3 || r.Total != 4 || r.Percentage != 75 {
		t.Fatalf("results = %+v, want 3/4 at 75%%", r)
	}
	if !r.Passed {
		t.Fatalf("75%% must meet a 75 threshold")
	}
	if got := api.Value("cmi.core.score.raw"); got != "3" {
		t.Fatalf("score.raw = %q", got)
	}

	// Even a session that somehow collected the exact key string for every
	// other question cannot be credited for the uncollectable one.
	if _, ok := s.Answer(3); ok {
		t.Fatalf("short-answer question has a recorded answer")
	}
}

func TestSessionResumesPageOnly(t *testing.T) {
	api := quietMock()
	api.Seed("cmi.core.lesson_location", "quiz")
	c := Bind(chain(1, 1, api), course.V12, false)

	s := NewSession(c, testBank(10), testSettings(10, 80))
	if s.Page() != PageQuiz {
		t.Fatalf("page = %q, want quiz", s.Page())
	}
	if s.QuestionIndex() != 0 {
		t.Fatalf("resume must restart at question 1")
	}
	if _, ok := s.Answer(0); ok {
		t.Fatalf("resume must not carry answers")
	}
}

func TestSessionRecordsLocationTransitions(t *testing.T) {
	c, api := boundClient(t, course.V2004)
	s := NewSession(c, testBank(3), testSettings(3, 80))
	s.Begin()
	if got := api.Value("cmi.location"); got != "video" {
		t.Fatalf("location after Begin = %q", got)
	}
	s.StartQuiz()
	if got := api.Value("cmi.location"); got != "quiz" {
		t.Fatalf("location after StartQuiz = %q", got)
	}
}
