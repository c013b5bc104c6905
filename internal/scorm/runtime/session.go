package runtime

import (
	"math"
	"math/rand"
	"time"

	"github.com/v-scorm/scormgen/internal/course"
)

// Page is the renderer state of the synthesized player.
type Page string

const (
	PageStart   Page = "start"
	PageVideo   Page = "video"
	PageQuiz    Page = "quiz"
	PageResults Page = "results"
)

// Results is the graded outcome of one playback session.
type Results struct {
	Score      int
	Total      int
	Percentage int
	Passed     bool
}

// Session is the headless model of the player's page machine: the same
// transitions, answer recording and grading the synthesized document runs in
// the learner's browser. Driven entirely by learner events; single-threaded.
type Session struct {
	quiz     []course.QuizItem
	settings course.Settings
	client   *Client

	page      Page
	index     int
	answers   map[int]string
	startedAt time.Time

	rng *rand.Rand
	now func() time.Time
}

type SessionOption func(*Session)

// WithRand fixes the shuffle source, for reproducible randomized order.
func WithRand(r *rand.Rand) SessionOption { return func(s *Session) { s.rng = r } }

// WithClock fixes the session clock.
func WithClock(now func() time.Time) SessionOption { return func(s *Session) { s.now = now } }

// NewSession truncates the bank to the configured question count, restores a
// resumable location from the client, and starts at the start page otherwise.
// A resumed session still begins at question 1 with empty answers: only the
// page is persisted, not quiz progress.
func NewSession(client *Client, bank []course.QuizItem, settings course.Settings, opts ...SessionOption) *Session {
	n := settings.NumQuestions
	if n <= 0 || n > len(bank) {
		n = len(bank)
	}
	s := &Session{
		quiz:     append([]course.QuizItem(nil), bank[:n]...),
		settings: settings,
		client:   client,
		page:     PageStart,
		answers:  map[int]string{},
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.now().UnixNano()))
	}
	if client != nil {
		if p, ok := client.RestoreLocation(); ok {
			s.page = p
		}
	}
	return s
}

func (s *Session) Page() Page                { return s.page }
func (s *Session) QuestionIndex() int        { return s.index }
func (s *Session) Quiz() []course.QuizItem   { return s.quiz }
func (s *Session) Settings() course.Settings { return s.settings }

// Answer returns the learner's recorded answer for question i.
func (s *Session) Answer(i int) (string, bool) {
	a, ok := s.answers[i]
	return a, ok
}

func (s *Session) setPage(p Page) {
	s.page = p
	if s.client != nil {
		s.client.RecordLocation(p)
	}
}

// Begin moves start -> video.
func (s *Session) Begin() {
	if s.page == PageStart {
		s.setPage(PageVideo)
	}
}

// StartQuiz moves video -> quiz, shuffling the delivered order when
// configured. Item identities survive the shuffle.
func (s *Session) StartQuiz() {
	if s.page != PageVideo {
		return
	}
	if s.settings.RandomizeOrder {
		s.rng.Shuffle(len(s.quiz), func(i, j int) {
			s.quiz[i], s.quiz[j] = s.quiz[j], s.quiz[i]
		})
	}
	s.startedAt = s.now()
	s.setPage(PageQuiz)
}

// Select records the learner's answer for the current question. Short-answer
// questions have no input affordance in the delivered player, so nothing
// calls Select for them there; they grade as incorrect.
func (s *Session) Select(answer string) {
	if s.page != PageQuiz {
		return
	}
	s.answers[s.index] = answer
}

// Prev steps back one question.
func (s *Session) Prev() {
	if s.page == PageQuiz && s.index > 0 {
		s.index--
	}
}

// Next advances one question; on the last question it submits instead.
// There is no way past the last question without submitting.
func (s *Session) Next() {
	if s.page != PageQuiz {
		return
	}
	if s.index < len(s.quiz)-1 {
		s.index++
		return
	}
	s.submit()
}

func (s *Session) submit() {
	r := s.Grade()
	if s.client != nil {
		s.client.RecordScore(r.Score, r.Total, r.Passed)
	}
	s.setPage(PageResults)
}

// Grade computes the session outcome by exact string equality against each
// item's answer key. Pure: calling it twice on the same answers yields the
// same result.
func (s *Session) Grade() Results {
	score := 0
	for i, q := range s.quiz {
		if s.answers[i] == q.CorrectAnswer {
			score++
		}
	}
	total := len(s.quiz)
	pct := 0
	if total > 0 {
		pct = int(math.Round(100 * float64(score) / float64(total)))
	}
	return Results{
		Score:      score,
		Total:      total,
		Percentage: pct,
		Passed:     pct >= s.settings.PassingScore,
	}
}

// Finish closes out the runtime conversation, best effort.
func (s *Session) Finish() {
	if s.client != nil {
		s.client.Finish()
	}
}
