package course

// Kind is the assessment type of a quiz item.
type Kind string

const (
	KindMultipleChoice Kind = "mcq"
	KindTrueFalse      Kind = "true_false"
	KindShortAnswer    Kind = "short_answer"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type CognitiveLevel string

const (
	LevelRecall     CognitiveLevel = "recall"
	LevelUnderstand CognitiveLevel = "understand"
	LevelApply      CognitiveLevel = "apply"
)

// Span is a (start, end) pair in seconds into the source video.
type Span [2]float64

// QuizItem is one assessment unit. Items are produced by the generation
// collaborator, edited by the author, and read-only at playback.
type QuizItem struct {
	Kind               Kind              `json:"type"`
	Difficulty         Difficulty        `json:"difficulty"`
	CognitiveLevel     CognitiveLevel    `json:"cognitive_level"`
	Prompt             string            `json:"stem"`
	Options            map[string]string `json:"choices,omitempty"` // label (A-D) -> text, mcq only
	CorrectAnswer      string            `json:"correct_answer"`
	RationaleCorrect   string            `json:"rationale_correct"`
	RationaleIncorrect map[string]string `json:"rationale_incorrect,omitempty"`
	SourceSpans        []Span            `json:"source_timestamps"`
	Tags               []string          `json:"tags"`
}

// Version selects one of the two supported SCORM dialects.
type Version string

const (
	V12   Version = "1.2"
	V2004 Version = "2004"
)

// Settings is the authoring configuration carried into the package build.
type Settings struct {
	ScormVersion   Version `json:"scormVersion"`
	CourseTitle    string  `json:"courseTitle"`
	NumQuestions   int     `json:"numQuestions"` // 5|10|15|20, capped by bank size
	RandomizeOrder bool    `json:"randomizeOrder"`
	PassingScore   int     `json:"passingScore"` // percent, 0-100
	AttemptLimit   int     `json:"attemptLimit"` // 0 = unlimited
}

// Course is one authoring session: uploaded media metadata plus the
// generated-then-curated objectives and quiz bank.
type Course struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Settings    Settings   `json:"settings"`
	Objectives  []string   `json:"objectives"`
	Quiz        []QuizItem `json:"quiz"`
	VideoKey    string     `json:"video_key,omitempty"`
	VideoName   string     `json:"video_name,omitempty"` // original upload filename
	Thumbnail   string     `json:"thumbnail,omitempty"` // data URI
	DurationSec float64    `json:"duration_sec"`
	CreatedAt   int64      `json:"created_at,omitempty"`
	UpdatedAt   int64      `json:"updated_at,omitempty"`
}
