package runtime

import "github.com/v-scorm/scormgen/internal/course"

// Dialect fixes the version-specific method and data-model names once at
// bind time. All client operations go through these names; no call site
// branches on the version afterwards.
type Dialect struct {
	Version course.Version

	// API method names
	Initialize string
	GetValue   string
	SetValue   string
	Commit     string
	Terminate  string

	// Data-model element keys
	LocationKey    string
	ScoreRawKey    string
	ScoreMaxKey    string
	ScoreMinKey    string
	ScoreScaledKey string // 2004 only
	StatusKey      string // lesson_status (1.2) / success_status (2004)
	CompletionKey  string // 2004 only
	ExitKey        string
}

// HasScaledScore reports whether the dialect carries a 0-1 scaled score and
// a separate completion status (the 2004 data model).
func (d Dialect) HasScaledScore() bool { return d.ScoreScaledKey != "" }

func DialectFor(v course.Version) Dialect {
	if v == course.V12 {
		return Dialect{
			Version:     course.V12,
			Initialize:  "LMSInitialize",
			GetValue:    "LMSGetValue",
			SetValue:    "LMSSetValue",
			Commit:      "LMSCommit",
			Terminate:   "LMSFinish",
			LocationKey: "cmi.core.lesson_location",
			ScoreRawKey: "cmi.core.score.raw",
			ScoreMaxKey: "cmi.core.score.max",
			ScoreMinKey: "cmi.core.score.min",
			StatusKey:   "cmi.core.lesson_status",
			ExitKey:     "cmi.core.exit",
		}
	}
	return Dialect{
		Version:        course.V2004,
		Initialize:     "Initialize",
		GetValue:       "GetValue",
		SetValue:       "SetValue",
		Commit:         "Commit",
		Terminate:      "Terminate",
		LocationKey:    "cmi.location",
		ScoreRawKey:    "cmi.score.raw",
		ScoreMaxKey:    "cmi.score.max",
		ScoreMinKey:    "cmi.score.min",
		ScoreScaledKey: "cmi.score.scaled",
		StatusKey:      "cmi.success_status",
		CompletionKey:  "cmi.completion_status",
		ExitKey:        "cmi.exit",
	}
}
