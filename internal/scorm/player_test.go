package scorm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/v-scorm/scormgen/internal/course"
)

func bank(n int) []course.QuizItem {
	items := make([]course.QuizItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, course.QuizItem{
			Kind:             course.KindTrueFalse,
			Difficulty:       course.DifficultyEasy,
			CognitiveLevel:   course.LevelRecall,
			Prompt:           fmt.Sprintf("Domanda %d", i+1),
			CorrectAnswer:    "True",
			RationaleCorrect: "Detto nel video.",
			SourceSpans:      []course.Span{{0, 10}},
			Tags:             []string{"test"},
		})
	}
	return items
}

func inputFor(v course.Version, numQuestions, bankSize int) PackageInput {
	s := settingsFor(v, "Corso di Prova")
	s.NumQuestions = numQuestions
	return PackageInput{
		Settings:    s,
		Objectives:  []string{"Obiettivo uno", "Obiettivo due"},
		Quiz:        bank(bankSize),
		Thumbnail:   "data:image/png;base64,AAAA",
		DurationSec: 300,
	}
}

func TestPlayerEmbedsExactlyNumQuestions(t *testing.T) {
	doc, err := SynthesizePlayer(inputFor(course.V12, 10, 20), false)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if got := strings.Count(doc, `"stem"`); got != 10 {
		t.Fatalf("embedded %d questions, want 10", got)
	}
}

func TestPlayerSmallerBankKeepsAllItems(t *testing.T) {
	doc, err := SynthesizePlayer(inputFor(course.V12, 10, 7), false)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if got := strings.Count(doc, `"stem"`); got != 7 {
		t.Fatalf("embedded %d questions, want 7", got)
	}
}

func TestPlayerTestModeCompilesMock(t *testing.T) {
	test, err := SynthesizePlayer(inputFor(course.V12, 10, 20), true)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if !strings.Contains(test, "class MockAPI") {
		t.Fatalf("test-mode player missing mock host")
	}

	prod, err := SynthesizePlayer(inputFor(course.V12, 10, 20), false)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if strings.Contains(prod, "MockAPI") {
		t.Fatalf("production player must not compile in the mock host")
	}
	if !strings.Contains(prod, "SCORM API not found") {
		t.Fatalf("production player must warn when no host is present")
	}
}

func TestPlayerDialectBinding(t *testing.T) {
	doc12, err := SynthesizePlayer(inputFor(course.V12, 10, 20), false)
	if err != nil {
		t.Fatalf("synthesize 1.2: %v", err)
	}
	for _, want := range []string{"LMSInitialize", "LMSSetValue", "LMSFinish", "cmi.core.lesson_location", "cmi.core.score.raw", "cmi.core.lesson_status", "cmi.core.exit"} {
		if !strings.Contains(doc12, want) {
			t.Fatalf("1.2 player missing %s", want)
		}
	}
	if strings.Contains(doc12, "cmi.score.scaled") {
		t.Fatalf("1.2 player must not write the scaled score")
	}

	doc2004, err := SynthesizePlayer(inputFor(course.V2004, 10, 20), false)
	if err != nil {
		t.Fatalf("synthesize 2004: %v", err)
	}
	for _, want := range []string{"cmi.location", "cmi.score.raw", "cmi.score.scaled", "cmi.success_status", "cmi.completion_status", "cmi.exit"} {
		if !strings.Contains(doc2004, want) {
			t.Fatalf("2004 player missing %s", want)
		}
	}
	if strings.Contains(doc2004, "LMSSetValue") {
		t.Fatalf("2004 player must not issue 1.2 method names")
	}
}

func TestPlayerShortAnswerHasNoInputAffordance(t *testing.T) {
	in := inputFor(course.V12, 5, 5)
	in.Quiz[2] = course.QuizItem{
		Kind:          course.KindShortAnswer,
		Difficulty:    course.DifficultyHard,
		Prompt:        "Riassumi il concetto principale.",
		CorrectAnswer: "sicurezza",
	}
	doc, err := SynthesizePlayer(in, false)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	// The item is delivered, but the quiz renderer only builds choices for
	// mcq and true/false; a short-answer question shows its stem with no
	// way to answer it.
	if !strings.Contains(doc, `"short_answer"`) {
		t.Fatalf("short-answer item missing from embedded data")
	}
	if strings.Contains(doc, "<input") || strings.Contains(doc, "<textarea") {
		t.Fatalf("player emits a text input affordance")
	}
}

func TestPlayerSelfContained(t *testing.T) {
	doc, err := SynthesizePlayer(inputFor(course.V2004, 10, 20), false)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if !strings.Contains(doc, "https://cdn.tailwindcss.com") {
		t.Fatalf("player missing the one styling CDN")
	}
	if !strings.Contains(doc, `src="video.mp4"`) {
		t.Fatalf("packaged player must reference the packaged video file")
	}
	if !strings.Contains(doc, "const courseData = {") {
		t.Fatalf("course data must be embedded as literal data")
	}
}

func TestPlayerDeterministic(t *testing.T) {
	in := inputFor(course.V2004, 10, 20)
	a, err := SynthesizePlayer(in, false)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	b, err := SynthesizePlayer(in, false)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if a != b {
		t.Fatalf("synthesis not deterministic for identical input")
	}
}

func TestPreviewDocumentBindsAssetURL(t *testing.T) {
	doc, err := PreviewDocument(inputFor(course.V12, 10, 20), "/assets/courses/c1/video.mp4")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(doc, `src="/assets/courses/c1/video.mp4"`) {
		t.Fatalf("preview player must bind the served video URL")
	}
	if !strings.Contains(doc, "class MockAPI") {
		t.Fatalf("preview player must compile in the mock host")
	}
}
