package scorm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/v-scorm/scormgen/internal/course"
	"github.com/v-scorm/scormgen/internal/scorm/runtime"
)

// PackageInput is the immutable tuple both the manifest builder and the
// player synthesizer consume for one build.
type PackageInput struct {
	Settings    course.Settings
	Objectives  []string
	Quiz        []course.QuizItem
	Thumbnail   string // data URI for the start page
	DurationSec float64
}

// InputFromCourse snapshots an authoring session for packaging.
func InputFromCourse(c course.Course) PackageInput {
	return PackageInput{
		Settings:    c.Settings,
		Objectives:  c.Objectives,
		Quiz:        c.Quiz,
		Thumbnail:   c.Thumbnail,
		DurationSec: c.DurationSec,
	}
}

// SynthesizePlayer renders the single self-contained SCO document: embedded
// course data, the runtime client wired to load/unload, and the four-page
// renderer. Test mode compiles in the mock host; production packages omit it
// so a missing LMS API is a loud warning rather than a silent mock.
func SynthesizePlayer(in PackageInput, testMode bool) (string, error) {
	return synthesizePlayer(in, testMode, VideoName)
}

func synthesizePlayer(in PackageInput, testMode bool, videoSrc string) (string, error) {
	quiz := in.Quiz
	if n := in.Settings.NumQuestions; n > 0 && n < len(quiz) {
		quiz = quiz[:n]
	}
	objectives := in.Objectives
	if objectives == nil {
		objectives = []string{}
	}

	oj, err := json.Marshal(objectives)
	if err != nil {
		return "", fmt.Errorf("marshal objectives: %w", err)
	}
	qj, err := json.Marshal(quiz)
	if err != nil {
		return "", fmt.Errorf("marshal quiz: %w", err)
	}
	sj, err := json.Marshal(in.Settings)
	if err != nil {
		return "", fmt.Errorf("marshal settings: %w", err)
	}
	tj, err := json.Marshal(in.Settings.CourseTitle)
	if err != nil {
		return "", fmt.Errorf("marshal title: %w", err)
	}

	d := runtime.DialectFor(in.Settings.ScormVersion)
	var buf bytes.Buffer
	err = playerTmpl.Execute(&buf, playerData{
		Title:      in.Settings.CourseTitle,
		TitleJSON:  string(tj),
		Objectives: string(oj),
		Quiz:       string(qj),
		Settings:   string(sj),
		Duration:   in.DurationSec,
		Thumbnail:  in.Thumbnail,
		VideoSrc:   videoSrc,
		TestMode:   testMode,
		D:          d,
		Is2004:     d.HasScaledScore(),
		MaxHops:    runtime.MaxAPIHops,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

type playerData struct {
	Title      string
	TitleJSON  string
	Objectives string
	Quiz       string
	Settings   string
	Duration   float64
	Thumbnail  string
	VideoSrc   string
	TestMode   bool
	D          runtime.Dialect
	Is2004     bool
	MaxHops    int
}

// The document is generated from one typed template rather than string
// concatenation; it still has no runtime dependency beyond the styling CDN.
var playerTmpl = template.Must(template.New("player").Parse(playerHTML))

const playerHTML = `<!DOCTYPE html>
<html lang="it">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <style>
      body { font-family: sans-serif; }
      .quiz-choice:hover { background-color: #f0f0f0; }
      .quiz-choice.selected { background-color: #dbeafe; border-color: #3b82f6; }
    </style>
</head>
<body class="bg-gray-100">

    <script type="text/javascript">
{{if .TestMode}}
      // In-memory LMS stand-in, compiled in for local testing only.
      class MockAPI {
        constructor() { this.data = {}; console.log("Mock LMS initialized."); }
        LMSInitialize() { console.log('LMSInitialize("")'); return "true"; }
        Initialize() { console.log('Initialize("")'); return "true"; }
        LMSGetValue(key) { console.log('LMSGetValue("' + key + '") ->', this.data[key] || ""); return this.data[key] || ""; }
        GetValue(key) { return this.LMSGetValue(key); }
        LMSSetValue(key, value) { console.log('LMSSetValue("' + key + '", "' + value + '")'); this.data[key] = value; return "true"; }
        SetValue(key, value) { return this.LMSSetValue(key, value); }
        LMSCommit() { console.log('LMSCommit("")'); return "true"; }
        Commit() { return this.LMSCommit(); }
        LMSFinish() { console.log('LMSFinish("")'); return "true"; }
        Terminate() { return this.LMSFinish(); }
      }
{{end}}
      // Runtime client: discovers the host API once and adapts every
      // operation to the {{.D.Version}} dialect. No host fault escapes it.
      function createRuntimeClient() {
        function findAPI(win) {
          var hops = 0;
          while (win) {
            if (hops >= {{.MaxHops}}) { console.warn("SCORM API search abandoned: frames nested too deeply."); return null; }
            if (win.API) return win.API;
            if (!win.parent || win.parent === win) break;
            win = win.parent;
            hops++;
          }
          return null;
        }
        var api = findAPI(window);
        if (!api && window.opener) api = findAPI(window.opener);
        if (!api) {
{{if .TestMode}}
          api = new MockAPI();
          console.log("Using mock LMS runtime for testing.");
{{else}}
          console.warn("SCORM API not found; progress will not be reported.");
{{end}}
        }
        if (api) { try { api.{{.D.Initialize}}(""); } catch (e) { console.warn("Initialize failed:", e); } }
        function safeSet(key, value) {
          if (!api) return;
          try { api.{{.D.SetValue}}(key, value); } catch (e) { console.warn("SetValue failed:", e); }
        }
        return {
          bound: !!api,
          recordLocation: function(page) { safeSet("{{.D.LocationKey}}", page); },
          restoreLocation: function() {
            if (!api) return null;
            var loc = "";
            try { loc = api.{{.D.GetValue}}("{{.D.LocationKey}}"); } catch (e) { return null; }
            return (loc === "start" || loc === "video" || loc === "quiz") ? loc : null;
          },
          recordScore: function(raw, max, passed) {
            if (!api) return;
            safeSet("{{.D.ScoreRawKey}}", String(raw));
            safeSet("{{.D.ScoreMaxKey}}", String(max));
            safeSet("{{.D.ScoreMinKey}}", "0");
{{if .Is2004}}
            safeSet("{{.D.ScoreScaledKey}}", String(max > 0 ? raw / max : 0));
            safeSet("{{.D.StatusKey}}", passed ? "passed" : "failed");
            safeSet("{{.D.CompletionKey}}", "completed");
{{else}}
            safeSet("{{.D.StatusKey}}", passed ? "passed" : "failed");
{{end}}
            try { api.{{.D.Commit}}(""); } catch (e) { console.warn("Commit failed:", e); }
            safeSet("{{.D.ExitKey}}", "suspend");
          },
          finish: function() {
            if (!api) return;
            try { api.{{.D.Terminate}}(""); } catch (e) {}
          }
        };
      }
    </script>

    <div id="app" class="max-w-4xl mx-auto p-4 sm:p-8"></div>

    <script type="text/javascript">
      const courseData = {
        title: {{.TitleJSON}},
        objectives: {{.Objectives}},
        quiz: {{.Quiz}},
        settings: {{.Settings}},
        duration: {{.Duration}}
      };

      function createPlayer(courseData, client) {
        const app = document.getElementById('app');
        let currentPage = 'start';
        let currentQuestionIndex = 0;
        let userAnswers = {};
        let quizStartTime;

        function render() {
          if (currentPage === 'start') renderStartPage();
          else if (currentPage === 'video') renderVideoPage();
          else if (currentPage === 'quiz') renderQuizPage();
          else if (currentPage === 'results') renderResultsPage();
        }

        function setPage(page) {
          currentPage = page;
          client.recordLocation(page);
          render();
        }

        function renderStartPage() {
          app.innerHTML = ` + "`" + `
            <div class="bg-white p-8 rounded-lg shadow-lg text-center">
              <h1 class="text-3xl font-bold mb-2">${courseData.title}</h1>
              <img src="{{.Thumbnail}}" alt="Course thumbnail" class="mx-auto my-4 rounded-md w-1/2"/>
              <p class="text-gray-600 mb-4">Durata: ${Math.ceil(courseData.duration/60)} minuti</p>
              <h2 class="text-xl font-semibold mb-2">Obiettivi di Apprendimento</h2>
              <ul class="text-left list-disc list-inside mb-6">
                ${courseData.objectives.map(o => ` + "`" + `<li>${o}</li>` + "`" + `).join('')}
              </ul>
              <button onclick="player.begin()" class="bg-blue-600 text-white px-8 py-3 rounded-md font-semibold hover:bg-blue-700">Inizia Corso</button>
            </div>
          ` + "`" + `;
        }

        function renderVideoPage() {
          app.innerHTML = ` + "`" + `
            <div class="bg-white p-8 rounded-lg shadow-lg">
              <h1 class="text-3xl font-bold mb-4">${courseData.title}</h1>
              <video controls src="{{.VideoSrc}}" class="w-full rounded-md mb-6"></video>
              <div class="flex justify-end">
                <button onclick="player.startQuiz()" class="bg-blue-600 text-white px-8 py-3 rounded-md font-semibold hover:bg-blue-700">Inizia Quiz</button>
              </div>
            </div>
          ` + "`" + `;
        }

        function renderQuizPage() {
          const q = courseData.quiz[currentQuestionIndex];
          let choicesHTML = '';
          if (q.type === 'mcq') {
            choicesHTML = Object.entries(q.choices).map(([key, value]) => ` + "`" + `
              <div onclick="player.select('${key}')" class="quiz-choice border-2 border-gray-300 p-4 rounded-md cursor-pointer" data-choice="${key}">
                <strong>${key}.</strong> ${value}
              </div>
            ` + "`" + `).join('');
          } else if (q.type === 'true_false') {
            choicesHTML = ['True', 'False'].map(val => ` + "`" + `
              <div onclick="player.select('${val}')" class="quiz-choice border-2 border-gray-300 p-4 rounded-md cursor-pointer" data-choice="${val}">${val}</div>
            ` + "`" + `).join('');
          }

          app.innerHTML = ` + "`" + `
            <div class="bg-white p-8 rounded-lg shadow-lg">
              <p class="text-gray-600 mb-2">Domanda ${currentQuestionIndex + 1} di ${courseData.quiz.length}</p>
              <p class="text-xl font-semibold mb-6">${q.stem}</p>
              <div class="space-y-4">${choicesHTML}</div>
              <div class="mt-8 flex justify-between">
                <button ${currentQuestionIndex === 0 ? 'disabled' : ''} onclick="player.prev()" class="bg-gray-200 px-6 py-2 rounded-md disabled:opacity-50">Indietro</button>
                <button onclick="player.next()" class="bg-blue-600 text-white px-6 py-2 rounded-md">${currentQuestionIndex === courseData.quiz.length - 1 ? 'Invia Risposte' : 'Avanti'}</button>
              </div>
            </div>
          ` + "`" + `;

          if (userAnswers[currentQuestionIndex] !== undefined) {
            const selected = app.querySelector('[data-choice="' + userAnswers[currentQuestionIndex] + '"]');
            if (selected) selected.classList.add('selected');
          }
        }

        function grade() {
          let score = 0;
          courseData.quiz.forEach((q, i) => {
            if (userAnswers[i] === q.correct_answer) score++;
          });
          const total = courseData.quiz.length;
          const percentage = total > 0 ? Math.round((score / total) * 100) : 0;
          return { score: score, total: total, percentage: percentage, passed: percentage >= courseData.settings.passingScore };
        }

        function submitQuiz() {
          const r = grade();
          client.recordScore(r.score, r.total, r.passed);
          setPage('results');
        }

        function renderResultsPage() {
          const r = grade();
          app.innerHTML = ` + "`" + `
            <div class="bg-white p-8 rounded-lg shadow-lg text-center">
              <h1 class="text-3xl font-bold mb-4">Quiz Completato!</h1>
              <p class="text-5xl font-bold ${r.passed ? 'text-green-600' : 'text-red-600'}">${r.percentage}%</p>
              <p class="text-gray-600 mb-6">Hai ottenuto un punteggio di ${r.score} su ${r.total}</p>
              <div class="w-full bg-gray-200 rounded-full h-4 mb-4">
                <div class="${r.passed ? 'bg-green-500' : 'bg-red-500'} h-4 rounded-full" style="width: ${r.percentage}%"></div>
              </div>
              ${r.passed
                ? '<p class="text-lg text-green-700">Congratulazioni, hai superato il test!</p>'
                : '<p class="text-lg text-red-700">Non hai raggiunto il punteggio di superamento del ' + courseData.settings.passingScore + '%.</p>'}
            </div>
          ` + "`" + `;
        }

        return {
          begin: function() { setPage('video'); },
          startQuiz: function() {
            if (courseData.settings.randomizeOrder) {
              courseData.quiz.sort(() => Math.random() - 0.5);
            }
            quizStartTime = new Date();
            setPage('quiz');
          },
          select: function(answer) {
            userAnswers[currentQuestionIndex] = answer;
            document.querySelectorAll('.quiz-choice').forEach(el => el.classList.remove('selected'));
            const selectedEl = document.querySelector('[data-choice="' + answer + '"]');
            if (selectedEl) selectedEl.classList.add('selected');
          },
          next: function() {
            if (currentQuestionIndex < courseData.quiz.length - 1) {
              currentQuestionIndex++;
              renderQuizPage();
            } else {
              submitQuiz();
            }
          },
          prev: function() {
            if (currentQuestionIndex > 0) {
              currentQuestionIndex--;
              renderQuizPage();
            }
          },
          start: function() {
            const loc = client.restoreLocation();
            if (loc) currentPage = loc;
            render();
          }
        };
      }

      var client = null;
      var player = null;
      window.addEventListener('load', function() {
        client = createRuntimeClient();
        player = createPlayer(courseData, client);
        player.start();
      });
      window.addEventListener('beforeunload', function() {
        if (client) client.finish();
      });
    </script>
</body>
</html>
`
