package runtime

import (
	"fmt"
	"log"

	"github.com/v-scorm/scormgen/internal/course"
)

// HostAPI is the runtime object an LMS exposes to its content frame. Calls
// use the raw version-specific method names; DialectFor picks which names a
// client issues.
type HostAPI interface {
	Invoke(method string, args ...string) (string, error)
}

// Window models one browsing context in the frame hierarchy the player is
// launched into. Discovery walks Parent chains and falls back to Opener.
type Window interface {
	API() HostAPI
	Parent() Window
	Opener() Window
}

// MaxAPIHops bounds discovery to seven windows per chain so a misconfigured
// frame loop cannot hang the player. An API further up stays undiscovered.
const MaxAPIHops = 7

// findAPI walks a parent chain looking for a host API, visiting at most
// MaxAPIHops windows.
func findAPI(win Window) HostAPI {
	for hops := 0; win != nil; hops++ {
		if hops >= MaxAPIHops {
			log.Printf("scorm: runtime API search abandoned, frames nested too deeply")
			return nil
		}
		if api := win.API(); api != nil {
			return api
		}
		win = win.Parent()
	}
	return nil
}

// Discover searches the window itself and its parents, then the opener and
// its parents. First found wins.
func Discover(win Window) HostAPI {
	if win == nil {
		return nil
	}
	if api := findAPI(win); api != nil {
		return api
	}
	if op := win.Opener(); op != nil {
		return findAPI(op)
	}
	return nil
}

// Client is the SCO side of the SCORM runtime conversation. It is bound to
// at most one host API for its lifetime; when no host was found every
// operation is a no-op, and no host fault ever escapes the client.
type Client struct {
	api        HostAPI
	d          Dialect
	terminated bool
}

// Bind discovers a host API starting at win and initializes the session.
// In test mode a missing host is replaced by a MockAPI; otherwise the client
// stays unbound and only logs a warning.
func Bind(win Window, v course.Version, testMode bool) *Client {
	c := &Client{d: DialectFor(v)}
	c.api = Discover(win)
	if c.api == nil {
		if !testMode {
			log.Printf("scorm: runtime API not found; progress will not be reported")
			return c
		}
		c.api = NewMockAPI()
	}
	c.call(c.d.Initialize, "")
	return c
}

// Bound reports whether a host (real or mock) answered discovery.
func (c *Client) Bound() bool { return c.api != nil }

// Dialect returns the adapter fixed at bind time.
func (c *Client) Dialect() Dialect { return c.d }

// call swallows every host fault: a learner is never blocked by a
// reporting failure.
func (c *Client) call(method string, args ...string) string {
	if c.api == nil || c.terminated {
		return ""
	}
	v, err := c.api.Invoke(method, args...)
	if err != nil {
		log.Printf("scorm: %s failed: %v", method, err)
		return ""
	}
	return v
}

// RecordLocation stores the current page under the dialect's location key.
// Best effort; location tracking is advisory.
func (c *Client) RecordLocation(page Page) {
	c.call(c.d.SetValue, c.d.LocationKey, string(page))
}

// RestoreLocation reads the stored location. Only start, video and quiz are
// resumable; results is never restored because the answers behind it are not
// persisted.
func (c *Client) RestoreLocation() (Page, bool) {
	switch p := Page(c.call(c.d.GetValue, c.d.LocationKey)); p {
	case PageStart, PageVideo, PageQuiz:
		return p, true
	default:
		return "", false
	}
}

// RecordScore reports the graded outcome and commits, then flags the session
// for suspension. The 2004 dialect additionally carries the scaled score and
// a split success/completion status.
func (c *Client) RecordScore(raw, max int, passed bool) {
	if c.api == nil {
		return
	}
	c.call(c.d.SetValue, c.d.ScoreRawKey, fmt.Sprintf("%d", raw))
	c.call(c.d.SetValue, c.d.ScoreMaxKey, fmt.Sprintf("%d", max))
	c.call(c.d.SetValue, c.d.ScoreMinKey, "0")
	status := "failed"
	if passed {
		status = "passed"
	}
	if c.d.HasScaledScore() {
		scaled := 0.0
		if max > 0 {
			scaled = float64(raw) / float64(max)
		}
		c.call(c.d.SetValue, c.d.ScoreScaledKey, fmt.Sprintf("%g", scaled))
		c.call(c.d.SetValue, c.d.StatusKey, status)
		c.call(c.d.SetValue, c.d.CompletionKey, "completed")
	} else {
		c.call(c.d.SetValue, c.d.StatusKey, status)
	}
	c.call(c.d.Commit, "")
	c.call(c.d.SetValue, c.d.ExitKey, "suspend")
}

// Finish terminates the runtime conversation. Safe to call more than once.
func (c *Client) Finish() {
	if c.api == nil || c.terminated {
		return
	}
	c.call(c.d.Terminate, "")
	c.terminated = true
}
