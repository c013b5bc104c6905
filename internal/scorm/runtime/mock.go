package runtime

import (
	"fmt"
	"log"
)

// Call records one invocation against the mock host.
type Call struct {
	Method string
	Args   []string
}

// MockAPI is the in-memory stand-in for a host LMS, compiled into test-mode
// players and used directly in headless sessions. It answers both dialects'
// method names, logs every call, and always reports success.
type MockAPI struct {
	data  map[string]string
	Calls []Call
	Quiet bool
}

func NewMockAPI() *MockAPI {
	return &MockAPI{data: map[string]string{}}
}

func (m *MockAPI) Invoke(method string, args ...string) (string, error) {
	m.Calls = append(m.Calls, Call{Method: method, Args: args})
	if !m.Quiet {
		log.Printf("mock lms: %s(%q)", method, args)
	}
	switch method {
	case "LMSInitialize", "Initialize", "LMSCommit", "Commit", "LMSFinish", "Terminate":
		return "true", nil
	case "LMSGetValue", "GetValue":
		if len(args) < 1 {
			return "", fmt.Errorf("%s: key required", method)
		}
		return m.data[args[0]], nil
	case "LMSSetValue", "SetValue":
		if len(args) < 2 {
			return "", fmt.Errorf("%s: key and value required", method)
		}
		m.data[args[0]] = args[1]
		return "true", nil
	default:
		return "", fmt.Errorf("unknown runtime method %q", method)
	}
}

// Value reads back a stored data-model element.
func (m *MockAPI) Value(key string) string { return m.data[key] }

// Seed preloads a data-model element, e.g. a stored lesson location.
func (m *MockAPI) Seed(key, value string) { m.data[key] = value }

// CallsTo returns the invocations of one method, in order.
func (m *MockAPI) CallsTo(method string) []Call {
	var out []Call
	for _, c := range m.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}
