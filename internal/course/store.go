package course

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("course not found")

type Store interface {
	PutCourse(c Course) error
	GetCourse(id string) (Course, error)
	ListCourses() ([]Course, error)
	DeleteCourse(id string) error
}

type memoryStore struct {
	mu      sync.RWMutex
	courses map[string]Course
	order   []string
}

func NewInMemoryStore() Store {
	return &memoryStore{courses: map[string]Course{}}
}

func (m *memoryStore) PutCourse(c Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[c.ID]; !ok {
		m.order = append(m.order, c.ID)
	}
	m.courses[c.ID] = c
	return nil
}

func (m *memoryStore) GetCourse(id string) (Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.courses[id]
	if !ok {
		return Course{}, ErrNotFound
	}
	return c, nil
}

func (m *memoryStore) ListCourses() ([]Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Course, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.courses[id])
	}
	return out, nil
}

func (m *memoryStore) DeleteCourse(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[id]; !ok {
		return ErrNotFound
	}
	delete(m.courses, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
