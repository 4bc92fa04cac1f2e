package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/proffreport/profreport-backend/internal/catalog"
	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/proffreport/profreport-backend/internal/repository"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu     sync.Mutex
	states map[string]model.WizardState
	locks  map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{states: map[string]model.WizardState{}, locks: map[string]bool{}}
}

func (m *memoryStore) Save(_ context.Context, st *model.WizardState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *st
	cp.Answers = model.Answers{}
	for k, v := range st.Answers {
		cp.Answers[k] = v
	}
	m.states[st.SessionID] = cp
	return nil
}

func (m *memoryStore) Load(_ context.Context, id string) (*model.WizardState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	cp := st
	cp.Answers = model.Answers{}
	for k, v := range st.Answers {
		cp.Answers[k] = v
	}
	return &cp, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
	delete(m.locks, id)
	return nil
}

func (m *memoryStore) AcquireSubmitLock(_ context.Context, id string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[id] {
		return false, nil
	}
	m.locks[id] = true
	return true, nil
}

func (m *memoryStore) ReleaseSubmitLock(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, id)
	return nil
}

func (m *memoryStore) locked(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locks[id]
}

type queued struct {
	queue string
	value any
}

type memoryQueue struct {
	mu   sync.Mutex
	jobs []queued
}

func (q *memoryQueue) Push(_ context.Context, queue string, v any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, queued{queue: queue, value: v})
	return nil
}

func (q *memoryQueue) all() []queued {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]queued(nil), q.jobs...)
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	likert := make([]model.Option, 0, 7)
	for _, v := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		likert = append(likert, model.Option{Label: "Оценка " + v, Value: model.OptionValue(v)})
	}

	cfg := &model.TestConfig{
		TestType: model.TestTypeSchool,
		Title:    "Тест для школьников",
		Price:    1490,
		Tariff:   model.TariffBasic,
		Sections: []model.Section{
			{
				ID:    "values",
				Title: "Ценности",
				Questions: []model.Question{
					{ID: "values_1", Question: "Стабильность", Type: model.QuestionTypeLikert, Options: likert},
				},
			},
			{
				ID:    "interests",
				Title: "Интересы",
				Questions: []model.Question{
					{ID: "riasec_2", Question: "Что ближе?", Type: model.QuestionTypeRadio, Options: []model.Option{
						{Label: "Чинить технику", Value: "r"},
						{Label: "Рисовать", Value: "a"},
					}},
					{ID: "klimov_3", Question: "С чем работать?", Type: model.QuestionTypeCheckbox, Options: []model.Option{
						{Label: "Природа", Value: "nature"},
						{Label: "Техника", Value: "tech"},
					}},
				},
			},
		},
	}

	c, err := catalog.New(nil, cfg)
	require.NoError(t, err)
	return c
}
