package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/events"
	"github.com/spec-kit/hris-service/internal/mail"
	"github.com/spec-kit/hris-service/internal/repository"
	apperrors "github.com/spec-kit/hris-service/pkg/util"
)

var fixedNow = time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func memory[T domain.Document](def repository.Definition[T]) repository.Provider[T] {
	return repository.Static(repository.NewMemoryRepository(def, nil, nil))
}

// eventLog captures every published event of the given types.
type eventLog struct {
	mu     sync.Mutex
	events []events.Event
}

func recordEvents(d events.Dispatcher, types ...events.EventType) *eventLog {
	log := &eventLog{}
	for _, t := range types {
		d.Subscribe(t, func(ctx context.Context, e events.Event) error {
			log.mu.Lock()
			defer log.mu.Unlock()
			log.events = append(log.events, e)
			return nil
		})
	}
	return log
}

func (l *eventLog) all() []events.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]events.Event(nil), l.events...)
}

type sentMail struct {
	to  string
	msg mail.Message
}

type fakeSender struct {
	mu     sync.Mutex
	result bool
	sent   []sentMail
}

func (s *fakeSender) Send(ctx context.Context, to string, msg mail.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMail{to: to, msg: msg})
	return s.result
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, code, de.Code, err.Error())
}
