package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/domain"
)

// watchBuffer of one gives Watch replay-latest semantics: a watcher that
// stops draining keeps only the most recent value, a draining watcher sees
// every change in commit order.
const watchBuffer = 1

// Store owns session state. It is the single writer: login commits, logout
// clears, everything else reads snapshots via Get or subscribes via Watch.
type Store struct {
	storage Storage
	logger  *zap.Logger

	mu       sync.Mutex
	watchers map[string][]*watcher
}

type watcher struct {
	ch chan *Session
}

// NewStore builds a session store on top of the given durable storage.
func NewStore(storage Storage, logger *zap.Logger) *Store {
	return &Store{
		storage:  storage,
		logger:   logger,
		watchers: make(map[string][]*watcher),
	}
}

// Get returns the session stored under token, or nil when none exists. A
// blob that fails to deserialize is deleted and reported as absent rather
// than surfaced as an error; the stored role is re-normalized so legacy
// spellings restore canonically.
func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}
	return s.load(ctx, token)
}

func (s *Store) load(ctx context.Context, token string) (*Session, error) {
	data, err := s.storage.Read(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("discarding corrupt session", zap.Error(err))
		_ = s.storage.Delete(ctx, token)
		return nil, nil
	}
	sess.Role = domain.NormalizeRole(sess.RawRole)
	return &sess, nil
}

// Commit replaces the session stored under token and notifies watchers.
// The durable write happens before any watcher observes the new value, so
// no partial state is visible between Commit and the next Get.
func (s *Store) Commit(ctx context.Context, token string, sess *Session) error {
	if sess.RawRole == "" {
		sess.RawRole = string(sess.Role)
	}
	sess.Role = domain.NormalizeRole(sess.RawRole)

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.storage.Write(ctx, token, data); err != nil {
		return err
	}
	s.notify(token, sess)
	return nil
}

// Clear removes the session under token and notifies watchers with nil.
// Clearing an absent session is a successful no-op.
func (s *Store) Clear(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.storage.Delete(ctx, token); err != nil {
		return err
	}
	s.notify(token, nil)
	return nil
}

// Watch streams the session under token: the current value is delivered
// immediately on subscription, then every subsequent Commit or Clear, in
// commit order. All watchers of a token observe the same sequence. The
// channel closes when ctx ends.
func (s *Store) Watch(ctx context.Context, token string) <-chan *Session {
	w := &watcher{ch: make(chan *Session, watchBuffer)}

	// Registration and the replay of the current snapshot happen under the
	// same lock as notify, so a concurrent Commit cannot slip between them.
	s.mu.Lock()
	current, err := s.load(ctx, token)
	if err != nil {
		current = nil
	}
	w.ch <- current
	s.watchers[token] = append(s.watchers[token], w)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.drop(token, w)
	}()
	return w.ch
}

func (s *Store) notify(token string, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.watchers[token] {
		select {
		case w.ch <- sess:
		default:
			// Slow watcher: replace the undelivered value with the latest.
			select {
			case <-w.ch:
			default:
			}
			select {
			case w.ch <- sess:
			default:
			}
		}
	}
}

func (s *Store) drop(token string, target *watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.watchers[token][:0]
	for _, w := range s.watchers[token] {
		if w != target {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		delete(s.watchers, token)
	} else {
		s.watchers[token] = kept
	}
	close(target.ch)
}
