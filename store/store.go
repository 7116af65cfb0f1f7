// Package store holds the café's live state: the menu catalog, the contact
// inbox and the single admin session. Everything lives in memory and is lost
// when the process exits.
package store

import (
	"sync"
	"time"

	"brewbliss/models"
)

// DefaultLoadingDelay is how long the store reports itself as loading after Initialize.
const DefaultLoadingDelay = 800 * time.Millisecond

// Store is safe for concurrent use. Every mutation swaps in a new slice, so a
// snapshot handed to a reader is never modified afterwards.
type Store struct {
	mu       sync.RWMutex
	menu     []models.MenuItem
	messages []models.ContactMessage
	session  *models.User
	loading  bool
	started  bool

	seed  []models.MenuItem
	delay time.Duration
	ready chan struct{}
}

type Option func(*Store)

// WithLoadingDelay overrides DefaultLoadingDelay. A zero or negative delay
// finishes loading inside Initialize.
func WithLoadingDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// New returns an uninitialised store. It reports loading until Initialize
// has run and its delay has passed.
func New(opts ...Option) *Store {
	s := &Store{
		loading: true,
		seed:    SeedMenu(),
		delay:   DefaultLoadingDelay,
		ready:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize seeds the catalog and starts the loading timer. Later calls do nothing.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.menu = append(cloneItems(s.menu), cloneItems(s.seed)...)
	s.loading = true
	if s.delay <= 0 {
		s.finishLocked()
		return
	}
	time.AfterFunc(s.delay, s.finishLoading)
}

func (s *Store) finishLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishLocked()
}

func (s *Store) finishLocked() {
	if !s.loading {
		return
	}
	s.loading = false
	close(s.ready)
}

// Ready is closed once loading has finished.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ListMenuItems returns the catalog, most recently added first.
func (s *Store) ListMenuItems() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.menu)
}

// AddMenuItem puts item at the front of the catalog. The caller assigns the
// id; nothing about the item is validated here.
func (s *Store) AddMenuItem(item models.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.MenuItem, 0, len(s.menu)+1)
	next = append(next, item)
	s.menu = append(next, s.menu...)
}

// DeleteMenuItem drops every item with the given id. A miss is not an error.
func (s *Store) DeleteMenuItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.MenuItem, 0, len(s.menu))
	for _, item := range s.menu {
		if item.ID != id {
			next = append(next, item)
		}
	}
	s.menu = next
}

// Login makes email the admin session, replacing whoever was there. There is
// no credential check.
func (s *Store) Login(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &models.User{Email: email, Role: models.RoleAdmin}
}

func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// Session reports the current user, if any.
func (s *Store) Session() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return models.User{}, false
	}
	return *s.session, true
}

// ListMessages returns the inbox, newest first.
func (s *Store) ListMessages() []models.ContactMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ContactMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// AddMessage puts msg at the front of the inbox. Id and date come from the caller.
func (s *Store) AddMessage(msg models.ContactMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.ContactMessage, 0, len(s.messages)+1)
	next = append(next, msg)
	s.messages = append(next, s.messages...)
}

// SetAnalysis attaches a classification to the message with the given id,
// leaving its place in the inbox unchanged. It reports whether the message
// was found.
func (s *Store) SetAnalysis(id string, a models.Analysis) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, msg := range s.messages {
		if msg.ID != id {
			continue
		}
		next := make([]models.ContactMessage, len(s.messages))
		copy(next, s.messages)
		next[i] = msg.WithAnalysis(a)
		s.messages = next
		return true
	}
	return false
}

// Counts returns the catalog and inbox sizes.
func (s *Store) Counts() (items, messages int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.menu), len(s.messages)
}

func cloneItems(items []models.MenuItem) []models.MenuItem {
	out := make([]models.MenuItem, len(items))
	copy(out, items)
	return out
}
