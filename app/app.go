// Package app composes the store with its collaborators and side channels.
// Handlers mutate state only through App methods so every change fans out
// to events, the live feed, the archive and the admin chat the same way.
package app

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"brewbliss/config"
	"brewbliss/filemgr"
	"brewbliss/gemini"
	"brewbliss/live"
	"brewbliss/middleware"
	"brewbliss/models"
	"brewbliss/mq"
	"brewbliss/ratelim"
	"brewbliss/store"
)

// TextGenerator is the generative-text collaborator. Implementations never fail.
type TextGenerator interface {
	GenerateDescription(ctx context.Context, itemName, ingredients string) string
	AnalyzeMessage(ctx context.Context, message string) models.Analysis
}

type Archiver interface {
	SaveMessage(ctx context.Context, msg models.ContactMessage) error
}

type Notifier interface {
	NotifyMessage(msg models.ContactMessage) error
}

type App struct {
	Config   config.Config
	Store    *store.Store
	AI       TextGenerator
	Events   mq.Emitter
	Archive  Archiver
	Notifier Notifier
	Hub      *live.Hub
	Photos   *filemgr.Photos
	Sessions *middleware.Sessions
	Logger   *log.Logger

	ContactLimiter  *ratelim.RateLimiter
	DescribeLimiter *ratelim.RateLimiter

	tasks   sync.WaitGroup
	closers []io.Closer
	stop    chan struct{}
	once    sync.Once
}

// New wires st with defaults derived from cfg: a keyless text generator
// (fallbacks only), log-only events and a running live hub. Build replaces
// them with real backends.
func New(cfg config.Config, st *store.Store, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	a := &App{
		Config:          cfg,
		Store:           st,
		AI:              gemini.New("", gemini.WithLogger(logger)),
		Events:          mq.LogEmitter{Logger: logger},
		Hub:             live.NewHub(logger),
		Photos:          filemgr.NewPhotos(cfg.UploadDir, logger),
		Sessions:        middleware.NewSessions(cfg.JWTSecret, cfg.SessionTTL, st).WithSecureCookie(cfg.Domain != ""),
		Logger:          logger,
		ContactLimiter:  ratelim.NewRateLimiter(cfg.RateLimit.ContactRate, cfg.RateLimit.ContactBurst),
		DescribeLimiter: ratelim.NewRateLimiter(cfg.RateLimit.DescribeRate, cfg.RateLimit.DescribeBurst),
		stop:            make(chan struct{}),
	}
	go a.Hub.Run()
	go a.logWhenReady()
	go a.ContactLimiter.RunSweeper(time.Minute, a.stop)
	go a.DescribeLimiter.RunSweeper(time.Minute, a.stop)
	return a
}

func (a *App) logWhenReady() {
	select {
	case <-a.Store.Ready():
		items, _ := a.Store.Counts()
		a.Logger.Printf("store ready: %d menu items", items)
	case <-a.stop:
	}
}

// Go runs fn detached from any request, bounded by the task timeout.
// Wait blocks until every such task has returned.
func (a *App) Go(fn func(ctx context.Context)) {
	timeout := a.Config.TaskTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	a.tasks.Add(1)
	go func() {
		defer a.tasks.Done()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		fn(ctx)
	}()
}

func (a *App) Wait() {
	a.tasks.Wait()
}

func (a *App) emit(name, entityID, actor string) {
	ev := mq.NewEvent(name, entityID, actor)
	a.Go(func(ctx context.Context) { a.Events.Emit(ctx, ev) })
}

func (a *App) AddMenuItem(actor string, item models.MenuItem) models.MenuItem {
	a.Store.AddMenuItem(item)
	a.Hub.MenuCreated(item)
	a.emit(mq.MenuCreated, item.ID, actor)
	return item
}

func (a *App) DeleteMenuItem(actor, id string) {
	a.Store.DeleteMenuItem(id)
	a.Hub.MenuDeleted(id)
	a.emit(mq.MenuDeleted, id, actor)
}

// Login starts the single admin session and issues a token bound to it.
func (a *App) Login(email string) (models.User, string, time.Time, error) {
	a.Store.Login(email)
	user, _ := a.Store.Session()
	token, exp, err := a.Sessions.Issue(user)
	if err != nil {
		return models.User{}, "", time.Time{}, err
	}
	a.emit(mq.SessionStarted, "", user.Email)
	return user, token, exp, nil
}

func (a *App) Logout() {
	user, had := a.Store.Session()
	a.Store.Logout()
	if had {
		a.emit(mq.SessionEnded, "", user.Email)
	}
}

// Describe drafts a menu description. It always returns usable text.
func (a *App) Describe(ctx context.Context, itemName, ingredients string) string {
	return a.AI.GenerateDescription(ctx, itemName, ingredients)
}

// ReceiveMessage puts a contact submission in the inbox straight away, so
// the inbox keeps submission order. Classification and delivery happen in a
// detached task that attaches the analysis to the stored message.
func (a *App) ReceiveMessage(msg models.ContactMessage) {
	a.Store.AddMessage(msg)
	a.Go(func(ctx context.Context) {
		analysis := a.AI.AnalyzeMessage(ctx, msg.Message)
		a.Store.SetAnalysis(msg.ID, analysis)
		msg = msg.WithAnalysis(analysis)
		a.Hub.MessageReceived(msg)
		a.Events.Emit(ctx, mq.NewEvent(mq.MessageReceived, msg.ID, msg.Email))

		if a.Archive != nil {
			if err := a.Archive.SaveMessage(ctx, msg); err != nil {
				a.Logger.Printf("archive: %v", err)
			}
		}
		if a.Notifier != nil {
			if err := a.Notifier.NotifyMessage(msg); err != nil {
				a.Logger.Printf("notify: %v", err)
			}
		}
	})
}

// AddCloser registers a backend to close on shutdown, in reverse order.
func (a *App) AddCloser(c io.Closer) {
	a.closers = append(a.closers, c)
}

// Close stops the hub and sweepers, waits for detached tasks (bounded by
// ctx) and closes backends.
func (a *App) Close(ctx context.Context) {
	a.once.Do(func() {
		a.Hub.Stop()
		close(a.stop)

		done := make(chan struct{})
		go func() {
			a.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			a.Logger.Println("shutdown: gave up waiting for background tasks")
		}

		for i := len(a.closers) - 1; i >= 0; i-- {
			if err := a.closers[i].Close(); err != nil {
				a.Logger.Printf("shutdown: close: %v", err)
			}
		}
	})
}
