package app

import (
	"context"
	"log"

	"brewbliss/config"
	"brewbliss/db"
	"brewbliss/gemini"
	"brewbliss/mq"
	"brewbliss/notify"
	"brewbliss/rdx"
	"brewbliss/store"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Build connects every configured backend. Optional backends that fail to
// connect are logged and left out; the site runs without them.
func Build(ctx context.Context, cfg config.Config, logger *log.Logger) *App {
	st := store.New(store.WithLoadingDelay(cfg.LoadingDelay))
	a := New(cfg, st, logger)

	geminiOpts := []gemini.Option{
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithTimeout(cfg.Gemini.Timeout),
		gemini.WithLogger(logger),
	}
	if cfg.Gemini.APIKey == "" {
		logger.Println("GEMINI_API_KEY not set; descriptions and analysis use fallbacks")
	}

	if cfg.Redis.Addr != "" {
		conn, err := rdx.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			logger.Printf("Redis disabled: %v", err)
		} else {
			a.AddCloser(conn)
			a.Events = mq.NewRedisEmitter(conn, cfg.Redis.Channel, logger)
			geminiOpts = append(geminiOpts, gemini.WithCache(rdx.NewCache(conn, cfg.Redis.CacheTTL, logger)))
			logger.Printf("Redis connected at %s", cfg.Redis.Addr)
		}
	}
	a.AI = gemini.New(cfg.Gemini.APIKey, geminiOpts...)

	if cfg.Mongo.URI != "" {
		archive, err := db.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			logger.Printf("MongoDB archive disabled: %v", err)
		} else {
			a.Archive = archive
			a.AddCloser(closerFunc(func() error { return archive.Close(context.Background()) }))
			logger.Printf("MongoDB archive writing to %s.%s", cfg.Mongo.Database, db.MessagesCollectionName)
		}
	}

	if cfg.Telegram.Enabled() {
		bot, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Printf("Telegram notifications disabled: %v", err)
		} else {
			a.Notifier = bot
		}
	}

	return a
}
