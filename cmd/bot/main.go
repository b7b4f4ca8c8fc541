package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"cook-companion/internal/analytics"
	"cook-companion/internal/auth"
	"cook-companion/internal/chef"
	"cook-companion/internal/config"
	"cook-companion/internal/journal"
	"cook-companion/internal/llm"
	"cook-companion/internal/recipes"
	"cook-companion/internal/scheduler"
	"cook-companion/internal/server"
	"cook-companion/internal/session"
	"cook-companion/internal/telegram"
	"cook-companion/internal/worker"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	store, err := recipes.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to init recipe store: %v", err)
	}

	var rec journal.Recorder
	if cfg.JournalFilePath != "" {
		fr, err := journal.NewFileRecorder(cfg.JournalFilePath)
		if err != nil {
			log.Printf("failed to init journal: %v", err)
		} else {
			rec = fr
		}
	}

	client, err := llm.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}
	if client == nil {
		log.Println("⚠️ No AI credential configured, recipe generation will answer with a fallback message")
	}

	var adminRepo auth.Repository
	if cfg.AdminsFilePath != "" {
		repo, err := auth.NewFileRepository(cfg.AdminsFilePath)
		if err != nil {
			log.Printf("failed to init admins repo: %v", err)
		} else {
			adminRepo = repo
		}
	}
	admins, err := auth.NewWithRepo(adminRepo, cfg.Admins())
	if err != nil {
		log.Printf("⚠️ admins file unreadable, using env admins only: %v", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("failed to create bot api: %v", err)
	}
	log.Printf("🤖 Authorized as @%s", api.Self.UserName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := worker.New(cfg.AIWorkers, cfg.AIWorkers*16)
	sessions := session.NewStore()
	bot := telegram.New(api, telegram.Deps{
		Store:    store,
		Chef:     chef.New(client, rec),
		Sessions: sessions,
		Admins:   admins,
		Pool:     pool,
		SendRate: float64(cfg.SendRatePerSec),
	})

	sched := scheduler.New()
	if cfg.SessionIdleTimeout > 0 {
		sched.SetSweepFunction(func() {
			if n := sessions.ExpireIdle(cfg.SessionIdleTimeout); n > 0 {
				log.Printf("🧹 Expired %d idle session(s)", n)
			}
		})
	}
	if rec != nil {
		sched.SetReportFunction(func(ctx context.Context) error {
			events, err := rec.LoadEvents()
			if err != nil {
				return err
			}
			bot.Notify(analytics.AnalyzeDay(events, time.Now().UTC()).Summary())
			return nil
		})
	}
	if err := sched.Start(); err != nil {
		log.Printf("failed to start scheduler: %v", err)
	}

	updates := make(chan tgbotapi.Update, 100)
	srv := server.New(cfg.ListenAddr, updates)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("❌ HTTP server failed: %v", err)
			stop()
		}
	}()

	if cfg.WebhookMode() {
		if err := server.RegisterWebhook(ctx, api, cfg.WebhookURL); err != nil {
			log.Printf("⚠️ Webhook setup failed: %v", err)
		}
	} else {
		if err := server.DeleteWebhook(api); err != nil {
			log.Printf("⚠️ %v", err)
		}
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		go forward(ctx, api.GetUpdatesChan(u), updates)
		log.Println("📡 Long polling for updates")
	}

	bot.Run(ctx, updates)

	log.Println("🛑 Shutting down")
	if !cfg.WebhookMode() {
		api.StopReceivingUpdates()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	sched.Stop()
	pool.Close()
}

func forward(ctx context.Context, in tgbotapi.UpdatesChannel, out chan<- tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-in:
			if !ok {
				return
			}
			select {
			case out <- u:
			case <-ctx.Done():
				return
			}
		}
	}
}
