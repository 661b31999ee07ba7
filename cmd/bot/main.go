package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	discordrouter "github.com/lotus-group/lotus-bot/internal/adapters/discord"
	"github.com/lotus-group/lotus-bot/internal/app/service"
	"github.com/lotus-group/lotus-bot/internal/app/session"
	"github.com/lotus-group/lotus-bot/internal/domain"
	"github.com/lotus-group/lotus-bot/internal/infra/config"
	"github.com/lotus-group/lotus-bot/internal/infra/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	// DB
	db, err := storage.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal("migrate:", err)
	}
	log.Println("db lista y migrada")

	// Repos
	guildRepo := storage.NewGuildRepo(db)
	streamerCfgRepo := storage.NewStreamerConfigRepo(db)
	roRepo := storage.NewRoRequestRepo(db)
	streamerReqRepo := storage.NewStreamerRequestRepo(db)

	// Estado efimero en memoria
	roDrafts := session.NewRoDraftStore(10 * time.Minute)
	forms := session.NewFormStore(domain.StreamerQuestions)
	uploads := session.NewImagePromptStore(2 * time.Minute)

	// Services
	roSvc := service.NewRoService(roDrafts, roRepo)
	streamerSvc := service.NewStreamerService(forms, streamerReqRepo)

	// Discord session
	auth := cfg.DiscordToken
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(auth)), "bot ") {
		auth = "Bot " + strings.TrimSpace(auth)
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal(err)
	}
	// MessageContent hace falta para el formulario por DM y el upload de
	// imagen del panel
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
	if err := s.Open(); err != nil {
		log.Fatal(err)
	}
	defer s.Close()
	log.Printf("conectado como %s (%s)", s.State.User.Username, s.State.User.ID)

	// Router
	r := discordrouter.NewRouter(s, cfg, guildRepo, streamerCfgRepo, roSvc, streamerSvc, uploads)
	if err := r.Register(); err != nil {
		log.Fatalf("registrando comandos: %v", err)
	}
	r.Handlers()
	log.Printf("comandos registrados (guild=%q)", cfg.DiscordGuild)

	// Paneles de R.O: deja exactamente uno por canal configurado
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		r.EnsureRoPanels(ctx)
		cancel()
	}

	// Presencia "Assistindo ..." si la guild principal la tiene seteada
	if cfg.DiscordGuild != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if gcfg, err := guildRepo.Get(ctx, cfg.DiscordGuild); err == nil && gcfg.PresenceWatching != "" {
			if err := s.UpdateWatchStatus(0, gcfg.PresenceWatching); err != nil {
				log.Printf("presencia: %v", err)
			}
		}
		cancel()
	}

	// Retencion de ro_requests: una pasada al arranque y despues cada 12h
	go func() {
		purge := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			n, err := roSvc.PurgeOld(ctx)
			if err != nil {
				log.Printf("[retencion] purge ro_requests: %v", err)
				return
			}
			if n > 0 {
				log.Printf("[retencion] %d ro_requests viejas borradas", n)
			}
		}
		purge()
		t := time.NewTicker(12 * time.Hour)
		defer t.Stop()
		for range t.C {
			purge()
		}
	}()

	// Esperar señal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop
}
