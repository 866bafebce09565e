package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "omnia/internal/command/core"

	"omnia/internal/command"
	"omnia/internal/command/music"
	"omnia/internal/config"
	"omnia/internal/discord"
	"omnia/internal/lyrics"
	"omnia/internal/music/parsers/ytdlp"
	"omnia/internal/storage"
	v "omnia/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ytdlp.SetCookiesFile(cfg.CookiesPath)

	bot := discord.NewBot(cfg, store)
	lyricsService := lyrics.NewService(lyrics.NewLrclib(), lyrics.NewGenius(cfg.GeniusToken))

	command.RegisterCommand(
		&music.MusicCommand{Bot: bot},
		command.WithGuildOnly(),
		command.WithCommandLogger(),
	)
	command.RegisterCommand(
		&music.LyricsCommand{Bot: bot, Service: lyricsService},
		command.WithGuildOnly(),
		command.WithCommandLogger(),
	)
	command.RegisterCommand(
		&music.PlaylistCommand{Bot: bot},
		command.WithGuildOnly(),
		command.WithCommandLogger(),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
