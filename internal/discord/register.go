package discord

import (
	"context"
	"log"
	"time"

	"omnia/internal/command"

	"golang.org/x/time/rate"
)

// Discord throttles command registration hard, so creations are paced.
var registerLimiter = rate.NewLimiter(rate.Every(time.Second), 2)

// registerCommands upserts every registered slash command for a guild.
func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for _, cmd := range command.AllCommands() {
		provider, ok := cmd.(command.SlashProvider)
		if !ok {
			continue
		}
		def := provider.SlashDefinition()
		if def == nil {
			continue
		}
		if err := registerLimiter.Wait(ctx); err != nil {
			return err
		}
		if _, err := b.dg.ApplicationCommandCreate(appID, guildID, def); err != nil {
			log.Printf("[ERR] [%s] Failed to register command %s: %v", guildID, cmd.Name(), err)
			continue
		}
		log.Printf("[INFO] [%s] Registered command: %s", guildID, cmd.Name())
	}
	return nil
}
