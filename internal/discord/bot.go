package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"omnia/internal/bot"
	"omnia/internal/command"
	"omnia/internal/config"
	"omnia/internal/music/player"
	"omnia/internal/music/source_resolver"
	"omnia/internal/music/sources/youtube"
	"omnia/internal/recommend"
	"omnia/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Bot is a Discord bot
type Bot struct {
	dg             *discordgo.Session
	cfg            *config.Config
	storage        *storage.Storage
	sourceResolver *source_resolver.SourceResolver
	related        *recommend.Finder

	mu             sync.RWMutex
	players        map[string]*player.Player
	notifyChannels map[string]string
	aloneTimers    map[string]*time.Timer
}

// NewBot wires the bot's music stack against the given config and storage.
func NewBot(cfg *config.Config, store *storage.Storage) *Bot {
	ytSource := youtube.New()
	return &Bot{
		cfg:            cfg,
		storage:        store,
		sourceResolver: source_resolver.New(),
		related: recommend.NewFinder(
			ytSource,
			recommend.NewTasteDive(cfg.TasteDiveKey),
			recommend.NewSpotify(cfg.SpotifyClientID, cfg.SpotifyClientSecret),
		),
		players:        make(map[string]*player.Player),
		notifyChannels: make(map[string]string),
		aloneTimers:    make(map[string]*time.Timer),
	}
}

// Run opens the Discord session and blocks until the context is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg
	b.configureIntents()

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onVoiceStateUpdate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	b.disconnectAll()
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if b.cfg.InitSlashCommands {
		for _, g := range r.Guilds {
			if err := b.registerCommands(g.ID); err != nil {
				log.Println("[ERR] Error registering slash commands for guild", g.ID, ":", err)
			}
		}
	} else {
		log.Println("[INFO] Registering slash commands skipped")
	}

	log.Printf("[INFO] ✅ Discord bot %v is running.", s.State.User.Username)
}

// onGuildCreate is called when the bot joins a guild
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.ID, g.Guild.Name)

	if err := b.registerCommands(g.Guild.ID); err != nil {
		log.Printf("[ERR] Failed to register commands for new guild %s: %v", g.Guild.ID, err)
	}
}

// onInteractionCreate dispatches slash commands and button presses to
// the registry
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		cmdName := i.ApplicationCommandData().Name
		cmd, ok := command.GetCommand(cmdName)
		if !ok {
			log.Printf("[WARN] Unknown command: %s\n", cmdName)
			return
		}

		if i.GuildID != "" {
			b.setNotifyChannel(i.GuildID, i.ChannelID)
		}

		ctx := &command.SlashInteractionContext{
			Session: s,
			Event:   i,
			Storage: b.storage,
		}
		if err := cmd.Run(ctx); err != nil {
			log.Println("[ERR] Error running slash command:", err)
			_ = bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
				Description: fmt.Sprintf("Error running slash command: %v", err),
			})
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID

		var matched command.Command
		for _, cmd := range command.AllCommands() {
			if strings.HasPrefix(customID, cmd.Name()+":") {
				matched = cmd
				break
			}
		}
		if matched == nil {
			log.Printf("[WARN] No matching command for component: %s\n", customID)
			return
		}

		handler, ok := matched.(command.ComponentInteractionHandler)
		if !ok {
			log.Printf("[WARN] Command %s does not handle components\n", matched.Name())
			return
		}

		if i.GuildID != "" {
			b.setNotifyChannel(i.GuildID, i.ChannelID)
		}

		ctx := &command.ComponentInteractionContext{
			Session: s,
			Event:   i,
			Storage: b.storage,
		}
		if err := handler.Component(ctx); err != nil {
			log.Println("[ERR] Error running component interaction:", err)
			_ = bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
				Description: fmt.Sprintf("Error running component interaction: %v", err),
			})
		}
	}
}

// GetOrCreatePlayer returns the guild's player, creating it on first use.
func (b *Bot) GetOrCreatePlayer(guildID string) *player.Player {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p, ok := b.players[guildID]; ok {
		return p
	}
	p := player.New(guildID, player.Options{
		Voice:       b,
		Resolver:    b.sourceResolver,
		Related:     b.related,
		Notifier:    b,
		Settings:    b.storage,
		IdleTimeout: b.cfg.IdleTimeout,
	})
	b.players[guildID] = p
	return p
}

// FindUserVoiceState returns the voice channel the user currently sits in.
func (b *Bot) FindUserVoiceState(guildID, userID string) (string, error) {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return "", err
	}
	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID && vs.ChannelID != "" {
			return vs.ChannelID, nil
		}
	}
	return "", errors.New("user is not in a voice channel")
}

func (b *Bot) setNotifyChannel(guildID, channelID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notifyChannels[guildID] = channelID
}

func (b *Bot) notifyChannel(guildID string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.notifyChannels[guildID]
}

func (b *Bot) disconnectAll() {
	b.mu.RLock()
	players := make([]*player.Player, 0, len(b.players))
	for _, p := range b.players {
		players = append(players, p)
	}
	b.mu.RUnlock()

	for _, p := range players {
		if err := p.Disconnect(); err != nil && !errors.Is(err, player.ErrNotConnected) {
			log.Printf("[ERR] Failed to disconnect player for guild %s: %v", p.GuildID, err)
		}
	}
}
