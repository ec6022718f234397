// Package bot bridges the core to Discord through discordgo: it feeds
// incoming messages to the matching engine, keeps guild metrics flowing to
// the presence tracker, and exposes the narrow send capabilities the
// dispatcher needs.
package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/dkaeza/reactobot/internal/engine"
	"github.com/dkaeza/reactobot/internal/presence"
	"github.com/dkaeza/reactobot/internal/store"
	"github.com/dkaeza/reactobot/pkg/utils"
)

// Bot represents the Discord bot instance
type Bot struct {
	config  *utils.Config
	dg      *discordgo.Session
	store   store.Store
	tracker *presence.Tracker
	engine  *engine.Engine

	guildID string // guild for slash command registration (empty = global)
}

// NewBot creates a new Discord bot instance wired to the given store and
// presence tracker
func NewBot(cfg *utils.Config, s store.Store, tracker *presence.Tracker) (*Bot, error) {
	// Get discord token
	token := cfg.Get("DISCORD_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN not set in config or environment")
	}

	guildID := cfg.Get("GUILD_ID") // empty = global commands
	if guildID == "" {
		log.Println("[BOT]: GUILD_ID not set, using global commands")
	}

	// Create a new Discord session
	dg, err := discordgo.New("Bot " + strings.TrimPrefix(token, "Bot "))
	if err != nil {
		return nil, err
	}

	b := &Bot{
		config:  cfg,
		dg:      dg,
		store:   s,
		tracker: tracker,
		guildID: guildID,
	}
	b.engine = engine.New(s, b)

	// Intents
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages

	// Handlers
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onGuildMemberAdd)
	dg.AddHandler(b.onGuildMemberRemove)
	dg.AddHandler(b.onInteractionCreate)

	return b, nil
}

// Start connects to Discord, marks the bot online, and registers slash
// commands
func (b *Bot) Start() error {
	if err := b.dg.Open(); err != nil {
		return err
	}

	b.addEvent(store.EventBotStart, "Bot started successfully")
	b.setOnline(true)

	if err := b.registerCommands(); err != nil {
		b.addEvent(store.EventError, fmt.Sprintf("Failed to register slash commands: %v", err))
		log.Printf("[BOT]: failed to register slash commands: %v", err)
	} else {
		b.addEvent(store.EventSlashCommands, "Slash commands registered")
	}

	// Now that the connector is live, presence updates can flow
	b.tracker.Attach(b)
	b.refreshGuild()
	b.RefreshActivity()

	return nil
}

// Stop marks the bot offline and closes the Discord session
func (b *Bot) Stop() error {
	b.setOnline(false)
	return b.dg.Close()
}

// SendReply posts text as a reply to the given message
func (b *Bot) SendReply(ctx context.Context, channelID, messageID, text string) error {
	_, err := b.dg.ChannelMessageSendReply(channelID, text, &discordgo.MessageReference{
		ChannelID: channelID,
		MessageID: messageID,
	}, discordgo.WithContext(ctx))
	return err
}

// AddReaction attaches an emoji reaction to the given message
func (b *Bot) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	return b.dg.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx))
}

// SetPresence displays the activity text on the bot account
func (b *Bot) SetPresence(activity string) error {
	return b.dg.UpdateWatchStatus(0, activity)
}

// RefreshActivity recomputes the activity text from the stored settings and
// pushes it to Discord
func (b *Bot) RefreshActivity() {
	settings, err := b.store.Settings()
	if err != nil {
		log.Printf("[BOT]: could not load settings for activity update: %v", err)
		return
	}
	b.tracker.Refresh(settings)
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[BOT]: Logged in as: %s#%s (%d guilds)", r.User.Username, r.User.Discriminator, len(r.Guilds))
}

// onMessageCreate feeds incoming messages to the matching engine
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}

	msg := engine.Message{
		ChannelID:     m.ChannelID,
		MessageID:     m.ID,
		Content:       m.Content,
		AuthorBot:     m.Author.Bot || m.Author.ID == s.State.User.ID,
		DirectMessage: m.GuildID == "",
		CanSend:       b.canSend(m.ChannelID),
	}

	// Evaluate off the gateway event goroutine so a slow dispatch never
	// delays other inbound events
	go func() {
		if _, err := b.engine.Evaluate(context.Background(), msg); err != nil {
			log.Printf("[BOT]: message evaluation failed: %v", err)
		}
	}()
}

// onGuildMemberAdd records the join and refreshes the activity text
func (b *Bot) onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	b.addEvent(store.EventMemberJoin, "A new member joined the server")
	b.refreshGuild()
	b.RefreshActivity()
}

// onGuildMemberRemove refreshes the member count shown in the activity text
func (b *Bot) onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	b.refreshGuild()
	b.RefreshActivity()
}

// refreshGuild pushes the first connected guild's metrics to the tracker.
// Last known values are kept when no guild data is available
func (b *Bot) refreshGuild() {
	guilds := b.dg.State.Guilds
	if len(guilds) == 0 {
		return
	}

	guild := guilds[0]
	b.tracker.SetGuild(guild.MemberCount, guild.Name)
}

// canSend reports whether the bot may post messages in the channel.
// Unknown channels default to sendable; Discord rejects the call later if
// the permission is actually missing
func (b *Bot) canSend(channelID string) bool {
	perms, err := b.dg.State.UserChannelPermissions(b.dg.State.User.ID, channelID)
	if err != nil {
		return true
	}
	return perms&discordgo.PermissionSendMessages != 0
}

// setOnline flips the connectivity flag in the settings singleton
func (b *Bot) setOnline(online bool) {
	if _, err := b.store.UpdateSettings(store.SettingsPatch{IsOnline: &online}); err != nil {
		log.Printf("[BOT]: could not update online flag: %v", err)
	}
}

// addEvent appends an event, logging instead of failing when the store
// cannot record it
func (b *Bot) addEvent(typ, message string) {
	if _, err := b.store.AddEvent(typ, message); err != nil {
		log.Printf("[BOT]: could not record %s event: %v", typ, err)
	}
}
