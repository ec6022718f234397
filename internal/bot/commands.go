package bot

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/dkaeza/reactobot/internal/store"
)

// onInteractionCreate handles interactions (slash commands)
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleApplicationCommand(i)
	}
}

// registerCommands registers the bot's slash commands with Discord
func (b *Bot) registerCommands() error {
	// Define commands
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "server",
			Description: "Affiche les informations sur le serveur",
		},
		{
			Name:        "user",
			Description: "Affiche les informations sur un utilisateur",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "utilisateur",
				Description: "L'utilisateur dont vous souhaitez voir les informations",
				Required:    false,
			}},
		},
	}

	// Register commands
	guildID := b.guildID // empty = global commands
	for _, cmd := range commands {
		if _, err := b.dg.ApplicationCommandCreate(b.dg.State.User.ID, guildID, cmd); err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

// handleApplicationCommand processes a slash command interaction
func (b *Bot) handleApplicationCommand(i *discordgo.InteractionCreate) {
	if i == nil {
		return
	}

	name := i.ApplicationCommandData().Name

	switch name {
	case "server":
		b.handleServerCommand(i)
	case "user":
		b.handleUserCommand(i)
	}
}

// handleServerCommand replies with an embed describing the current guild
func (b *Bot) handleServerCommand(i *discordgo.InteractionCreate) {
	guild, err := b.dg.State.Guild(i.GuildID)
	if err != nil {
		b.respondEphemeral(i, "Cette commande ne peut être utilisée que dans un serveur.")
		return
	}

	created, _ := discordgo.SnowflakeTimestamp(guild.ID)

	embed := &discordgo.MessageEmbed{
		Color: 0x3498DB,
		Title: fmt.Sprintf("Informations sur %s", guild.Name),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID du serveur", Value: guild.ID, Inline: true},
			{Name: "Propriétaire", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
			{Name: "Date de création", Value: fmt.Sprintf("<t:%d:R>", created.Unix()), Inline: true},
			{Name: "Membres", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
			{Name: "Salons", Value: fmt.Sprintf("%d", len(guild.Channels)), Inline: true},
			{Name: "Rôles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
		},
	}

	b.respondEmbed(i, embed)
	b.addEvent(store.EventCommandUsed, fmt.Sprintf("Command /server used by %s", interactionUser(i)))
}

// handleUserCommand replies with an embed describing the targeted member
func (b *Bot) handleUserCommand(i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		b.respondEphemeral(i, "Cette commande ne peut être utilisée que dans un serveur.")
		return
	}

	// Target the mentioned user, or the caller when none is given
	target := i.Member.User
	if options := i.ApplicationCommandData().Options; len(options) > 0 {
		target = options[0].UserValue(b.dg)
	}

	member, err := b.dg.GuildMember(i.GuildID, target.ID)
	if err != nil {
		b.respondEphemeral(i, "Impossible de trouver cet utilisateur dans ce serveur.")
		return
	}

	created, _ := discordgo.SnowflakeTimestamp(target.ID)

	nickname := member.Nick
	if nickname == "" {
		nickname = "Aucun"
	}

	isBot := "Non"
	if target.Bot {
		isBot = "Oui"
	}

	embed := &discordgo.MessageEmbed{
		Color: 0x2ECC71,
		Title: fmt.Sprintf("Informations sur %s", target.Username),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID de l'utilisateur", Value: target.ID, Inline: true},
			{Name: "Compte créé le", Value: fmt.Sprintf("<t:%d:R>", created.Unix()), Inline: true},
			{Name: "A rejoint le serveur", Value: fmt.Sprintf("<t:%d:R>", member.JoinedAt.Unix()), Inline: true},
			{Name: "Est un bot", Value: isBot, Inline: true},
			{Name: "Surnom", Value: nickname, Inline: true},
			{Name: "Rôles", Value: memberRoles(member), Inline: false},
		},
	}

	b.respondEmbed(i, embed)
	b.addEvent(store.EventCommandUsed, fmt.Sprintf("Command /user used by %s", interactionUser(i)))
}

// memberRoles renders a member's roles as mentions
func memberRoles(member *discordgo.Member) string {
	if len(member.Roles) == 0 {
		return "Aucun rôle"
	}

	mentions := make([]string, len(member.Roles))
	for i, id := range member.Roles {
		mentions[i] = fmt.Sprintf("<@&%s>", id)
	}
	return strings.Join(mentions, ", ")
}

// interactionUser names the user behind an interaction for event messages
func interactionUser(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return "unknown"
}

// respondEmbed replies to an interaction with a single embed
func (b *Bot) respondEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := b.dg.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
	if err != nil {
		log.Printf("[BOT]: could not respond to interaction: %v", err)
		b.addEvent(store.EventError, fmt.Sprintf("Slash command error: %v", err))
	}
}

// respondEphemeral sends a response only visible to the user who invoked
// the command
func (b *Bot) respondEphemeral(i *discordgo.InteractionCreate, content string) {
	_ = b.dg.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Flags: discordgo.MessageFlagsEphemeral},
	})
}
