package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/hunterjsb/boopato/internal/economy"
	"github.com/rs/zerolog/log"
)

const adminPrefix = "admin"

// Discord caps embed descriptions at 4096 characters.
const maxDescription = 4000

var adminCommand = &discordgo.ApplicationCommand{
	Name:                     "admin",
	Description:              "Party administration",
	DefaultMemberPermissions: &adminPermission,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "reset-cooldowns",
			Description: "Clear a comrade's work and commit cooldowns",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Comrade to pardon (default: you)",
					Required:    false,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "set-boops",
			Description: "Overwrite a comrade's balance",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Comrade to adjust",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "amount",
					Description: "New balance",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "new-round",
			Description: "Open a new distribution round so everyone may claim again",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "list-users",
			Description: "List every comrade in the database",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "sync-users",
			Description: "Register every member of the server",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "reset-server",
			Description: "Delete every account and empty the communal pool",
		},
	},
}

// handleAdminCommand handles the /admin command and its subcommands
func (b *DiscordBot) handleAdminCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := economyContext()
	defer cancel()
	user := b.beginEconomyCommand(ctx, s, i)
	if user == nil {
		return
	}
	if !isAdmin(i) {
		b.sendError(s, i, "Permission Denied", "Only the Politburo may use these commands, comrade.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.sendError(s, i, "Invalid Command", "Choose an administrative action.")
		return
	}
	sub := options[0]
	log.Info().Str("admin", user.ID).Str("guild", i.GuildID).Str("action", sub.Name).Msg("Admin command")

	switch sub.Name {
	case "reset-cooldowns":
		target := user
		if opt := findOption(sub.Options, "user"); opt != nil {
			target = opt.UserValue(s)
		}
		if err := b.Store.ClearCooldowns(ctx, target.ID); err != nil {
			b.dbError(s, i, err, "Could not reset cooldowns.")
			return
		}
		b.respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Cooldowns Reset",
			Description: fmt.Sprintf("The Party has graciously reset the cooldowns of **%s**.", target.Username),
			Color:       colorGreen,
		})

	case "set-boops":
		target := findOption(sub.Options, "user").UserValue(s)
		amount := findOption(sub.Options, "amount").FloatValue()
		if _, err := b.Store.EnsureUser(ctx, target.ID, i.GuildID, target.Username); err != nil {
			b.dbError(s, i, err, "Could not find that comrade.")
			return
		}
		if err := b.Store.SetBoops(ctx, target.ID, amount); err != nil {
			b.dbError(s, i, err, "Could not adjust the balance.")
			return
		}
		b.respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Balance Adjusted",
			Description: fmt.Sprintf("**%s** now holds **%.2f** boops.", target.Username, amount),
			Color:       colorGold,
		})

	case "new-round":
		round, err := b.Store.StartNewRound(ctx, i.GuildID)
		if err != nil {
			b.dbError(s, i, err, "Could not start a new round.")
			return
		}
		b.respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "☭ New Distribution Round ☭",
			Description: fmt.Sprintf("Round #%d has begun. Every comrade may claim again.", round),
			Color:       colorRed,
		})

	case "list-users":
		users, err := b.Store.AllUsers(ctx, i.GuildID)
		if err != nil {
			b.dbError(s, i, err, "Could not fetch the comrades.")
			return
		}
		b.respondEmbed(s, i, formatUserListEmbed(users))

	case "sync-users":
		members, err := fetchMembers(s, i.GuildID)
		if err != nil {
			log.Error().Err(err).Str("guild", i.GuildID).Msg("Error fetching members")
			b.sendError(s, i, "Sync Failed", "Could not fetch the server's members.")
			return
		}
		name := guildName(s, i.GuildID)
		if err := b.Store.EnsureServer(ctx, i.GuildID, name); err != nil {
			b.dbError(s, i, err, "Could not register the server.")
			return
		}
		added, existing := syncMembers(ctx, b.Store, i.GuildID, members)
		b.respondEmbed(s, i, &discordgo.MessageEmbed{
			Title: "☭ Server Sync Complete ☭",
			Description: fmt.Sprintf("Found **%d** non-bot comrades in **%s**\n• **%d** new users added\n• **%d** existing users verified",
				added+existing, name, added, existing),
			Color: colorGreen,
		})

	case "reset-server":
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds:     &[]*discordgo.MessageEmbed{resetWarningEmbed(guildName(s, i.GuildID))},
			Components: &[]discordgo.MessageComponent{resetButtons(user.ID)},
		}); err != nil {
			log.Error().Err(err).Msg("Error sending reset confirmation")
		}

	default:
		b.sendError(s, i, "Invalid Command", "Unknown administrative action.")
	}
}

func formatUserListEmbed(users []economy.User) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Users in Database",
		Color: colorGray,
	}
	if len(users) == 0 {
		embed.Description = "No users found in the database for this server!"
		return embed
	}

	var sb strings.Builder
	for n, u := range users {
		line := fmt.Sprintf("%d. **%s** (ID: %s) - %.2f boops\n", n+1, u.Username, u.ID, u.Boops)
		if sb.Len()+len(line) > maxDescription {
			fmt.Fprintf(&sb, "...and %d more", len(users)-n)
			break
		}
		sb.WriteString(line)
	}
	embed.Description = sb.String()
	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d comrades", len(users))}
	return embed
}

// fetchMembers pages through every member of the guild.
func fetchMembers(s *discordgo.Session, guildID string) ([]*discordgo.Member, error) {
	var all []*discordgo.Member
	after := ""
	for {
		page, err := s.GuildMembers(guildID, after, 1000)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < 1000 {
			return all, nil
		}
		after = page[len(page)-1].User.ID
	}
}

// syncMembers registers every human member and counts how many were new.
// Failures are logged and skipped.
func syncMembers(ctx context.Context, store *economy.Store, guildID string, members []*discordgo.Member) (added, existing int) {
	for _, member := range members {
		if member == nil || member.User == nil || member.User.Bot {
			continue
		}
		existed, err := store.EnsureUser(ctx, member.User.ID, guildID, member.User.Username)
		if err != nil {
			log.Error().Err(err).Str("user", member.User.ID).Msg("Error registering member")
			continue
		}
		if existed {
			existing++
		} else {
			added++
		}
	}
	return added, existing
}

func resetWarningEmbed(server string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⚠️ DANGER ZONE ⚠️",
		Description: fmt.Sprintf("You are about to reset ALL data for **%s**.\n"+
			"This will delete every account, job and balance and empty the communal pool.\n\n"+
			"This action cannot be undone! Are you sure?", server),
		Color: colorRed,
	}
}

func resetButtons(userID string) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "🗑️ Yes, Reset Everything",
			Style:    discordgo.DangerButton,
			CustomID: resetID(true, userID),
		},
		discordgo.Button{
			Label:    "Cancel",
			Style:    discordgo.SecondaryButton,
			CustomID: resetID(false, userID),
		},
	}}
}

func resetID(confirm bool, userID string) string {
	action := "cancel"
	if confirm {
		action = "confirm"
	}
	return fmt.Sprintf("%s:reset:%s:%s", adminPrefix, action, userID)
}

// parseResetID returns whether the button confirms the reset and who may
// press it.
func parseResetID(customID string) (bool, string, error) {
	parts := strings.Split(customID, ":")
	if len(parts) != 4 || parts[0] != adminPrefix || parts[1] != "reset" || parts[3] == "" {
		return false, "", fmt.Errorf("malformed reset id %q", customID)
	}
	switch parts[2] {
	case "confirm":
		return true, parts[3], nil
	case "cancel":
		return false, parts[3], nil
	}
	return false, "", fmt.Errorf("unknown reset action %q", parts[2])
}

// handleResetButton handles the reset-server confirmation buttons
func (b *DiscordBot) handleResetButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	confirm, owner, err := parseResetID(i.MessageComponentData().CustomID)
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring button press")
		return
	}
	if interactionUser(i).ID != owner || !isAdmin(i) {
		b.replyEphemeral(s, i, "Only the comrade who asked may decide, comrade.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Reset Cancelled",
		Description: "Operation cancelled. The glorious data of the motherland remains intact.",
		Color:       colorGray,
	}
	if confirm {
		ctx, cancel := economyContext()
		defer cancel()
		if err := b.Store.ResetServer(ctx, i.GuildID); err != nil {
			log.Error().Err(err).Str("guild", i.GuildID).Msg("Error resetting server")
			embed = &discordgo.MessageEmbed{Title: "Database Error", Description: "Could not reset the server.", Color: 0xff0000}
		} else {
			embed = &discordgo.MessageEmbed{
				Title:       "✅ Reset Complete",
				Description: fmt.Sprintf("All data for **%s** has been reset. The society can start anew!", guildName(s, i.GuildID)),
				Color:       colorGreen,
			}
		}
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
		},
	}); err != nil {
		log.Error().Err(err).Msg("Error updating reset message")
	}
}
