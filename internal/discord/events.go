package discord

import (
	"context"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// messageHandler counts messages and now and then lets the KGB reply
func (b *DiscordBot) messageHandler(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if b.Store != nil {
		if _, err := b.Store.EnsureUser(ctx, m.Author.ID, m.GuildID, m.Author.Username); err != nil {
			log.Error().Err(err).Str("user", m.Author.ID).Msg("Error ensuring user")
			return
		}
		if err := b.Store.IncrementMessages(ctx, m.Author.ID); err != nil {
			log.Error().Err(err).Str("user", m.Author.ID).Msg("Error counting message")
		}
	}

	content := CleanMentions(m.Content, m.Mentions)
	var trigger bool
	b.withRand(func(rng *rand.Rand) { trigger = ShouldTrigger(content, b.Config.KGBChance, rng) })
	if !trigger {
		return
	}

	reply, err := b.KGB.GenerateResponse(ctx, content)
	if err != nil {
		log.Debug().Err(err).Msg("Falling back to canned KGB line")
		b.withRand(func(rng *rand.Rand) { reply = CannedResponse(content, rng) })
	}
	if _, err := s.ChannelMessageSendReply(m.ChannelID, "🕵️ "+reply, m.Reference()); err != nil {
		log.Error().Err(err).Str("channel", m.ChannelID).Msg("Error sending KGB reply")
	}
}

// guildCreateHandler registers the server and its human members
func (b *DiscordBot) guildCreateHandler(s *discordgo.Session, g *discordgo.GuildCreate) {
	if b.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := b.Store.EnsureServer(ctx, g.ID, g.Name); err != nil {
		log.Error().Err(err).Str("guild", g.ID).Msg("Error registering server")
		return
	}
	added, existing := syncMembers(ctx, b.Store, g.ID, g.Members)
	log.Info().Str("guild", g.Name).Int("added", added).Int("existing", existing).Msg("Server registered")
}
