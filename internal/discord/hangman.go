package discord

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/hunterjsb/boopato/internal/economy"
	"github.com/hunterjsb/boopato/internal/hangman"
	"github.com/rs/zerolog/log"
)

const hangmanPrefix = "hm"

const (
	hangmanQuit = "quit"
	// letters per keyboard row, leaving room for navigation
	keyboardWidth = 4
)

// keyboardPages splits the alphabet so each page fits in five action rows.
var keyboardPages = []string{"ABCDEFGHIJKLMNOP", "QRSTUVWXYZ"}

var errNotYourGame = errors.New("not your game")

// hangmanSession is one hangman round owned by the comrade who started it.
type hangmanSession struct {
	ID        string
	Owner     player
	GuildID   string
	ChannelID string
	MessageID string

	mu   sync.Mutex
	game *hangman.Game
	page int
	quit bool
}

func newHangmanSession(guildID string, owner player, game *hangman.Game) *hangmanSession {
	return &hangmanSession{
		ID:      uuid.NewString(),
		Owner:   owner,
		GuildID: guildID,
		game:    game,
	}
}

func (hs *hangmanSession) SessionID() string { return hs.ID }

func (hs *hangmanSession) over() bool { return hs.quit || hs.game.IsOver() }

// press applies a keyboard action for userID. The caller holds hs.mu.
func (hs *hangmanSession) press(userID, action string) error {
	if userID != hs.Owner.ID {
		return errNotYourGame
	}
	if hs.over() {
		return hangman.ErrGameOver
	}
	switch action {
	case hangmanQuit:
		hs.quit = true
		return nil
	case pageAction(0):
		hs.page = 0
		return nil
	case pageAction(1):
		hs.page = 1
		return nil
	}
	if len(action) != 1 {
		return fmt.Errorf("%w: %q", hangman.ErrNotALetter, action)
	}
	_, err := hs.game.Guess(rune(action[0]))
	return err
}

func pageAction(page int) string { return fmt.Sprintf("page%d", page+1) }

func keyID(sessionID, action string) string {
	return fmt.Sprintf("%s:%s:%s", hangmanPrefix, sessionID, action)
}

func parseKeyID(customID string) (string, string, error) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != hangmanPrefix || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("malformed key id %q", customID)
	}
	return parts[1], parts[2], nil
}

func (hs *hangmanSession) result() string {
	switch {
	case hs.quit:
		return fmt.Sprintf("Game Terminated by User. The word was **%s**.", hs.game.Word)
	case hs.game.Won():
		return fmt.Sprintf("🎉 You saved the comrade with %d wrong guesses! Glory to the Motherland!", hs.game.WrongGuesses())
	case hs.game.Lost():
		return fmt.Sprintf("💀 The comrade has been sent to the gulag. The word was **%s**.", hs.game.Word)
	}
	return ""
}

func (hs *hangmanSession) embed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "☭ Soviet Hangman ☭",
		Description: fmt.Sprintf("Guess the word, comrade **%s**!", hs.Owner.Name),
		Color:       colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📚 Category", Value: hs.game.Category, Inline: true},
			{Name: "❤️ Attempts", Value: fmt.Sprintf("%d/%d", hs.game.AttemptsLeft(), hangman.MaxAttempts), Inline: true},
			{Name: "📝 Word", Value: "```" + spaced(hs.game.Display()) + "```", Inline: false},
			{Name: "🪢 Gallows", Value: hs.game.Gallows(), Inline: false},
			{Name: "🔤 Guessed Letters", Value: hs.game.GuessedLetters(), Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Game %s", hs.ID[:8])},
	}
	if r := hs.result(); r != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Result", Value: r})
		embed.Color = colorGray
		if hs.game.Won() {
			embed.Color = colorGreen
		}
	}
	return embed
}

// spaced puts a space between letters so underscores stay readable.
func spaced(word string) string {
	return strings.Join(strings.Split(word, ""), " ")
}

// components draws the current keyboard page. The keyboard is dropped once
// the game is over.
func (hs *hangmanSession) components() []discordgo.MessageComponent {
	if hs.over() {
		return []discordgo.MessageComponent{}
	}
	letters := keyboardPages[hs.page]
	var rows []discordgo.MessageComponent
	for start := 0; start < len(letters); start += keyboardWidth {
		end := min(start+keyboardWidth, len(letters))
		var keys []discordgo.MessageComponent
		for _, r := range letters[start:end] {
			style := discordgo.SuccessButton
			if hs.game.Guessed(r) {
				style = discordgo.SecondaryButton
			}
			keys = append(keys, discordgo.Button{
				Label:    string(r),
				Style:    style,
				CustomID: keyID(hs.ID, string(r)),
				Disabled: hs.game.Guessed(r),
			})
		}
		rows = append(rows, discordgo.ActionsRow{Components: keys})
	}

	other := 1 - hs.page
	nav := "Q-Z ▶"
	if other == 0 {
		nav = "◀ A-P"
	}
	rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: nav, Style: discordgo.PrimaryButton, CustomID: keyID(hs.ID, pageAction(other))},
		discordgo.Button{Label: "Quit", Style: discordgo.DangerButton, CustomID: keyID(hs.ID, hangmanQuit)},
	}})
	return rows
}

// handleHangmanCommand handles the /hangman command
func (b *DiscordBot) handleHangmanCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferResponse(s, i) {
		return
	}
	if i.GuildID == "" {
		b.sendError(s, i, "Server Only", "This command can only be used in a server!")
		return
	}

	author := interactionUser(i)
	var game *hangman.Game
	b.withRand(func(rng *rand.Rand) { game = hangman.New(rng) })
	hs := newHangmanSession(i.GuildID, player{ID: author.ID, Name: author.Username}, game)

	embed, components := hs.embed(), hs.components()
	msg, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	if err != nil {
		log.Error().Err(err).Msg("Error editing interaction response")
		return
	}
	hs.ChannelID = msg.ChannelID
	hs.MessageID = msg.ID
	b.Hangman.Put(hs)

	log.Info().Str("game", hs.ID).Str("user", author.ID).Str("category", game.Category).Msg("Hangman game started")
}

// handleHangmanKey handles a keyboard button press
func (b *DiscordBot) handleHangmanKey(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sessionID, action, err := parseKeyID(i.MessageComponentData().CustomID)
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring button press")
		return
	}
	hs, ok := b.Hangman.Get(sessionID)
	if !ok {
		b.replyEphemeral(s, i, "This game is no longer active, comrade.")
		return
	}

	hs.mu.Lock()
	if err := hs.press(interactionUser(i).ID, action); err != nil {
		hs.mu.Unlock()
		b.replyEphemeral(s, i, hangmanErrorMessage(err))
		return
	}
	b.Hangman.Touch(hs.ID)
	embed, components := hs.embed(), hs.components()
	over := hs.over()
	hs.mu.Unlock()

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	}); err != nil {
		log.Error().Err(err).Str("game", hs.ID).Msg("Error updating game message")
	}
	if over {
		b.finishHangman(hs)
	}
}

// finishHangman removes a finished round and records a win.
func (b *DiscordBot) finishHangman(hs *hangmanSession) {
	b.Hangman.Delete(hs.ID)

	hs.mu.Lock()
	won, quit, wrong := hs.game.Won(), hs.quit, hs.game.WrongGuesses()
	hs.mu.Unlock()

	log.Info().Str("game", hs.ID).Bool("won", won).Bool("quit", quit).Int("wrong", wrong).Msg("Hangman game finished")
	if !won || quit || b.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.Store.SaveGameScore(ctx, hs.Owner.ID, hs.GuildID, hs.Owner.Name, economy.GameHangman, float64(wrong)); err != nil {
		log.Error().Err(err).Str("game", hs.ID).Msg("Error saving score")
	}
}

// abandonHangman is the session store's expiry callback.
func (b *DiscordBot) abandonHangman(hs *hangmanSession) {
	hs.mu.Lock()
	embed := hs.embed()
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Session Expired",
		Value: fmt.Sprintf("The comrade waited too long. The word was **%s**.", hs.game.Word),
	})
	hs.mu.Unlock()
	embed.Color = colorGray

	log.Info().Str("game", hs.ID).Msg("Hangman game abandoned")
	b.clearGameMessage(hs.ChannelID, hs.MessageID, embed)
}

func hangmanErrorMessage(err error) string {
	switch {
	case errors.Is(err, errNotYourGame):
		return "This is not your game, comrade. Start your own with `/hangman`."
	case errors.Is(err, hangman.ErrGameOver):
		return "This game is already over."
	case errors.Is(err, hangman.ErrAlreadyGuessed):
		return "You already guessed that letter!"
	case errors.Is(err, hangman.ErrNotALetter):
		return "That is not a letter, comrade."
	}
	return "Something went wrong with that guess."
}
