package discord

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/hunterjsb/boopato/internal/tictactoe"
	"github.com/rs/zerolog/log"
)

const tictactoePrefix = "ttt"

// tttSession is one tic-tac-toe game attached to a Discord message. X is
// the author, O the opponent or the computer.
type tttSession struct {
	ID        string
	GuildID   string
	ChannelID string
	MessageID string
	Players   map[tictactoe.Mark]player

	mu         sync.Mutex
	game       *tictactoe.Game
	thinking   bool
	lastAction string
}

func newTTTSession(guildID string, x, o player) *tttSession {
	return &tttSession{
		ID:      uuid.NewString(),
		GuildID: guildID,
		Players: map[tictactoe.Mark]player{tictactoe.X: x, tictactoe.O: o},
		game:    tictactoe.NewGame(),
	}
}

func (ts *tttSession) SessionID() string { return ts.ID }

func (ts *tttSession) aiToMove() bool {
	return !ts.game.IsOver() && ts.Players[ts.game.Turn()].AI
}

// play marks pos for userID. The caller holds ts.mu.
func (ts *tttSession) play(userID string, pos int) error {
	if ts.game.IsOver() {
		return tictactoe.ErrGameOver
	}
	if ts.thinking {
		return errComputerThinking
	}
	if ts.Players[ts.game.Turn()].ID != userID {
		if ts.Players[tictactoe.X].ID != userID && ts.Players[tictactoe.O].ID != userID {
			return errNotAPlayer
		}
		return ErrNotYourTurn
	}
	if err := ts.game.Play(pos); err != nil {
		return err
	}
	ts.lastAction = ""
	ts.thinking = ts.aiToMove()
	return nil
}

// playAI lets the computer move. The caller holds ts.mu.
func (ts *tttSession) playAI(rng *rand.Rand) (int, error) {
	ts.thinking = false
	pos, err := ts.game.PlayAI(rng)
	if err != nil {
		return pos, err
	}
	ts.lastAction = fmt.Sprintf("Computer played position %d.", pos+1)
	return pos, nil
}

func (ts *tttSession) label(m tictactoe.Mark) string {
	pl := ts.Players[m]
	if pl.AI {
		return fmt.Sprintf("The computer (%s)", m)
	}
	return fmt.Sprintf("**%s** (%s)", pl.Name, m)
}

func (ts *tttSession) status() string {
	switch {
	case ts.game.IsDraw():
		return "A fair draw - the means of production have been equally distributed!"
	case ts.game.IsOver():
		w := ts.game.Winner()
		if w == tictactoe.X {
			return fmt.Sprintf("%s has won! The glory of the X workers prevails!", ts.label(w))
		}
		return fmt.Sprintf("%s has won! The triumph of the O collective is complete!", ts.label(w))
	case ts.thinking:
		return fmt.Sprintf("%s is thinking...", ts.label(ts.game.Turn()))
	}
	return fmt.Sprintf("It's %s's turn", ts.label(ts.game.Turn()))
}

func (ts *tttSession) embed() *discordgo.MessageEmbed {
	desc := ts.game.Render()
	if ts.lastAction != "" {
		desc += "\n\n" + ts.lastAction
	}
	desc += "\n" + ts.status()
	return &discordgo.MessageEmbed{
		Title:       "☭ Communist Tic-Tac-Toe ☭",
		Description: desc,
		Color:       colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "🎮 Players",
				Value:  fmt.Sprintf("%s vs %s", ts.label(tictactoe.X), ts.label(tictactoe.O)),
				Inline: false,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Game %s", ts.ID[:8])},
	}
}

// components lays the cells out as a three by three grid of buttons. The
// grid is dropped once the game is over.
func (ts *tttSession) components() []discordgo.MessageComponent {
	if ts.game.IsOver() {
		return []discordgo.MessageComponent{}
	}
	rows := make([]discordgo.MessageComponent, 0, 3)
	for r := 0; r < 3; r++ {
		var buttons []discordgo.MessageComponent
		for c := 0; c < 3; c++ {
			pos := r*3 + c
			label := strconv.Itoa(pos + 1)
			if m := ts.game.At(pos); m != tictactoe.Empty {
				label = m.String()
			}
			buttons = append(buttons, discordgo.Button{
				Label:    label,
				Style:    discordgo.SecondaryButton,
				CustomID: cellID(ts.ID, pos),
				Disabled: ts.thinking || !ts.game.IsValidMove(pos),
			})
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}
	return rows
}

func cellID(sessionID string, pos int) string {
	return fmt.Sprintf("%s:%s:%d", tictactoePrefix, sessionID, pos)
}

func parseCellID(customID string) (string, int, error) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != tictactoePrefix || parts[1] == "" {
		return "", 0, fmt.Errorf("malformed cell id %q", customID)
	}
	pos, err := strconv.Atoi(parts[2])
	if err != nil || pos < 0 || pos >= tictactoe.Cells {
		return "", 0, fmt.Errorf("malformed cell id %q", customID)
	}
	return parts[1], pos, nil
}

// handleTicTacToeCommand handles the /tictactoe command
func (b *DiscordBot) handleTicTacToeCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferResponse(s, i) {
		return
	}
	if i.GuildID == "" {
		b.sendError(s, i, "Server Only", "This command can only be used in a server!")
		return
	}

	author := interactionUser(i)
	x := player{ID: author.ID, Name: author.Username}
	o, ok := b.challengedPlayer(s, i, author)
	if !ok {
		return
	}

	ts := newTTTSession(i.GuildID, x, o)
	embed, components := ts.embed(), ts.components()
	msg, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	if err != nil {
		log.Error().Err(err).Msg("Error editing interaction response")
		return
	}
	ts.ChannelID = msg.ChannelID
	ts.MessageID = msg.ID
	b.TicTacToe.Put(ts)

	log.Info().Str("game", ts.ID).Str("x", x.Name).Str("o", o.Name).Msg("Tic-tac-toe game started")
}

// handleTicTacToeMove handles a cell button press
func (b *DiscordBot) handleTicTacToeMove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sessionID, pos, err := parseCellID(i.MessageComponentData().CustomID)
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring button press")
		return
	}
	ts, ok := b.TicTacToe.Get(sessionID)
	if !ok {
		b.replyEphemeral(s, i, "This game is no longer active, comrade.")
		return
	}

	ts.mu.Lock()
	if err := ts.play(interactionUser(i).ID, pos); err != nil {
		ts.mu.Unlock()
		b.replyEphemeral(s, i, tttErrorMessage(err))
		return
	}
	b.TicTacToe.Touch(ts.ID)
	embed, components := ts.embed(), ts.components()
	over, aiTurn := ts.game.IsOver(), ts.thinking
	ts.mu.Unlock()

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	}); err != nil {
		log.Error().Err(err).Str("game", ts.ID).Msg("Error updating game message")
	}

	switch {
	case over:
		b.finishTicTacToe(ts)
	case aiTurn:
		go b.playTicTacToeAI(s, i, ts)
	}
}

func (b *DiscordBot) playTicTacToeAI(s *discordgo.Session, i *discordgo.InteractionCreate, ts *tttSession) {
	time.Sleep(b.Config.AIThinkDelay)

	ts.mu.Lock()
	var pos int
	var err error
	b.withRand(func(rng *rand.Rand) { pos, err = ts.playAI(rng) })
	embed, components := ts.embed(), ts.components()
	over := ts.game.IsOver()
	ts.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("game", ts.ID).Msg("Computer failed to move")
		return
	}
	log.Debug().Str("game", ts.ID).Int("position", pos).Msg("Computer moved")

	b.TicTacToe.Touch(ts.ID)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	}); err != nil {
		log.Error().Err(err).Str("game", ts.ID).Msg("Error editing game message")
	}
	if over {
		b.finishTicTacToe(ts)
	}
}

func (b *DiscordBot) finishTicTacToe(ts *tttSession) {
	b.TicTacToe.Delete(ts.ID)
	ts.mu.Lock()
	winner := ts.game.Winner()
	ts.mu.Unlock()
	log.Info().Str("game", ts.ID).Str("winner", ts.Players[winner].Name).Msg("Tic-tac-toe game finished")
}

// abandonTicTacToe is the session store's expiry callback.
func (b *DiscordBot) abandonTicTacToe(ts *tttSession) {
	ts.mu.Lock()
	embed := ts.embed()
	embed.Description = ts.game.Render() + "\n\nGame abandoned due to inactivity!"
	ts.mu.Unlock()
	embed.Color = colorGray

	log.Info().Str("game", ts.ID).Msg("Tic-tac-toe game abandoned")
	b.clearGameMessage(ts.ChannelID, ts.MessageID, embed)
}

// clearGameMessage replaces a game message with embed and removes its
// buttons.
func (b *DiscordBot) clearGameMessage(channelID, messageID string, embed *discordgo.MessageEmbed) {
	if b.Session == nil || messageID == "" {
		return
	}
	edit := discordgo.NewMessageEdit(channelID, messageID).
		SetEmbeds([]*discordgo.MessageEmbed{embed})
	edit.Components = &[]discordgo.MessageComponent{}
	if _, err := b.Session.ChannelMessageEditComplex(edit); err != nil {
		log.Error().Err(err).Str("message", messageID).Msg("Error clearing game message")
	}
}

func tttErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotYourTurn):
		return "Wait your turn, comrade!"
	case errors.Is(err, errNotAPlayer):
		return "This is not your game, comrade. Start your own with `/tictactoe`."
	case errors.Is(err, errComputerThinking):
		return "The computer is still thinking. Patience, comrade."
	case errors.Is(err, tictactoe.ErrGameOver):
		return "This game is already over."
	case errors.Is(err, tictactoe.ErrInvalidMove):
		return "That square is taken! Choose another."
	}
	return "Something went wrong with that move."
}
