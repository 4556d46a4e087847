package discord

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/hunterjsb/boopato/internal/connect4"
	"github.com/hunterjsb/boopato/internal/economy"
	"github.com/rs/zerolog/log"
)

const connect4Prefix = "c4"

var (
	// ErrNotYourTurn is returned when a player presses a column out of turn.
	ErrNotYourTurn      = errors.New("not your turn")
	errNotAPlayer       = errors.New("not a player in this game")
	errComputerThinking = errors.New("the computer is thinking")
)

var (
	revolutionaryWins = []string{
		"has seized control of the board! The revolution succeeds!",
		"has united the workers and achieved victory!",
		"has spread the revolution across the board!",
		"has established the dictatorship of the proletariat!",
		"has proven that the collective will always triumph!",
	}
	capitalistWins = []string{
		"has temporarily gained control of the means of production...",
		"has shown reactionary tendencies, but the revolution will continue!",
		"has secured a victory, but the struggle continues!",
		"has won this battle, but not the class war!",
		"has succeeded in this game, but history is on our side!",
	}
)

type player struct {
	ID   string
	Name string
	AI   bool
}

// GameSession is one Connect 4 game attached to a Discord message.
type GameSession struct {
	ID        string
	GuildID   string
	ChannelID string
	MessageID string
	Players   map[connect4.Piece]player
	// Engine is nil when two humans play.
	Engine *connect4.Engine

	mu         sync.Mutex
	game       *connect4.Game
	thinking   bool
	lastAction string
	// flavor is the victory line, picked once when the game is won.
	flavor string
}

func newGameSession(guildID string, red, yellow player) *GameSession {
	gs := &GameSession{
		ID:      uuid.NewString(),
		GuildID: guildID,
		Players: map[connect4.Piece]player{connect4.Red: red, connect4.Yellow: yellow},
		game:    connect4.NewGame(),
	}
	if yellow.AI {
		gs.Engine = connect4.NewEngine(connect4.Yellow)
	}
	return gs
}

func (gs *GameSession) SessionID() string { return gs.ID }

func computerPlayer() player {
	return player{Name: "The computer", AI: true}
}

// challengedPlayer resolves the optional opponent option into the second
// player, defaulting to the computer. It reports false after telling the
// author why the challenge is invalid.
func (b *DiscordBot) challengedPlayer(s *discordgo.Session, i *discordgo.InteractionCreate, author *discordgo.User) (player, bool) {
	data := i.ApplicationCommandData()
	opt := findOption(data.Options, "opponent")
	if opt == nil {
		return computerPlayer(), true
	}
	opp := opt.UserValue(nil)
	if data.Resolved != nil {
		if u, ok := data.Resolved.Users[opp.ID]; ok {
			opp = u
		}
	}
	switch {
	case opp.ID == author.ID:
		b.sendError(s, i, "Invalid Opponent", "You can't play against yourself! Choose another player or leave empty to play against the computer.")
		return player{}, false
	case opp.Bot:
		b.sendError(s, i, "Invalid Opponent", "You can't play against a bot! Choose a human player or leave empty to play against the computer.")
		return player{}, false
	}
	return player{ID: opp.ID, Name: opp.Username}, true
}

// play drops userID's piece into col. The caller holds gs.mu.
func (gs *GameSession) play(userID string, col int) error {
	if gs.game.IsOver() {
		return connect4.ErrGameOver
	}
	if gs.thinking {
		return errComputerThinking
	}
	if gs.Players[gs.game.Turn()].ID != userID {
		if gs.Players[connect4.Red].ID != userID && gs.Players[connect4.Yellow].ID != userID {
			return errNotAPlayer
		}
		return ErrNotYourTurn
	}
	if _, err := gs.game.Play(col); err != nil {
		return err
	}
	gs.lastAction = ""
	gs.thinking = gs.aiToMove()
	return nil
}

// playAI lets the engine move. The caller holds gs.mu.
func (gs *GameSession) playAI() (connect4.Decision, error) {
	gs.thinking = false
	d, err := gs.game.PlayAI(gs.Engine)
	if err != nil {
		return d, err
	}
	gs.lastAction = fmt.Sprintf("Computer played in column %d.", d.Column+1)
	return d, nil
}

func (gs *GameSession) aiToMove() bool {
	return gs.Engine != nil && !gs.game.IsOver() && gs.game.Turn() == gs.Engine.AI
}

func (gs *GameSession) label(p connect4.Piece) string {
	pl := gs.Players[p]
	if pl.AI {
		return fmt.Sprintf("The computer (%s)", pieceEmoji(p))
	}
	return fmt.Sprintf("**%s** (%s)", pl.Name, pieceEmoji(p))
}

func (gs *GameSession) victoryLines() []string {
	if gs.Players[gs.game.Winner()].AI {
		return capitalistWins
	}
	return revolutionaryWins
}

// pickFlavor chooses the victory line for a won game. The caller holds gs.mu.
func (gs *GameSession) pickFlavor(rng *rand.Rand) {
	if gs.game.Status() != connect4.Won || gs.flavor != "" {
		return
	}
	msgs := gs.victoryLines()
	gs.flavor = msgs[rng.Intn(len(msgs))]
}

// status describes the game state below the board.
func (gs *GameSession) status() string {
	switch gs.game.Status() {
	case connect4.Won:
		flavor := gs.flavor
		if flavor == "" {
			flavor = gs.victoryLines()[0]
		}
		return fmt.Sprintf("%s %s", gs.label(gs.game.Winner()), flavor)
	case connect4.Draw:
		return "The game ended in a draw! Perfect balance, as all things should be!"
	}
	if gs.thinking {
		return fmt.Sprintf("%s is thinking...", gs.label(gs.game.Turn()))
	}
	return fmt.Sprintf("It's %s's turn", gs.label(gs.game.Turn()))
}

func pieceEmoji(p connect4.Piece) string {
	switch p {
	case connect4.Red:
		return "🔴"
	case connect4.Yellow:
		return "🟡"
	}
	return "⚪"
}

var columnEmojis = [connect4.Columns]string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣"}

// renderBoard draws the grid top row first with column numbers underneath.
func renderBoard(b connect4.Board) string {
	var sb strings.Builder
	for row := 0; row < connect4.Rows; row++ {
		for col := 0; col < connect4.Columns; col++ {
			sb.WriteString(pieceEmoji(b.At(row, col)))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Join(columnEmojis[:], ""))
	return sb.String()
}

func (gs *GameSession) embed() *discordgo.MessageEmbed {
	desc := renderBoard(gs.game.Board())
	if gs.lastAction != "" {
		desc += "\n\n" + gs.lastAction
	}
	desc += "\n" + gs.status()

	color := 0xdd2e44
	if gs.game.Turn() == connect4.Yellow {
		color = 0xfdcb58
	}
	return &discordgo.MessageEmbed{
		Title:       "☭ Connect 4: People's Revolution Edition ☭",
		Description: desc,
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "🎮 Players",
				Value:  fmt.Sprintf("%s vs %s", gs.label(connect4.Red), gs.label(connect4.Yellow)),
				Inline: false,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Game %s", gs.ID[:8]),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// components returns the column buttons, four then three per row. Buttons
// are disabled for full columns, finished games and while the computer
// thinks.
func (gs *GameSession) components() []discordgo.MessageComponent {
	locked := gs.game.IsOver() || gs.thinking
	button := func(col int) discordgo.MessageComponent {
		return discordgo.Button{
			Label:    strconv.Itoa(col + 1),
			Style:    discordgo.PrimaryButton,
			CustomID: moveID(gs.ID, col),
			Disabled: locked || !gs.game.IsValidMove(col),
		}
	}
	var first, second []discordgo.MessageComponent
	for col := 0; col < connect4.Columns; col++ {
		if col < 4 {
			first = append(first, button(col))
		} else {
			second = append(second, button(col))
		}
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: first},
		discordgo.ActionsRow{Components: second},
	}
}

func moveID(sessionID string, col int) string {
	return fmt.Sprintf("%s:%s:%d", connect4Prefix, sessionID, col)
}

// parseMoveID splits a button custom ID into its session and column.
func parseMoveID(customID string) (string, int, error) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != connect4Prefix || parts[1] == "" {
		return "", 0, fmt.Errorf("malformed move id %q", customID)
	}
	col, err := strconv.Atoi(parts[2])
	if err != nil || col < 0 || col >= connect4.Columns {
		return "", 0, fmt.Errorf("malformed move id %q", customID)
	}
	return parts[1], col, nil
}

// handleConnect4Command handles the /connect4 command
func (b *DiscordBot) handleConnect4Command(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferResponse(s, i) {
		return
	}
	if i.GuildID == "" {
		b.sendError(s, i, "Server Only", "This command can only be used in a server!")
		return
	}

	author := interactionUser(i)
	red := player{ID: author.ID, Name: author.Username}
	yellow, ok := b.challengedPlayer(s, i, author)
	if !ok {
		return
	}

	gs := newGameSession(i.GuildID, red, yellow)
	embed, components := gs.embed(), gs.components()

	msg, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	if err != nil {
		log.Error().Err(err).Msg("Error editing interaction response")
		return
	}
	gs.ChannelID = msg.ChannelID
	gs.MessageID = msg.ID
	b.Games.Put(gs)

	log.Info().
		Str("game", gs.ID).
		Str("red", red.Name).
		Str("yellow", yellow.Name).
		Msg("Connect 4 game started")
}

// handleConnect4Move handles a column button press
func (b *DiscordBot) handleConnect4Move(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sessionID, col, err := parseMoveID(i.MessageComponentData().CustomID)
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring button press")
		return
	}
	gs, ok := b.Games.Get(sessionID)
	if !ok {
		b.replyEphemeral(s, i, "This game is no longer active, comrade.")
		return
	}

	user := interactionUser(i)
	gs.mu.Lock()
	if err := gs.play(user.ID, col); err != nil {
		gs.mu.Unlock()
		b.replyEphemeral(s, i, moveErrorMessage(err))
		return
	}
	b.Games.Touch(gs.ID)
	over, aiTurn := gs.game.IsOver(), gs.thinking
	if over {
		b.withRand(gs.pickFlavor)
	}
	embed, components := gs.embed(), gs.components()
	gs.mu.Unlock()

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	}); err != nil {
		log.Error().Err(err).Str("game", gs.ID).Msg("Error updating game message")
	}

	switch {
	case over:
		b.finishGame(gs)
	case aiTurn:
		go b.playAITurn(s, i, gs)
	}
}

// playAITurn waits the think delay, lets the engine move and edits the game
// message.
func (b *DiscordBot) playAITurn(s *discordgo.Session, i *discordgo.InteractionCreate, gs *GameSession) {
	time.Sleep(b.Config.AIThinkDelay)

	gs.mu.Lock()
	d, err := gs.playAI()
	over := gs.game.IsOver()
	if over {
		b.withRand(gs.pickFlavor)
	}
	embed, components := gs.embed(), gs.components()
	gs.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("game", gs.ID).Msg("Engine failed to move")
		return
	}
	log.Debug().
		Str("game", gs.ID).
		Int("column", d.Column).
		Str("reason", string(d.Reason)).
		Int("depth", d.Depth).
		Int("nodes", d.Nodes).
		Dur("elapsed", d.Elapsed).
		Msg("Computer moved")

	b.Games.Touch(gs.ID)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	}); err != nil {
		log.Error().Err(err).Str("game", gs.ID).Msg("Error editing game message")
	}
	if over {
		b.finishGame(gs)
	}
}

// finishGame removes a decided game and records wins against the computer.
func (b *DiscordBot) finishGame(gs *GameSession) {
	b.Games.Delete(gs.ID)

	gs.mu.Lock()
	status, winner, moves := gs.game.Status(), gs.game.Winner(), gs.game.Moves()
	gs.mu.Unlock()

	log.Info().Str("game", gs.ID).Str("status", status.String()).Str("winner", winner.String()).Msg("Connect 4 game finished")
	if status != connect4.Won || gs.Engine == nil || gs.Players[winner].AI || b.Store == nil {
		return
	}

	w := gs.Players[winner]
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.Store.SaveGameScore(ctx, w.ID, gs.GuildID, w.Name, economy.GameConnect4, float64(winnerMoves(moves, winner))); err != nil {
		log.Error().Err(err).Str("game", gs.ID).Msg("Error saving score")
	}
}

// winnerMoves counts the moves made by the winning color. Red moves first.
func winnerMoves(total int, winner connect4.Piece) int {
	if winner == connect4.Red {
		return (total + 1) / 2
	}
	return total / 2
}

// abandonGame is the session store's expiry callback.
func (b *DiscordBot) abandonGame(gs *GameSession) {
	gs.mu.Lock()
	embed := gs.embed()
	embed.Description = renderBoard(gs.game.Board()) + "\n\nGame abandoned due to inactivity! The people demand action!"
	gs.mu.Unlock()
	embed.Color = colorGray

	log.Info().Str("game", gs.ID).Msg("Connect 4 game abandoned")
	b.clearGameMessage(gs.ChannelID, gs.MessageID, embed)
}

func moveErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotYourTurn):
		return "Wait your turn, comrade!"
	case errors.Is(err, errNotAPlayer):
		return "This is not your game, comrade. Start your own with `/connect4`."
	case errors.Is(err, errComputerThinking):
		return "The computer is still thinking. Patience, comrade."
	case errors.Is(err, connect4.ErrGameOver):
		return "This game is already over."
	case errors.Is(err, connect4.ErrInvalidMove):
		return "That column is full! Choose another."
	}
	return "Something went wrong with that move."
}
