package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hunterjsb/boopato/internal/connect4"
	"github.com/hunterjsb/boopato/internal/discord"
	"github.com/hunterjsb/boopato/internal/dotenv"
	"github.com/hunterjsb/boopato/internal/economy"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := dotenv.LoadDefault(); err != nil {
		log.Warn().Err(err).Msg("Error loading .env file, continuing with environment variables from system")
	}
	setLogLevel(os.Getenv("LOG_LEVEL"))

	// Check if we should run the Discord bot or the terminal demo
	mode := os.Getenv("MODE")

	switch mode {
	case "discord":
		runDiscordBot()
	case "demo":
		runDemo()
	default:
		log.Info().Msg("MODE not set or invalid. Set MODE=discord to run the Discord bot or MODE=demo for a Connect 4 self-play demo")
		log.Info().Msg("Running demo by default...")
		runDemo()
	}
}

func setLogLevel(level string) {
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.Warn().Str("level", level).Msg("Unknown LOG_LEVEL, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func runDiscordBot() {
	log.Info().Msg("Starting Discord bot mode...")

	// Load Discord bot configuration
	config, err := discord.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Configuration validation failed")
	}

	store, err := economy.Open(context.Background(), config.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", config.DatabasePath).Msg("Error opening database")
	}

	// Create and start bot
	bot, err := discord.NewDiscordBot(config, store)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating bot")
	}

	if err := bot.Start(); err != nil {
		log.Fatal().Err(err).Msg("Error starting bot")
	}

	// Set up graceful shutdown
	discord.SetupCloseHandler(func() error {
		log.Info().Msg("Shutting down bot...")
		err := bot.Stop()
		if cerr := store.Close(); err == nil {
			err = cerr
		}
		return err
	})

	// Block main goroutine indefinitely
	log.Info().Msg("Bot is now running. Press CTRL-C to exit.")
	select {}
}

// runDemo lets two engines play each other in the terminal
func runDemo() {
	log.Info().Msg("Starting Connect 4 self-play demo...")

	game := connect4.NewGame()
	engines := map[connect4.Piece]*connect4.Engine{
		connect4.Red:    connect4.NewEngine(connect4.Red),
		connect4.Yellow: connect4.NewEngine(connect4.Yellow),
	}

	for !game.IsOver() {
		turn := game.Turn()
		d, err := game.PlayAI(engines[turn])
		if err != nil {
			log.Fatal().Err(err).Msg("Engine failed to move")
		}
		fmt.Printf("\n%s plays column %d (%s, depth %d, %d nodes, %s)\n",
			pieceColor(turn).Sprint(turn.String()), d.Column+1, d.Reason, d.Depth, d.Nodes, d.Elapsed.Round(time.Millisecond))
		printBoard(game.Board())
	}

	switch game.Status() {
	case connect4.Won:
		fmt.Printf("\n%s wins after %d moves!\n", pieceColor(game.Winner()).Sprint(game.Winner().String()), game.Moves())
	default:
		fmt.Println("\nThe game ended in a draw! Perfect balance, as all things should be!")
	}
}

func pieceColor(p connect4.Piece) *color.Color {
	switch p {
	case connect4.Red:
		return color.New(color.FgRed, color.Bold)
	case connect4.Yellow:
		return color.New(color.FgYellow, color.Bold)
	}
	return color.New(color.FgHiBlack)
}

func printBoard(b connect4.Board) {
	for row := 0; row < connect4.Rows; row++ {
		for col := 0; col < connect4.Columns; col++ {
			fmt.Print(pieceColor(b.At(row, col)).Sprint(" ●"))
		}
		fmt.Println()
	}
	for col := 1; col <= connect4.Columns; col++ {
		fmt.Printf(" %d", col)
	}
	fmt.Println()
}
