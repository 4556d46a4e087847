package discord

import (
	"math/rand"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hunterjsb/boopato/internal/economy"
	"github.com/sashabaranov/go-openai"
)

// DiscordBot represents a Discord bot
type DiscordBot struct {
	Session         *discordgo.Session
	Config          *Config
	Store           *economy.Store
	KGB             *KGBClient
	Games           *SessionStore[*GameSession]
	TicTacToe       *SessionStore[*tttSession]
	Hangman         *SessionStore[*hangmanSession]
	BotUserID       string
	GuildID         string
	Commands        []*discordgo.ApplicationCommand
	CommandHandlers map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)

	stopJanitors []func()

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Config holds Discord bot configuration
type Config struct {
	DiscordToken string
	GuildID      string
	DatabasePath string
	LogLevel     string

	// OpenAI-compatible endpoint used for KGB replies
	LLMToken    string
	LLMBaseURL  string
	LLMModel    string
	MaxTokens   int
	Temperature float64
	KGBChance   float64

	AIThinkDelay time.Duration
	TurnTimeout  time.Duration
}

// KGBClient wraps the chat completion client used for KGB replies
type KGBClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}
