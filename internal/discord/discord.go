package discord

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hunterjsb/boopato/internal/economy"
	"github.com/rs/zerolog/log"
)

var adminPermission int64 = discordgo.PermissionAdministrator

func jobChoices() []*discordgo.ApplicationCommandOptionChoice {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, j := range economy.Jobs() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  capitalizeFirst(string(j)),
			Value: string(j),
		})
	}
	return choices
}

// Command definitions
var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "connect4",
		Description: "Play Connect 4 against the computer or another comrade",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "opponent",
				Description: "Comrade to challenge (leave empty to play the computer)",
				Required:    false,
			},
		},
	},
	{
		Name:        "tictactoe",
		Description: "Play tic-tac-toe against the computer or another comrade",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "opponent",
				Description: "Comrade to challenge (leave empty to play the computer)",
				Required:    false,
			},
		},
	},
	{
		Name:        "hangman",
		Description: "Guess the state-approved word before the comrade is hanged",
	},
	{
		Name:        "boops",
		Description: "Check your boops and the communal pool",
	},
	{
		Name:        "claim",
		Description: "Claim your share of the communal pool",
	},
	{
		Name:        "work",
		Description: "Labor for the collective",
	},
	{
		Name:        "commit",
		Description: "Commit an act against the state (or for it)",
	},
	{
		Name:        "jobs",
		Description: "Manage your job in the people's economy",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List available jobs",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "apply",
				Description: "Apply for a job",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "job",
						Description: "The job to apply for",
						Required:    true,
						Choices:     jobChoices(),
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "quit",
				Description: "Quit your current job",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "promote",
				Description: "Ask the party for a promotion",
			},
		},
	},
	{
		Name:                     "redistribute",
		Description:              "Redistribute wealth from the richest to the poorest",
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "percentage",
				Description: "Tax rate for the wealthy (1-30, default: 10)",
				Required:    false,
			},
		},
	},
	{
		Name:                     "distribute",
		Description:              "Distribute the communal pool to every comrade",
		DefaultMemberPermissions: &adminPermission,
	},
	{
		Name:        "leaderboard",
		Description: "Show the top contributors, talkers and Connect 4 champions",
	},
	{
		Name:        "about",
		Description: "Learn about Boopato",
	},
	adminCommand,
}

// NewDiscordBot creates a new Discord bot with the provided configuration.
// store may be nil, in which case economy commands report an error.
func NewDiscordBot(config *Config, store *economy.Store) (*DiscordBot, error) {
	session, err := discordgo.New("Bot " + config.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	bot := &DiscordBot{
		Session:         session,
		Config:          config,
		Store:           store,
		KGB:             NewKGBClient(config),
		GuildID:         config.GuildID,
		CommandHandlers: make(map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)),
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	bot.Games = NewSessionStore(config.TurnTimeout, bot.abandonGame)
	bot.TicTacToe = NewSessionStore(config.TurnTimeout, bot.abandonTicTacToe)
	bot.Hangman = NewSessionStore(config.TurnTimeout, bot.abandonHangman)

	// Set up command handlers
	bot.CommandHandlers["connect4"] = bot.handleConnect4Command
	bot.CommandHandlers["tictactoe"] = bot.handleTicTacToeCommand
	bot.CommandHandlers["hangman"] = bot.handleHangmanCommand
	bot.CommandHandlers["boops"] = bot.handleBoopsCommand
	bot.CommandHandlers["claim"] = bot.handleClaimCommand
	bot.CommandHandlers["work"] = bot.handleWorkCommand
	bot.CommandHandlers["commit"] = bot.handleCommitCommand
	bot.CommandHandlers["jobs"] = bot.handleJobsCommand
	bot.CommandHandlers["redistribute"] = bot.handleRedistributeCommand
	bot.CommandHandlers["distribute"] = bot.handleDistributeCommand
	bot.CommandHandlers["leaderboard"] = bot.handleLeaderboardCommand
	bot.CommandHandlers["about"] = bot.handleAboutCommand
	bot.CommandHandlers["admin"] = bot.handleAdminCommand

	return bot, nil
}

// Start starts the Discord bot
func (b *DiscordBot) Start() error {
	// Get bot user ID
	user, err := b.Session.User("@me")
	if err != nil {
		return fmt.Errorf("error getting bot user: %w", err)
	}
	b.BotUserID = user.ID

	b.Session.AddHandler(b.interactionHandler)
	b.Session.AddHandler(b.messageHandler)
	b.Session.AddHandler(b.guildCreateHandler)

	// Open a websocket connection to Discord
	err = b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening Discord session: %w", err)
	}

	// Register commands
	registeredCommands, err := b.registerCommands()
	if err != nil {
		return fmt.Errorf("error registering commands: %w", err)
	}
	b.Commands = registeredCommands

	b.stopJanitors = []func(){
		b.Games.StartJanitor(30 * time.Second),
		b.TicTacToe.StartJanitor(30 * time.Second),
		b.Hangman.StartJanitor(30 * time.Second),
	}

	log.Info().
		Str("user", user.Username).
		Int("commands", len(registeredCommands)).
		Msg("Bot is now running with slash commands registered")
	return nil
}

// Stop stops the Discord bot and removes commands
func (b *DiscordBot) Stop() error {
	for _, stop := range b.stopJanitors {
		stop()
	}

	log.Info().Msg("Removing commands...")
	for _, cmd := range b.Commands {
		err := b.Session.ApplicationCommandDelete(b.Session.State.User.ID, b.GuildID, cmd.ID)
		if err != nil {
			log.Error().Err(err).Str("command", cmd.Name).Msg("Error removing command")
		}
	}

	return b.Session.Close()
}

// registerCommands registers the defined slash commands
func (b *DiscordBot) registerCommands() ([]*discordgo.ApplicationCommand, error) {
	registeredCommands := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		registered, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, b.GuildID, cmd)
		if err != nil {
			return nil, fmt.Errorf("error creating command '%s': %w", cmd.Name, err)
		}
		registeredCommands[i] = registered
	}

	return registeredCommands, nil
}

// interactionHandler handles Discord interaction events
func (b *DiscordBot) interactionHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		commandName := i.ApplicationCommandData().Name
		if handler, ok := b.CommandHandlers[commandName]; ok {
			handler(s, i)
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, connect4Prefix+":"):
			b.handleConnect4Move(s, i)
		case strings.HasPrefix(customID, tictactoePrefix+":"):
			b.handleTicTacToeMove(s, i)
		case strings.HasPrefix(customID, hangmanPrefix+":"):
			b.handleHangmanKey(s, i)
		case strings.HasPrefix(customID, adminPrefix+":"):
			b.handleResetButton(s, i)
		}
	}
}

// deferResponse acknowledges a command so the handler can take longer than
// three seconds. It reports whether the acknowledgement succeeded.
func (b *DiscordBot) deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		log.Error().Err(err).Msg("Error acknowledging interaction")
		return false
	}
	return true
}

// respondEmbed replaces the deferred response with embed
func (b *DiscordBot) respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		log.Error().Err(err).Msg("Error editing interaction response")
	}
}

// replyEphemeral answers an interaction with a message only the caller sees
func (b *DiscordBot) replyEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		log.Error().Err(err).Msg("Error sending ephemeral reply")
	}
}

// sendError sends an error embed
func (b *DiscordBot) sendError(s *discordgo.Session, i *discordgo.InteractionCreate, title, description string) {
	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       0xff0000,
	})
}

// interactionUser returns the member's user in guilds and the DM user otherwise
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func findOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

// withRand runs fn with the bot's random source. rand.Rand is not safe for
// concurrent use.
func (b *DiscordBot) withRand(fn func(rng *rand.Rand)) {
	b.rngMu.Lock()
	defer b.rngMu.Unlock()
	fn(b.rng)
}
