package discord

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// SetupCloseHandler creates a handler that will catch SIGINT and SIGTERM signals
// and gracefully close the application
func SetupCloseHandler(cleanupFunc func() error) {
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutting down...")
		err := cleanupFunc()
		if err != nil {
			log.Error().Err(err).Msg("Error during cleanup")
			os.Exit(1)
		}
		os.Exit(0)
	}()
}

// CleanMentions removes Discord mentions from a message
func CleanMentions(content string, mentions []*discordgo.User) string {
	for _, user := range mentions {
		content = strings.ReplaceAll(content, "<@"+user.ID+">", "")
		content = strings.ReplaceAll(content, "<@!"+user.ID+">", "")
	}
	return strings.TrimSpace(content)
}

// capitalizeFirst capitalizes the first letter of a string
func capitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
