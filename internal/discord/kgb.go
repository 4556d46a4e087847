package discord

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const kgbSystemPrompt = "You are a KGB agent from the 1970s Soviet Union monitoring a Discord chat. " +
	"Reply to the comrade's message in one or two short sentences: suspicious, darkly humorous, " +
	"full of Soviet bureaucratic menace. Never break character and never use more than 40 words."

// kgbTriggers map suspicious words to canned replies
var kgbTriggers = map[string][]string{
	"revolution": {
		"Comrade, the revolution has already happened. Are you suggesting another one? 🤨",
		"Interesting choice of words. Your file has been updated.",
	},
	"overthrow": {
		"The KGB has noted your interest in overthrowing things. Please report to the nearest office.",
		"Overthrow? We prefer the term 'unscheduled leadership transition'. Your papers, please.",
	},
	"capitalism": {
		"Capitalism? In this server? Your loyalty is being reviewed, comrade.",
		"We do not speak of the capitalist menace here. Consider this your only warning.",
	},
	"freedom": {
		"Freedom is a bourgeois illusion. You are free to agree with the Party.",
		"Your definition of freedom differs from the approved definition. Re-education is available.",
	},
	"western": {
		"Western influences detected. Please surrender your blue jeans at the border.",
		"Comrade, why do you speak of the West? Do you have relatives there? 🤨",
	},
}

var kgbGeneric = []string{
	"This message has been logged by the KGB. Carry on, comrade.",
	"The Party appreciates your contribution to this conversation. We are watching.",
	"Your enthusiasm has been noted in your permanent record.",
	"Interesting. Very interesting. 📝",
	"Comrade, a colleague of mine would like a word with you. Nothing to worry about.",
}

// NewKGBClient creates the chat completion client used for KGB replies. It
// returns a client that only uses canned lines when no API key is set.
func NewKGBClient(config *Config) *KGBClient {
	k := &KGBClient{
		model:       config.LLMModel,
		maxTokens:   config.MaxTokens,
		temperature: float32(config.Temperature),
	}
	if config.LLMToken == "" {
		return k
	}
	cfg := openai.DefaultConfig(config.LLMToken)
	if config.LLMBaseURL != "" {
		cfg.BaseURL = config.LLMBaseURL
	}
	k.client = openai.NewClientWithConfig(cfg)
	return k
}

// ShouldTrigger rolls whether a message draws KGB attention. Short messages
// never do.
func ShouldTrigger(content string, chance float64, rng *rand.Rand) bool {
	if len(content) <= 20 {
		return false
	}
	return rng.Float64() < chance
}

// CannedResponse picks a reply for content, preferring lines for the first
// trigger word it contains.
func CannedResponse(content string, rng *rand.Rand) string {
	lower := strings.ToLower(content)
	for _, word := range []string{"revolution", "overthrow", "capitalism", "freedom", "western"} {
		if strings.Contains(lower, word) {
			lines := kgbTriggers[word]
			return lines[rng.Intn(len(lines))]
		}
	}
	return kgbGeneric[rng.Intn(len(kgbGeneric))]
}

// GenerateResponse asks the model for a KGB reply to prompt
func (k *KGBClient) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	if k.client == nil {
		return "", fmt.Errorf("no LLM API key configured")
	}
	resp, err := k.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: k.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: kgbSystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   k.maxTokens,
			Temperature: k.temperature,
		},
	)

	if err != nil {
		return "", fmt.Errorf("ChatCompletion error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
