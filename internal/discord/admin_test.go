package discord

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/hunterjsb/boopato/internal/economy"
)

func TestResetID(t *testing.T) {
	tests := []struct {
		confirm bool
		user    string
		want    string
	}{
		{true, "42", "admin:reset:confirm:42"},
		{false, "42", "admin:reset:cancel:42"},
	}
	for _, tt := range tests {
		id := resetID(tt.confirm, tt.user)
		if id != tt.want {
			t.Errorf("Expected %s, got %s", tt.want, id)
		}
		confirm, user, err := parseResetID(id)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if confirm != tt.confirm || user != tt.user {
			t.Errorf("Expected %v/%s, got %v/%s", tt.confirm, tt.user, confirm, user)
		}
	}

	bad := []string{"", "admin", "admin:reset:confirm", "admin:reset:confirm:", "admin:reset:maybe:42", "c4:reset:confirm:42", "admin:nuke:confirm:42"}
	for _, id := range bad {
		if _, _, err := parseResetID(id); err == nil {
			t.Errorf("Expected error for %q", id)
		}
	}
}

func TestResetButtons(t *testing.T) {
	row := resetButtons("42")
	if len(row.Components) != 2 {
		t.Fatalf("Expected confirm and cancel buttons, got %d", len(row.Components))
	}
	confirm := row.Components[0].(discordgo.Button)
	if confirm.Style != discordgo.DangerButton || confirm.CustomID != "admin:reset:confirm:42" {
		t.Errorf("Unexpected confirm button %+v", confirm)
	}
	if cancel := row.Components[1].(discordgo.Button); cancel.CustomID != "admin:reset:cancel:42" {
		t.Errorf("Unexpected cancel button %+v", cancel)
	}
}

func TestFormatUserListEmbed(t *testing.T) {
	if empty := formatUserListEmbed(nil); !strings.HasPrefix(empty.Description, "No users found") {
		t.Errorf("Unexpected empty list %q", empty.Description)
	}

	users := []economy.User{
		{ID: "1", Username: "lenin", Boops: 12.5},
		{ID: "2", Username: "trotsky", Boops: 3},
	}
	embed := formatUserListEmbed(users)
	if !strings.HasPrefix(embed.Description, "1. **lenin** (ID: 1) - 12.50 boops\n2. **trotsky**") {
		t.Errorf("Unexpected list %q", embed.Description)
	}
	if embed.Footer.Text != "2 comrades" {
		t.Errorf("Unexpected footer %q", embed.Footer.Text)
	}

	many := make([]economy.User, 500)
	for n := range many {
		many[n] = economy.User{ID: strings.Repeat("9", 18), Username: "comrade"}
	}
	embed = formatUserListEmbed(many)
	if len(embed.Description) > 4096 {
		t.Errorf("Expected the list to fit in an embed, got %d characters", len(embed.Description))
	}
	if !strings.Contains(embed.Description, "more") {
		t.Error("Expected a truncation note")
	}
}

func TestSyncMembers(t *testing.T) {
	store, err := economy.Open(context.Background(), filepath.Join(t.TempDir(), "boopato.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	if _, err := store.EnsureUser(ctx, "1", "guild", "lenin"); err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	members := []*discordgo.Member{
		{User: &discordgo.User{ID: "1", Username: "lenin"}},
		{User: &discordgo.User{ID: "2", Username: "trotsky"}},
		{User: &discordgo.User{ID: "3", Username: "boopato", Bot: true}},
		{},
		nil,
	}
	added, existing := syncMembers(ctx, store, "guild", members)
	if added != 1 || existing != 1 {
		t.Errorf("Expected 1 added and 1 existing, got %d and %d", added, existing)
	}

	users, err := store.AllUsers(ctx, "guild")
	if err != nil {
		t.Fatalf("AllUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("Expected the bot to be skipped, got %+v", users)
	}

	added, existing = syncMembers(ctx, store, "guild", members)
	if added != 0 || existing != 2 {
		t.Errorf("Expected a second sync to add nobody, got %d and %d", added, existing)
	}
}
