package discord

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hunterjsb/boopato/internal/economy"
	"github.com/rs/zerolog/log"
)

const (
	colorRed   = 0xcc0000
	colorGold  = 0xffd700
	colorGreen = 0x2ecc71
	colorGray  = 0x808080
)

// economyContext bounds the database work of a single command
func economyContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// beginEconomyCommand defers the response and makes sure the caller has a
// row. It returns nil after reporting any failure to Discord.
func (b *DiscordBot) beginEconomyCommand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) *discordgo.User {
	if !b.deferResponse(s, i) {
		return nil
	}
	if i.GuildID == "" {
		b.sendError(s, i, "Server Only", "This command can only be used in a server!")
		return nil
	}
	if b.Store == nil {
		b.sendError(s, i, "Economy Offline", "The people's treasury is closed. No database is configured.")
		return nil
	}
	user := interactionUser(i)
	if _, err := b.Store.EnsureUser(ctx, user.ID, i.GuildID, user.Username); err != nil {
		log.Error().Err(err).Str("user", user.ID).Msg("Error ensuring user")
		b.sendError(s, i, "Database Error", "Could not find your papers, comrade.")
		return nil
	}
	return user
}

func (b *DiscordBot) dbError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, msg string) {
	log.Error().Err(err).Str("guild", i.GuildID).Msg(msg)
	b.sendError(s, i, "Database Error", msg)
}

// handleBoopsCommand handles the /boops command
func (b *DiscordBot) handleBoopsCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := economyContext()
	defer cancel()
	user := b.beginEconomyCommand(ctx, s, i)
	if user == nil {
		return
	}

	sum := boopsSummary{Username: user.Username}
	var err error
	if sum.Balance, err = b.Store.Balance(ctx, user.ID); err != nil {
		b.dbError(s, i, err, "Could not read your balance.")
		return
	}
	if sum.Pool, err = b.Store.CommunalPool(ctx, i.GuildID); err != nil {
		b.dbError(s, i, err, "Could not read the communal pool.")
		return
	}
	if sum.Job, sum.Level, err = b.Store.Job(ctx, user.ID); err != nil {
		b.dbError(s, i, err, "Could not read your job.")
		return
	}
	if sum.Round, sum.Claimed, sum.Total, err = b.Store.DistributionStatus(ctx, i.GuildID); err != nil {
		b.dbError(s, i, err, "Could not read the distribution status.")
		return
	}
	sum.Bests = make(map[string]float64)
	for _, game := range personalBestGames {
		best, ok, err := b.Store.BestScore(ctx, user.ID, i.GuildID, game.id)
		if err != nil {
			b.dbError(s, i, err, "Could not read your records.")
			return
		}
		if ok {
			sum.Bests[game.id] = best
		}
	}

	b.respondEmbed(s, i, formatBoopsEmbed(sum))
}

// boopsSummary is everything /boops shows about a comrade.
type boopsSummary struct {
	Username              string
	Balance, Pool         float64
	Job                   economy.JobType
	Level                 int
	Round, Claimed, Total int64
	// Bests maps a game type to the user's best score in it.
	Bests map[string]float64
}

var personalBestGames = []struct {
	id     string
	format string
}{
	{economy.GameConnect4, "Connect 4: beat the computer in **%.0f** moves"},
	{economy.GameHangman, "Hangman: saved the comrade with **%.0f** wrong guesses"},
}

func formatBoopsEmbed(sum boopsSummary) *discordgo.MessageEmbed {
	position := "Unemployed"
	if sum.Job != economy.JobNone {
		position = fmt.Sprintf("%s %s (Level %d)", economy.LevelTitle(sum.Level), capitalizeFirst(string(sum.Job)), sum.Level)
	}
	var bests []string
	for _, game := range personalBestGames {
		if best, ok := sum.Bests[game.id]; ok {
			bests = append(bests, fmt.Sprintf(game.format, best))
		}
	}
	record := "No victories yet. Play /connect4 or /hangman, comrade!"
	if len(bests) > 0 {
		record = strings.Join(bests, "\n")
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("☭ %s's Boops ☭", sum.Username),
		Description: "Your contribution to the glorious collective.",
		Color:       colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💰 Personal Boops", Value: fmt.Sprintf("**%.2f**", sum.Balance), Inline: true},
			{Name: "🏛️ Communal Pool", Value: fmt.Sprintf("**%.2f**", sum.Pool), Inline: true},
			{Name: "⚒️ Position", Value: position, Inline: false},
			{Name: "📦 Distribution", Value: fmt.Sprintf("Round %d: %d of %d comrades have claimed", sum.Round, sum.Claimed, sum.Total), Inline: false},
			{Name: "🏆 Personal Bests", Value: record, Inline: false},
		},
	}
}

// handleClaimCommand handles the /claim command
func (b *DiscordBot) handleClaimCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := economyContext()
	defer cancel()
	user := b.beginEconomyCommand(ctx, s, i)
	if user == nil {
		return
	}

	share, err := b.Store.Claim(ctx, user.ID, i.GuildID)
	if err != nil {
		b.dbError(s, i, err, "Could not process your claim.")
		return
	}
	if share == 0 {
		claimed, err := b.Store.HasClaimed(ctx, user.ID, i.GuildID)
		if err != nil {
			b.dbError(s, i, err, "Could not process your claim.")
			return
		}
		msg := "The communal pool is empty, comrade. Work harder for the collective!"
		if claimed {
			msg = "You have already claimed your share this round. Wait for the next distribution, comrade."
		}
		b.sendError(s, i, "Nothing to Claim", msg)
		return
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "☭ Share Claimed ☭",
		Description: fmt.Sprintf("You received **%.2f** boops from the communal pool. From each according to their ability, to each according to their needs!", share),
		Color:       colorGreen,
	})
}

// handleWorkCommand handles the /work command
func (b *DiscordBot) handleWorkCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := economyContext()
	defer cancel()
	user := b.beginEconomyCommand(ctx, s, i)
	if user == nil {
		return
	}
	job, level, err := b.Store.Job(ctx, user.ID)
	if err != nil {
		b.dbError(s, i, err, "Could not read your job.")
		return
	}
	var res economy.WorkResult
	b.withRand(func(rng *rand.Rand) { res = economy.Work(job, level, rng) })

	if !b.recordLabor(ctx, s, i, user.ID, economy.ActionWork, res.Communal, res.Personal, "Your next work shift is permitted") {
		return
	}

	log.Info().Str("user", user.ID).Str("job", string(job)).Float64("earned", res.Earned).Msg("Work shift completed")
	b.respondEmbed(s, i, formatWorkEmbed(job, level, res))
}

func formatWorkEmbed(job economy.JobType, level int, res economy.WorkResult) *discordgo.MessageEmbed {
	assignment := "General Labor"
	if job != economy.JobNone {
		assignment = fmt.Sprintf("%s %s (Level %d)", economy.LevelTitle(level), capitalizeFirst(string(job)), level)
	}
	return &discordgo.MessageEmbed{
		Title:       "⚒️ Labor Report ⚒️",
		Description: fmt.Sprintf("Work Assignment: %s", assignment),
		Color:       colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Production", Value: fmt.Sprintf("**%.2f** boops produced through your labor", res.Earned), Inline: false},
			{Name: "🏛️ To the Collective", Value: fmt.Sprintf("%.2f", res.Communal), Inline: true},
			{Name: "💰 Your Share", Value: fmt.Sprintf("%.2f", res.Personal), Inline: true},
			{Name: "Effort", Value: fmt.Sprintf("Exceptional Effort: **+%.0f%%**", res.Effort*100), Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Next shift in 3 hours"},
	}
}

// handleCommitCommand handles the /commit command
func (b *DiscordBot) handleCommitCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := economyContext()
	defer cancel()
	user := b.beginEconomyCommand(ctx, s, i)
	if user == nil {
		return
	}
	var res economy.CommitResult
	b.withRand(func(rng *rand.Rand) { res = economy.Commit(rng) })

	communal, personal := commitPayout(res)
	if !b.recordLabor(ctx, s, i, user.ID, economy.ActionCommit, communal, personal, "Comrade, you must lay low until") {
		return
	}

	b.respondEmbed(s, i, formatCommitEmbed(guildName(s, i.GuildID), res))
}

func formatCommitEmbed(server string, res economy.CommitResult) *discordgo.MessageEmbed {
	switch {
	case res.Communism:
		return &discordgo.MessageEmbed{
			Title: "🌟 You've committed an act of COMMUNISM! 🌟",
			Description: fmt.Sprintf("You %s! Your service to the community has been recognized.\n\n"+
				"%.2f boops have been added to the communal pool, and you've received %.2f boops as a personal bonus for your initiative!",
				res.Act, res.Communal, res.Personal),
			Color: colorGold,
		}
	case res.Caught:
		return &discordgo.MessageEmbed{
			Title: "🚨 CRIMINAL ALERT! 🚨",
			Description: fmt.Sprintf("You %s in %s and got caught!\n\nThe secret police have fined you %.2f boops for your crimes against the state.",
				res.Crime.Description, server, res.Fine),
			Color: colorRed,
		}
	}
	return &discordgo.MessageEmbed{
		Title: "🤫 You've committed a crime! 🤫",
		Description: fmt.Sprintf("You %s in %s and got away with it!\n\nWhile your actions are capitalist in nature, your cunning is commendable. Be more careful next time, comrade.",
			res.Crime.Description, server),
		Color: colorGray,
	}
}

// commitPayout returns what a deed pays the pool and the user. Fines are
// negative personal amounts.
func commitPayout(res economy.CommitResult) (communal, personal float64) {
	switch {
	case res.Communism:
		return res.Communal, res.Personal
	case res.Caught:
		return 0, -res.Fine
	}
	return 0, 0
}

// recordLabor stamps the cooldown and pays out. It reports false after
// telling the user why nothing happened.
func (b *DiscordBot) recordLabor(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string, a economy.Action, communal, personal float64, cooldownPrefix string) bool {
	err := b.Store.RecordLabor(ctx, userID, i.GuildID, a, communal, personal)
	if errors.Is(err, economy.ErrOnCooldown) {
		last, err := b.Store.LastAction(ctx, userID, a)
		if err != nil {
			b.dbError(s, i, err, "Could not check your records.")
			return false
		}
		now := time.Now()
		ready := now.Add(economy.CooldownRemaining(last, now, a.Window()))
		b.sendError(s, i, "Cooldown", fmt.Sprintf("%s <t:%d:R>", cooldownPrefix, ready.Unix()))
		return false
	}
	if err != nil {
		b.dbError(s, i, err, "Could not deliver your labor to the collective.")
		return false
	}
	return true
}

// handleJobsCommand handles the /jobs command and its subcommands
func (b *DiscordBot) handleJobsCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := economyContext()
	defer cancel()
	user := b.beginEconomyCommand(ctx, s, i)
	if user == nil {
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.sendError(s, i, "Invalid Command", "Choose list, apply, quit or promote.")
		return
	}
	sub := options[0]

	job, level, err := b.Store.Job(ctx, user.ID)
	if err != nil {
		b.dbError(s, i, err, "Could not read your job.")
		return
	}

	switch sub.Name {
	case "list":
		b.respondEmbed(s, i, formatJobsEmbed(job, level))
	case "apply":
		b.applyForJob(ctx, s, i, user, job, sub.Options)
	case "quit":
		if job == economy.JobNone {
			b.sendError(s, i, "No Job", "You don't have a job to quit, comrade!")
			return
		}
		if err := b.Store.SetJob(ctx, user.ID, economy.JobNone); err != nil {
			b.dbError(s, i, err, "Could not process your resignation.")
			return
		}
		b.respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Resignation Accepted",
			Description: fmt.Sprintf("You have left your position as a %s. The Party notes your lack of commitment.", job),
			Color:       colorGray,
		})
	case "promote":
		b.requestPromotion(ctx, s, i, user, job, level)
	}
}

func (b *DiscordBot) applyForJob(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *discordgo.User, current economy.JobType, options []*discordgo.ApplicationCommandInteractionDataOption) {
	opt := findOption(options, "job")
	if opt == nil {
		b.sendError(s, i, "Invalid Job", "Tell the Party which job you want.")
		return
	}
	job, ok := economy.ParseJob(opt.StringValue())
	if !ok || job == economy.JobNone {
		var names []string
		for _, j := range economy.Jobs() {
			names = append(names, string(j))
		}
		b.sendError(s, i, "Invalid Job", fmt.Sprintf("That is not a valid job. Available jobs are: %s", strings.Join(names, ", ")))
		return
	}
	if job == current {
		b.sendError(s, i, "Already Employed", fmt.Sprintf("You are already working as a %s!", job))
		return
	}

	var accepted bool
	b.withRand(func(rng *rand.Rand) { accepted = economy.ApplicationAccepted(rng) })
	if !accepted {
		b.respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Application Rejected",
			Description: fmt.Sprintf("The Party has reviewed your application to be a %s and found you unworthy. Try again later, comrade.", job),
			Color:       colorGray,
		})
		return
	}
	if err := b.Store.SetJob(ctx, user.ID, job); err != nil {
		b.dbError(s, i, err, "Could not file your papers.")
		return
	}
	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Application Accepted",
		Description: fmt.Sprintf("Congratulations, comrade! You are now an Apprentice %s.\n*%s*", capitalizeFirst(string(job)), job.Description()),
		Color:       colorGreen,
	})
}

func (b *DiscordBot) requestPromotion(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *discordgo.User, job economy.JobType, level int) {
	if job == economy.JobNone {
		b.sendError(s, i, "No Job", "You need a job before the Party can promote you!")
		return
	}
	if level >= economy.MaxJobLevel {
		b.sendError(s, i, "Maximum Level", fmt.Sprintf("You have already reached the maximum level (%d) as a %s! The Party applauds your dedication.", economy.MaxJobLevel, job))
		return
	}

	var granted bool
	b.withRand(func(rng *rand.Rand) { granted = economy.PromotionGranted(rng) })
	if !granted {
		b.respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Promotion Denied",
			Description: "The Party has decided you need more time to prove your dedication. Keep working, comrade.",
			Color:       colorGray,
		})
		return
	}
	newLevel, _, err := b.Store.PromoteJob(ctx, user.ID)
	if err != nil {
		b.dbError(s, i, err, "Could not process your promotion.")
		return
	}
	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Promotion Granted",
		Description: fmt.Sprintf("You are now a %s %s (Level %d)!", economy.LevelTitle(newLevel), capitalizeFirst(string(job)), newLevel),
		Color:       colorGold,
	})
}

func formatJobsEmbed(current economy.JobType, level int) *discordgo.MessageEmbed {
	var sb strings.Builder
	if current != economy.JobNone {
		fmt.Fprintf(&sb, "**Your Current Position: %s** (Level %d)\n*%s*\nWork Efficiency: %.1fx boops multiplier\n\n",
			capitalizeFirst(string(current)), level, current.Description(), current.Multiplier())
	}
	for _, j := range economy.Jobs() {
		fmt.Fprintf(&sb, "- **%s**: %s\n  Work Efficiency: %.1fx boops multiplier\n", capitalizeFirst(string(j)), j.Description(), j.Multiplier())
	}
	return &discordgo.MessageEmbed{
		Title:       "☭ People's Employment Office ☭",
		Description: sb.String(),
		Color:       colorRed,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Use /jobs apply to join the workforce"},
	}
}

func isAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// handleRedistributeCommand handles the /redistribute command
func (b *DiscordBot) handleRedistributeCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := economyContext()
	defer cancel()
	if b.beginEconomyCommand(ctx, s, i) == nil {
		return
	}
	if !isAdmin(i) {
		b.sendError(s, i, "Permission Denied", "Only server administrators may redistribute wealth.")
		return
	}

	rate := economy.DefaultRedistributionRate
	if opt := findOption(i.ApplicationCommandData().Options, "percentage"); opt != nil {
		rate = float64(opt.IntValue())
	}

	plan, err := b.Store.RedistributeWealth(ctx, i.GuildID, rate)
	if err != nil {
		b.dbError(s, i, err, "Could not redistribute wealth.")
		return
	}
	if !plan.Denied() {
		log.Info().Str("guild", i.GuildID).Float64("total", plan.Total).Int("recipients", len(plan.Recipients)).Msg("Wealth redistributed")
	}
	b.respondEmbed(s, i, formatRedistributionEmbed(guildName(s, i.GuildID), plan))
}

func formatRedistributionEmbed(server string, plan economy.RedistributionPlan) *discordgo.MessageEmbed {
	if plan.Denied() {
		return &discordgo.MessageEmbed{
			Title:       "Redistribution Denied",
			Description: "Not enough wealth to redistribute. The bourgeoisie are already poor!",
			Color:       colorGray,
		}
	}

	var taxed, paid strings.Builder
	for _, t := range plan.Taxed {
		fmt.Fprintf(&taxed, "**%s**: -%.2f\n", t.User.Username, t.Amount)
	}
	for _, t := range plan.Recipients {
		fmt.Fprintf(&paid, "**%s**: +%.2f\n", t.User.Username, t.Amount)
	}
	return &discordgo.MessageEmbed{
		Title:       "☭ Wealth Redistribution ☭",
		Description: fmt.Sprintf("Economic Reformation of %s", server),
		Color:       colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Tax Rate", Value: fmt.Sprintf("%.0f%%", plan.Rate*100), Inline: true},
			{Name: "Total Redistributed", Value: fmt.Sprintf("%.2f boops", plan.Total), Inline: true},
			{Name: fmt.Sprintf("Top Contributors (%d)", len(plan.Taxed)), Value: taxed.String(), Inline: false},
			{Name: fmt.Sprintf("Recipients (%d)", len(plan.Recipients)), Value: paid.String(), Inline: false},
		},
	}
}

// handleDistributeCommand handles the /distribute command
func (b *DiscordBot) handleDistributeCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := economyContext()
	defer cancel()
	if b.beginEconomyCommand(ctx, s, i) == nil {
		return
	}
	if !isAdmin(i) {
		b.sendError(s, i, "Permission Denied", "Only server administrators may distribute the communal pool.")
		return
	}

	paid, share, err := b.Store.DistributeToAll(ctx, i.GuildID)
	if err != nil {
		b.dbError(s, i, err, "Could not distribute the communal pool.")
		return
	}
	if paid == 0 {
		b.sendError(s, i, "Nothing to Distribute", "The communal pool is empty!")
		return
	}
	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "☭ The Pool Has Been Distributed ☭",
		Description: fmt.Sprintf("Each of %d comrades received **%.2f** boops. A new distribution round begins!", paid, share),
		Color:       colorGreen,
	})
}

// handleLeaderboardCommand handles the /leaderboard command
func (b *DiscordBot) handleLeaderboardCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := economyContext()
	defer cancel()
	if b.beginEconomyCommand(ctx, s, i) == nil {
		return
	}

	contributors, err := b.Store.TopContributors(ctx, i.GuildID, 5)
	if err != nil {
		b.dbError(s, i, err, "Could not fetch the leaderboard.")
		return
	}
	talkers, err := b.Store.TopTalkers(ctx, i.GuildID, 5)
	if err != nil {
		b.dbError(s, i, err, "Could not fetch the leaderboard.")
		return
	}
	c4, err := b.Store.Leaderboard(ctx, i.GuildID, economy.GameConnect4, 5)
	if err != nil {
		b.dbError(s, i, err, "Could not fetch the leaderboard.")
		return
	}
	hm, err := b.Store.Leaderboard(ctx, i.GuildID, economy.GameHangman, 5)
	if err != nil {
		b.dbError(s, i, err, "Could not fetch the leaderboard.")
		return
	}

	b.respondEmbed(s, i, formatLeaderboardEmbed(contributors, talkers, c4, hm))
}

func formatLeaderboardEmbed(contributors, talkers []economy.User, c4Scores, hangmanScores []economy.Score) *discordgo.MessageEmbed {
	medals := []string{"🥇", "🥈", "🥉"}
	rank := func(n int) string {
		if n < len(medals) {
			return medals[n]
		}
		return fmt.Sprintf("%d.", n+1)
	}
	list := func(lines []string) string {
		if len(lines) == 0 {
			return "No comrades yet"
		}
		return strings.Join(lines, "\n")
	}

	var rich, loud, c4, hm []string
	for n, u := range contributors {
		rich = append(rich, fmt.Sprintf("%s **%s**: %.2f boops", rank(n), u.Username, u.Boops))
	}
	for n, u := range talkers {
		loud = append(loud, fmt.Sprintf("%s **%s**: %d messages", rank(n), u.Username, u.Messages))
	}
	for n, sc := range c4Scores {
		c4 = append(c4, fmt.Sprintf("%s **%s**: won in %.0f moves", rank(n), sc.Username, sc.Best))
	}
	for n, sc := range hangmanScores {
		hm = append(hm, fmt.Sprintf("%s **%s**: %.0f wrong guesses", rank(n), sc.Username, sc.Best))
	}

	return &discordgo.MessageEmbed{
		Title: "☭ Heroes of the Revolution ☭",
		Color: colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💰 Top Contributors", Value: list(rich), Inline: false},
			{Name: "📢 Most Vocal Comrades", Value: list(loud), Inline: false},
			{Name: "🔴 Connect 4 Champions", Value: list(c4), Inline: false},
			{Name: "🪢 Hangman Heroes", Value: list(hm), Inline: false},
		},
	}
}

// handleAboutCommand handles the /about command
func (b *DiscordBot) handleAboutCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{aboutEmbed()},
		},
	}); err != nil {
		log.Error().Err(err).Msg("Error responding to about")
	}
}

func aboutEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "☭ Boopato ☭",
		Description: "The people's bot. Earn boops for the collective, claim your fair share, and challenge the computer at Connect 4, tic-tac-toe and hangman.",
		Color:       colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Economy", Value: "`/boops` `/claim` `/work` `/commit` `/jobs`", Inline: false},
			{Name: "Games", Value: "`/connect4` `/tictactoe` `/hangman` `/leaderboard`", Inline: false},
			{Name: "Administration", Value: "`/redistribute` `/distribute` `/admin`", Inline: false},
		},
	}
}

// guildName looks the guild up in the state cache
func guildName(s *discordgo.Session, guildID string) string {
	if s != nil && s.State != nil {
		if g, err := s.State.Guild(guildID); err == nil && g.Name != "" {
			return g.Name
		}
	}
	return "the server"
}
