package economy

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Work output constants.
const (
	BaseWorkBoops  = 5.0
	CommunalShare  = 0.9
	MaxEffortBonus = 0.5
	LevelBonus     = 0.05
)

// WorkResult is the outcome of one work shift.
type WorkResult struct {
	Earned   float64
	Communal float64
	Personal float64
	// Effort is the random bonus in [0, MaxEffortBonus].
	Effort float64
}

// Work computes a shift's output. Job holders earn their multiplier plus
// LevelBonus per level above the first.
func Work(job JobType, level int, rng *rand.Rand) WorkResult {
	effort := rng.Float64() * MaxEffortBonus
	mult := 1.0
	if job != JobNone {
		mult = job.Multiplier() + float64(level-1)*LevelBonus
	}
	earned := round2(BaseWorkBoops * (mult + effort))
	communal := round2(earned * CommunalShare)
	return WorkResult{
		Earned:   earned,
		Communal: communal,
		Personal: earned - communal,
		Effort:   effort,
	}
}

// Crime is one of the misdeeds /commit may roll.
type Crime struct {
	Description string
	Penalty     float64
	// Risky crimes may be caught and fined.
	Risky bool
}

var Crimes = []Crime{
	{"stole a loaf of bread", 5, false},
	{"skipped mandatory party meeting", 10, false},
	{"distributed unauthorized literature", 15, true},
	{"hoarded potatoes", 8, false},
	{"vandalized party propaganda", 12, true},
	{"listened to capitalist radio", 7, false},
	{"wore blue jeans", 5, false},
	{"spoke out against the leadership", 20, true},
}

var CommunismActs = []string{
	"established a community garden",
	"organized a neighborhood cleanup",
	"started a mutual aid network",
	"distributed bread to the hungry",
	"founded a workers' cooperative",
	"created a free library",
	"organized a clothing swap",
	"set up a tool sharing program",
}

// CommitResult is the outcome of /commit. Exactly one of Act or Crime is set.
type CommitResult struct {
	Communism bool
	Act       string
	Communal  float64
	Personal  float64

	Crime  Crime
	Caught bool
	// Fine is the positive amount deducted when caught.
	Fine float64
}

// Commit rolls an act of communism one time in five, otherwise a crime.
// Risky crimes are caught three times in five.
func Commit(rng *rand.Rand) CommitResult {
	if rng.Intn(5) == 0 {
		return CommitResult{
			Communism: true,
			Act:       CommunismActs[rng.Intn(len(CommunismActs))],
			Communal:  4,
			Personal:  1,
		}
	}
	crime := Crimes[rng.Intn(len(Crimes))]
	res := CommitResult{Crime: crime}
	if crime.Risky && rng.Intn(5) < 3 {
		res.Caught = true
		res.Fine = crime.Penalty
	}
	return res
}

// Redistribution rate bounds, in percent.
const (
	MinRedistributionRate     = 1.0
	MaxRedistributionRate     = 30.0
	DefaultRedistributionRate = 10.0
	minTax                    = 0.1
	minRedistribution         = 1.0
)

// Transfer is one user's share of a redistribution.
type Transfer struct {
	User   User
	Amount float64
}

// RedistributionPlan describes a wealth tax. Deltas holds the net change to
// every affected user's balance and is empty when the plan is denied.
type RedistributionPlan struct {
	Rate       float64
	Taxed      []Transfer
	Recipients []Transfer
	Total      float64
	PerUser    float64
	Deltas     map[string]float64
}

// Denied reports whether too little was collected to redistribute.
func (p RedistributionPlan) Denied() bool {
	return len(p.Deltas) == 0
}

// Redistribute taxes the richest fifth of users at ratePct percent, clamped
// to [1, 30], and splits the proceeds evenly over the poorest half. Users
// owing 0.1 boops or less are skipped. If less than one boop is collected
// the plan is denied and nothing changes.
func Redistribute(users []User, ratePct float64) RedistributionPlan {
	rate := math.Min(math.Max(ratePct, MinRedistributionRate), MaxRedistributionRate) / 100
	plan := RedistributionPlan{Rate: rate}
	if len(users) == 0 {
		return plan
	}

	ranked := make([]User, len(users))
	copy(ranked, users)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Boops > ranked[j].Boops })

	deltas := make(map[string]float64, len(ranked))
	wealthy := int(math.Ceil(float64(len(ranked)) * 0.2))
	for _, u := range ranked[:wealthy] {
		if u.Boops <= 0 {
			continue
		}
		tax := u.Boops * rate
		if tax <= minTax {
			continue
		}
		plan.Total += tax
		deltas[u.ID] = -tax
		plan.Taxed = append(plan.Taxed, Transfer{User: u, Amount: tax})
	}
	if plan.Total < minRedistribution {
		plan.Taxed = nil
		plan.Total = 0
		return plan
	}

	poor := int(math.Ceil(float64(len(ranked)) * 0.5))
	plan.PerUser = plan.Total / float64(poor)
	for i := len(ranked) - 1; i >= len(ranked)-poor; i-- {
		u := ranked[i]
		deltas[u.ID] += plan.PerUser
		plan.Recipients = append(plan.Recipients, Transfer{User: u, Amount: plan.PerUser})
	}
	plan.Deltas = deltas
	return plan
}

// RedistributeWealth plans a wealth tax over the server's current balances
// and applies it in the same transaction. Balances are adjusted relative to
// their stored value, so concurrent payouts are kept. A denied plan writes
// nothing.
func (s *Store) RedistributeWealth(ctx context.Context, serverID string, ratePct float64) (RedistributionPlan, error) {
	var plan RedistributionPlan
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		users, err := queryUsers(ctx, tx, allUsersQuery, serverID)
		if err != nil {
			return err
		}
		plan = Redistribute(users, ratePct)
		if plan.Denied() {
			return nil
		}
		return applyDeltas(ctx, tx, plan.Deltas)
	})
	if err != nil {
		return RedistributionPlan{}, fmt.Errorf("error redistributing in %s: %w", serverID, err)
	}
	return plan, nil
}

func applyDeltas(ctx context.Context, tx *sql.Tx, deltas map[string]float64) error {
	stmt, err := tx.PrepareContext(ctx, `UPDATE users SET boops = boops + ? WHERE user_id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for id, delta := range deltas {
		if _, err := stmt.ExecContext(ctx, delta, id); err != nil {
			return fmt.Errorf("user %s: %w", id, err)
		}
	}
	return nil
}

// ApplicationAccepted rolls a job application. Half are accepted.
func ApplicationAccepted(rng *rand.Rand) bool {
	return rng.Intn(2) == 0
}

// PromotionGranted rolls a promotion. One in three is granted.
func PromotionGranted(rng *rand.Rand) bool {
	return rng.Intn(3) == 0
}
