package economy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// JobType is a profession that scales work output.
type JobType string

const (
	JobNone       JobType = "none"
	JobMiner      JobType = "miner"
	JobFarmer     JobType = "farmer"
	JobProgrammer JobType = "programmer"
	JobTeacher    JobType = "teacher"
	JobDoctor     JobType = "doctor"
)

// MaxJobLevel caps promotions.
const MaxJobLevel = 10

// Jobs lists the positions a user can apply for.
func Jobs() []JobType {
	return []JobType{JobMiner, JobFarmer, JobProgrammer, JobTeacher, JobDoctor}
}

// ParseJob maps a name to a job, ignoring case. Unknown names map to JobNone.
func ParseJob(name string) (JobType, bool) {
	j := JobType(strings.ToLower(strings.TrimSpace(name)))
	switch j {
	case JobMiner, JobFarmer, JobProgrammer, JobTeacher, JobDoctor, JobNone:
		return j, true
	}
	return JobNone, false
}

// Multiplier is the job's work efficiency.
func (j JobType) Multiplier() float64 {
	switch j {
	case JobMiner:
		return 1.5
	case JobFarmer:
		return 1.2
	case JobProgrammer:
		return 1.8
	case JobTeacher:
		return 1.3
	case JobDoctor:
		return 2.0
	}
	return 1.0
}

func (j JobType) Description() string {
	switch j {
	case JobMiner:
		return "Extract precious resources from the depths for the motherland"
	case JobFarmer:
		return "Grow crops to feed your fellow comrades"
	case JobProgrammer:
		return "Develop software for the glory of the collective"
	case JobTeacher:
		return "Educate the youth in the ways of our society"
	case JobDoctor:
		return "Heal the sick and care for the injured workers"
	}
	return "Unemployed and bringing shame to your comrades"
}

// LevelTitle names a job level.
func LevelTitle(level int) string {
	switch {
	case level <= 1:
		return "Apprentice"
	case level <= 3:
		return "Practitioner"
	case level <= 6:
		return "Expert"
	case level <= 9:
		return "Master"
	}
	return "Grandmaster"
}

// Job returns the user's job and level.
func (s *Store) Job(ctx context.Context, userID string) (JobType, int, error) {
	var name string
	var level int
	err := s.db.QueryRowContext(ctx, `SELECT job, job_level FROM users WHERE user_id = ?`, userID).Scan(&name, &level)
	if errors.Is(err, sql.ErrNoRows) {
		return JobNone, 0, fmt.Errorf("%w: %s", ErrUnknownUser, userID)
	}
	if err != nil {
		return JobNone, 0, fmt.Errorf("error reading job for %s: %w", userID, err)
	}
	job, _ := ParseJob(name)
	return job, level, nil
}

// JobLevel returns the user's job level.
func (s *Store) JobLevel(ctx context.Context, userID string) (int, error) {
	_, level, err := s.Job(ctx, userID)
	return level, err
}

// SetJob assigns a job. The level is kept.
func (s *Store) SetJob(ctx context.Context, userID string, job JobType) error {
	return s.updateUser(ctx, `UPDATE users SET job = ? WHERE user_id = ?`, string(job), userID)
}

// PromoteJob raises the user's level by one, up to MaxJobLevel, and returns
// the new level. It reports false when the user is already at the cap.
func (s *Store) PromoteJob(ctx context.Context, userID string) (int, bool, error) {
	var level int
	var promoted bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT job_level FROM users WHERE user_id = ?`, userID).Scan(&level)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrUnknownUser, userID)
		}
		if err != nil || level >= MaxJobLevel {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE users SET job_level = job_level + 1 WHERE user_id = ?`, userID); err != nil {
			return err
		}
		level++
		promoted = true
		return nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("error promoting %s: %w", userID, err)
	}
	return level, promoted, nil
}
