package economy

import (
	"context"
	"testing"
)

func TestParseJob(t *testing.T) {
	tests := []struct {
		input string
		want  JobType
		ok    bool
	}{
		{"miner", JobMiner, true},
		{"  Doctor ", JobDoctor, true},
		{"PROGRAMMER", JobProgrammer, true},
		{"none", JobNone, true},
		{"astronaut", JobNone, false},
		{"", JobNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseJob(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseJob(%q): expected (%s, %v), got (%s, %v)", tt.input, tt.want, tt.ok, got, ok)
		}
	}
}

func TestJobMultipliers(t *testing.T) {
	want := map[JobType]float64{
		JobMiner:      1.5,
		JobFarmer:     1.2,
		JobProgrammer: 1.8,
		JobTeacher:    1.3,
		JobDoctor:     2.0,
		JobNone:       1.0,
	}
	for job, mult := range want {
		if got := job.Multiplier(); got != mult {
			t.Errorf("%s: expected %.1f, got %.1f", job, mult, got)
		}
	}
	if len(Jobs()) != 5 {
		t.Errorf("Expected 5 open positions, got %d", len(Jobs()))
	}
}

func TestLevelTitle(t *testing.T) {
	tests := map[int]string{1: "Apprentice", 3: "Practitioner", 4: "Expert", 9: "Master", 10: "Grandmaster"}
	for level, want := range tests {
		if got := LevelTitle(level); got != want {
			t.Errorf("LevelTitle(%d): expected %s, got %s", level, want, got)
		}
	}
}

func TestJobLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUsers(t, s, "a")

	job, level, err := s.Job(ctx, "a")
	if err != nil {
		t.Fatalf("Job failed: %v", err)
	}
	if job != JobNone || level != 1 {
		t.Errorf("Expected unemployed at level 1, got %s at %d", job, level)
	}

	if err := s.SetJob(ctx, "a", JobDoctor); err != nil {
		t.Fatalf("SetJob failed: %v", err)
	}
	for want := 2; want <= MaxJobLevel; want++ {
		got, ok, err := s.PromoteJob(ctx, "a")
		if err != nil || !ok || got != want {
			t.Fatalf("PromoteJob: expected level %d, got %d (%v, %v)", want, got, ok, err)
		}
	}
	got, ok, err := s.PromoteJob(ctx, "a")
	if err != nil || ok || got != MaxJobLevel {
		t.Errorf("Expected promotion to stop at %d, got %d (%v, %v)", MaxJobLevel, got, ok, err)
	}

	job, level, _ = s.Job(ctx, "a")
	if job != JobDoctor || level != MaxJobLevel {
		t.Errorf("Expected doctor at max level, got %s at %d", job, level)
	}
}
