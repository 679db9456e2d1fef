package registration

import (
	"errors"
	"strings"
	"testing"

	"github.com/cache2k25/registration-backend/internal/catalog"
	"github.com/cache2k25/registration-backend/internal/model"
)

func validSolo() Submission {
	return Submission{
		EventID:         "web-dev",
		ParticipantName: "Asha Rao",
		Email:           "asha@example.com",
		Phone:           "9876543210",
		College:         "Cache Institute of Technology",
	}
}

func teamOf(n int) []model.TeamMember {
	ms := make([]model.TeamMember, n)
	for i := range ms {
		ms[i] = model.TeamMember{Name: "Member", Email: "member@example.com", Phone: "9876543210"}
	}
	return ms
}

func TestBuildComputesAmountFromCatalog(t *testing.T) {
	b := NewBuilder(catalog.New())

	sub := validSolo()
	sub.TotalAmount = 1 // hostile client claims one rupee

	reg, err := b.Build(sub)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	event, _ := catalog.New().Lookup("web-dev")
	if reg.TotalAmount != event.Price {
		t.Fatalf("TotalAmount = %d, want catalog price %d", reg.TotalAmount, event.Price)
	}
}

func TestBuildAmountIsFlatForTeams(t *testing.T) {
	b := NewBuilder(catalog.New())

	sub := validSolo()
	sub.EventID = "techexpo" // team of 3
	sub.TeamMembers = teamOf(3)

	reg, err := b.Build(sub)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	event, _ := catalog.New().Lookup("techexpo")
	if reg.TotalAmount != event.Price {
		t.Fatalf("TotalAmount = %d, want flat price %d (not per member)", reg.TotalAmount, event.Price)
	}
}

func TestBuildUnknownEvent(t *testing.T) {
	b := NewBuilder(catalog.New())
	sub := validSolo()
	sub.EventID = "no-such-event"
	if _, err := b.Build(sub); !errors.Is(err, catalog.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestBuildRequiredFields(t *testing.T) {
	b := NewBuilder(catalog.New())

	cases := map[string]func(*Submission){
		"missing name":  func(s *Submission) { s.ParticipantName = "" },
		"missing email": func(s *Submission) { s.Email = "" },
		"bad email":     func(s *Submission) { s.Email = "not-an-address" },
		"missing phone": func(s *Submission) { s.Phone = "" },
		"short phone":   func(s *Submission) { s.Phone = "12345" },
		"alpha phone":   func(s *Submission) { s.Phone = "98765abcde" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			sub := validSolo()
			mutate(&sub)
			_, err := b.Build(sub)
			if !IsValidationError(err) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestBuildExactTeamSize(t *testing.T) {
	b := NewBuilder(catalog.New())

	for _, n := range []int{0, 1, 2, 4, 5} {
		sub := validSolo()
		sub.EventID = "techexpo" // requires exactly 3
		sub.TeamMembers = teamOf(n)

		_, err := b.Build(sub)
		if n == 3 {
			continue
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("teamOf(%d): expected ValidationError, got %v", n, err)
		}
		found := false
		for _, c := range ve.Causes {
			if strings.Contains(c, "team members") {
				found = true
			}
		}
		if !found {
			t.Errorf("teamOf(%d): no team-size cause in %v", n, ve.Causes)
		}
	}

	sub := validSolo()
	sub.EventID = "techexpo"
	sub.TeamMembers = teamOf(3)
	if _, err := b.Build(sub); err != nil {
		t.Fatalf("teamOf(3): %v", err)
	}
}

func TestBuildIncompleteTeamMember(t *testing.T) {
	b := NewBuilder(catalog.New())
	sub := validSolo()
	sub.EventID = "technical-quiz" // team of 2
	sub.TeamMembers = teamOf(2)
	sub.TeamMembers[1].Phone = ""
	if _, err := b.Build(sub); !IsValidationError(err) {
		t.Fatalf("expected ValidationError for member without phone, got %v", err)
	}
}

func TestBuildGameIDsRequired(t *testing.T) {
	b := NewBuilder(catalog.New())

	sub := validSolo()
	sub.EventID = "bgmi-esports"
	sub.TeamMembers = teamOf(4)

	if _, err := b.Build(sub); !IsValidationError(err) {
		t.Fatalf("expected ValidationError without game IDs, got %v", err)
	}

	sub.GameIDs = []model.GameID{{PlayerName: "Asha", GameID: "BGMI123456"}}
	reg, err := b.Build(sub)
	if err != nil {
		t.Fatalf("Build with game IDs: %v", err)
	}
	if len(reg.GameIDs) != 1 {
		t.Fatalf("game IDs not carried through")
	}

	sub.GameIDs = []model.GameID{{PlayerName: "", GameID: "BGMI123456"}}
	if _, err := b.Build(sub); !IsValidationError(err) {
		t.Fatalf("expected ValidationError for entry without playerName, got %v", err)
	}
}

func TestBuildRejectsTeamForSoloEvent(t *testing.T) {
	b := NewBuilder(catalog.New())
	sub := validSolo() // web-dev is solo
	sub.TeamMembers = teamOf(2)
	if _, err := b.Build(sub); !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBuildNormalizesContactFields(t *testing.T) {
	b := NewBuilder(catalog.New())
	sub := validSolo()
	sub.Email = "  ASHA@Example.COM "
	sub.ParticipantName = " Asha Rao "
	reg, err := b.Build(sub)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if reg.Email != "asha@example.com" {
		t.Errorf("email not normalized: %q", reg.Email)
	}
	if reg.ParticipantName != "Asha Rao" {
		t.Errorf("name not trimmed: %q", reg.ParticipantName)
	}
}
