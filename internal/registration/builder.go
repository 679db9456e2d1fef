// Package registration assembles pending registrations from raw form input.
// The builder is a pure function of its inputs and the event catalog: it has
// no side effects and commits no partial state.
package registration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cache2k25/registration-backend/internal/catalog"
	"github.com/cache2k25/registration-backend/internal/model"
)

// Submission is the raw, untrusted form payload.  TotalAmount is accepted
// for wire compatibility with older clients but never read: the builder
// recomputes the amount from the catalog.
type Submission struct {
	EventID         string             `json:"eventId" validate:"required"`
	ParticipantName string             `json:"participantName" validate:"required"`
	Email           string             `json:"email" validate:"required,email"`
	Phone           string             `json:"phone" validate:"required,numeric,min=10,max=12"`
	College         string             `json:"college,omitempty"`
	TeamMembers     []model.TeamMember `json:"teamMembers,omitempty"`
	GameIDs         []model.GameID     `json:"gameIds,omitempty"`
	TotalAmount     int                `json:"totalAmount,omitempty"`
}

// ValidationError lists every field rule the submission broke.  It maps to
// a 400 response; nothing is persisted when it is returned.
type ValidationError struct {
	Causes []string
}

func (e *ValidationError) Error() string {
	return "invalid registration: " + strings.Join(e.Causes, "; ")
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Builder validates submissions against the catalog and produces pending
// registrations.
type Builder struct {
	catalog  *catalog.Catalog
	validate *validator.Validate
}

// NewBuilder returns a Builder bound to the given catalog.
func NewBuilder(c *catalog.Catalog) *Builder {
	return &Builder{
		catalog:  c,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Build validates sub against the event's requirements and returns a
// pending registration with the amount computed from the catalog price.
// Unknown events surface catalog.ErrEventNotFound; every other failure is
// a *ValidationError carrying all broken rules at once.
func (b *Builder) Build(sub Submission) (*model.Registration, error) {
	// Normalize before validating so "  X@Y.COM " passes the same rules
	// as "x@y.com".  sub is a copy; the caller's value is untouched.
	sub.ParticipantName = strings.TrimSpace(sub.ParticipantName)
	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.College = strings.TrimSpace(sub.College)

	event, err := b.catalog.Lookup(sub.EventID)
	if err != nil {
		return nil, err
	}

	var causes []string
	if err := b.validate.Struct(sub); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				causes = append(causes, fieldCause(fe))
			}
		} else {
			return nil, err
		}
	}

	if event.RequiresTeam {
		if len(sub.TeamMembers) != event.TeamSize {
			causes = append(causes, fmt.Sprintf("event requires exactly %d team members, got %d", event.TeamSize, len(sub.TeamMembers)))
		}
		for i, m := range sub.TeamMembers {
			if err := b.validate.Struct(teamMemberRules{Name: m.Name, Email: m.Email, Phone: m.Phone}); err != nil {
				causes = append(causes, fmt.Sprintf("team member %d: name, email and phone are required", i+1))
			}
		}
	} else if len(sub.TeamMembers) > 0 {
		causes = append(causes, "event does not take team members")
	}

	if event.RequiresGameIDs {
		if len(sub.GameIDs) == 0 {
			causes = append(causes, "event requires at least one game ID entry")
		}
		for i, g := range sub.GameIDs {
			if strings.TrimSpace(g.PlayerName) == "" || strings.TrimSpace(g.GameID) == "" {
				causes = append(causes, fmt.Sprintf("game ID entry %d: playerName and gameId are required", i+1))
			}
		}
	}

	if len(causes) > 0 {
		return nil, &ValidationError{Causes: causes}
	}

	return &model.Registration{
		EventID:         event.ID,
		ParticipantName: sub.ParticipantName,
		Email:           sub.Email,
		Phone:           sub.Phone,
		College:         sub.College,
		TeamMembers:     sub.TeamMembers,
		GameIDs:         sub.GameIDs,
		// Flat price per registration regardless of team size; any
		// client-supplied amount is discarded.
		TotalAmount: event.Price,
	}, nil
}

// teamMemberRules mirrors model.TeamMember with validation tags so member
// entries go through the same validator instance.
type teamMemberRules struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string `validate:"required,numeric,min=10,max=12"`
}

func fieldCause(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "email must be a valid address"
	case "numeric", "min", "max":
		return "phone must be a 10-12 digit number"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
