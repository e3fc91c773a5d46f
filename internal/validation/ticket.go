package validation

import (
	"context"
	"unicode/utf8"

	"github.com/helpdesk-mx/soporte/internal/domain"
	apperrors "github.com/helpdesk-mx/soporte/pkg/util/errorutil"
)

// TitleMaxLength bounds ticket titles, counted in characters, not bytes.
const TitleMaxLength = 255

// TicketFields is the permitted field set for a ticket write. Status carries
// the raw request value; an empty status is allowed on create (the store
// applies the open default) and is never defaulted here.
type TicketFields struct {
	UserID      string
	Title       string
	Description string
	Status      string
}

// UserFinder is the read-only user lookup the validator needs for the
// user_id existence check.
type UserFinder interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// ValidateTicket checks every field constraint for a ticket write and
// reports all violations at once as a field -> reason map. It performs no
// writes; storage is only read for the user_id existence check.
func ValidateTicket(ctx context.Context, users UserFinder, fields TicketFields) error {
	violations := map[string]any{}

	switch {
	case fields.UserID == "":
		violations["user_id"] = apperrors.ReasonRequired
	default:
		exists, err := users.Exists(ctx, fields.UserID)
		if err != nil {
			return err
		}
		if !exists {
			violations["user_id"] = apperrors.ReasonNotFound
		}
	}

	switch {
	case fields.Title == "":
		violations["title"] = apperrors.ReasonRequired
	case utf8.RuneCountInString(fields.Title) > TitleMaxLength:
		violations["title"] = apperrors.ReasonTooLong
	}

	if fields.Description == "" {
		violations["description"] = apperrors.ReasonRequired
	}

	if fields.Status != "" && !domain.TicketStatus(fields.Status).Valid() {
		violations["status"] = apperrors.ReasonInvalidEnum
	}

	if len(violations) > 0 {
		return apperrors.NewValidationError("ticket validation failed", violations)
	}
	return nil
}
