package validation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/helpdesk-mx/soporte/internal/domain"
	"github.com/helpdesk-mx/soporte/internal/repository"
	apperrors "github.com/helpdesk-mx/soporte/pkg/util/errorutil"
)

func newUserStore(t *testing.T) (UserFinder, string) {
	t.Helper()
	store := repository.NewMemoryStore()
	user := &domain.User{Name: "Juan Pérez", Email: "juan.perez@example.com", PasswordHash: "x"}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return store.Users(), user.ID
}

func fieldReason(t *testing.T, err error, field string) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", domainErr.Code)
	}
	reason, ok := domainErr.Details[field].(string)
	if !ok {
		t.Fatalf("no violation reported for %q: %v", field, domainErr.Details)
	}
	return reason
}

func TestValidateTicketAcceptsValidFields(t *testing.T) {
	users, userID := newUserStore(t)
	err := ValidateTicket(context.Background(), users, TicketFields{
		UserID:      userID,
		Title:       "Problema con el sistema",
		Description: "El sistema no responde correctamente",
		Status:      "open",
	})
	if err != nil {
		t.Fatalf("valid fields rejected: %v", err)
	}
}

func TestValidateTicketStatusOptional(t *testing.T) {
	users, userID := newUserStore(t)
	err := ValidateTicket(context.Background(), users, TicketFields{
		UserID:      userID,
		Title:       "t",
		Description: "d",
	})
	if err != nil {
		t.Fatalf("omitted status rejected: %v", err)
	}
}

func TestValidateTicketEmptyTitle(t *testing.T) {
	users, userID := newUserStore(t)
	err := ValidateTicket(context.Background(), users, TicketFields{
		UserID:      userID,
		Title:       "",
		Description: "x",
	})
	if reason := fieldReason(t, err, "title"); reason != apperrors.ReasonRequired {
		t.Errorf("title reason = %q, want required", reason)
	}
}

func TestValidateTicketTitleTooLong(t *testing.T) {
	users, userID := newUserStore(t)
	err := ValidateTicket(context.Background(), users, TicketFields{
		UserID:      userID,
		Title:       strings.Repeat("a", TitleMaxLength+1),
		Description: "x",
	})
	if reason := fieldReason(t, err, "title"); reason != apperrors.ReasonTooLong {
		t.Errorf("title reason = %q, want too_long", reason)
	}
}

func TestValidateTicketTitleLengthCountsCharacters(t *testing.T) {
	users, userID := newUserStore(t)

	// 200 characters but 400 bytes; must be accepted.
	err := ValidateTicket(context.Background(), users, TicketFields{
		UserID:      userID,
		Title:       strings.Repeat("é", 200),
		Description: "x",
	})
	if err != nil {
		t.Fatalf("200-character multibyte title rejected: %v", err)
	}

	err = ValidateTicket(context.Background(), users, TicketFields{
		UserID:      userID,
		Title:       strings.Repeat("é", TitleMaxLength+1),
		Description: "x",
	})
	if reason := fieldReason(t, err, "title"); reason != apperrors.ReasonTooLong {
		t.Errorf("title reason = %q, want too_long", reason)
	}
}

func TestValidateTicketUnknownUser(t *testing.T) {
	users, _ := newUserStore(t)
	err := ValidateTicket(context.Background(), users, TicketFields{
		UserID:      "00000000-0000-0000-0000-000000000000",
		Title:       "t",
		Description: "d",
	})
	if reason := fieldReason(t, err, "user_id"); reason != apperrors.ReasonNotFound {
		t.Errorf("user_id reason = %q, want not_found", reason)
	}
}

func TestValidateTicketMissingUser(t *testing.T) {
	users, _ := newUserStore(t)
	err := ValidateTicket(context.Background(), users, TicketFields{
		Title:       "t",
		Description: "d",
	})
	if reason := fieldReason(t, err, "user_id"); reason != apperrors.ReasonRequired {
		t.Errorf("user_id reason = %q, want required", reason)
	}
}

func TestValidateTicketInvalidStatus(t *testing.T) {
	users, userID := newUserStore(t)
	err := ValidateTicket(context.Background(), users, TicketFields{
		UserID:      userID,
		Title:       "t",
		Description: "d",
		Status:      "resolved",
	})
	if reason := fieldReason(t, err, "status"); reason != apperrors.ReasonInvalidEnum {
		t.Errorf("status reason = %q, want invalid_enum", reason)
	}
}

func TestValidateTicketReportsAllViolations(t *testing.T) {
	users, _ := newUserStore(t)
	err := ValidateTicket(context.Background(), users, TicketFields{Status: "bogus"})

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	for _, field := range []string{"user_id", "title", "description", "status"} {
		if _, ok := domainErr.Details[field]; !ok {
			t.Errorf("expected a violation for %q, details: %v", field, domainErr.Details)
		}
	}
}
