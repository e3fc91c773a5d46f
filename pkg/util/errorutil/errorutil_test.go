package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewValidationError("bad", map[string]any{"title": ReasonRequired})
	mapped := ToDomainError(original)
	if mapped.Code != "VALIDATION_FAILED" || mapped.HTTPStatus != http.StatusBadRequest {
		t.Errorf("domain error not preserved: %+v", mapped)
	}
	if mapped.Details["title"] != ReasonRequired {
		t.Errorf("details lost: %v", mapped.Details)
	}
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	if mapped.Code != "NOT_FOUND" || mapped.HTTPStatus != http.StatusNotFound {
		t.Errorf("pgx.ErrNoRows mapped to %+v", mapped)
	}
}

func TestToDomainErrorMapsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_unique"}
	mapped := ToDomainError(pgErr)
	if mapped.Code != "CONFLICT" || mapped.HTTPStatus != http.StatusConflict {
		t.Errorf("unique violation mapped to %+v", mapped)
	}
	if mapped.Details["constraint"] != "users_email_unique" {
		t.Errorf("constraint name lost: %v", mapped.Details)
	}
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("disk on fire")
	mapped := ToDomainError(cause)
	if mapped.Code != "INTERNAL_ERROR" || mapped.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("unknown error mapped to %+v", mapped)
	}
	if !errors.Is(mapped, cause) {
		t.Error("cause not preserved through Unwrap")
	}
}

func TestMapErrorNilStaysNil(t *testing.T) {
	if err := MapError(nil); err != nil {
		t.Errorf("MapError(nil) = %v, want untyped nil", err)
	}
}

func TestKindPredicates(t *testing.T) {
	if !IsNotFound(NewNotFound("ticket", nil)) {
		t.Error("IsNotFound false for not found error")
	}
	if !IsConflict(NewConflict("dup", nil)) {
		t.Error("IsConflict false for conflict error")
	}
	if !IsValidation(NewValidationError("bad", nil)) {
		t.Error("IsValidation false for validation error")
	}
	if IsNotFound(NewConflict("dup", nil)) {
		t.Error("IsNotFound true for conflict error")
	}
}
