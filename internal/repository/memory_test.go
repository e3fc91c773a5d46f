package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-mx/soporte/internal/domain"
	apperrors "github.com/helpdesk-mx/soporte/pkg/util/errorutil"
)

func seedUser(t *testing.T, store *MemoryStore, name, email string) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Email: email, PasswordHash: "x"}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func TestMemoryUserDuplicateEmail(t *testing.T) {
	store := NewMemoryStore()
	seedUser(t, store, "Juan Pérez", "juan.perez@example.com")

	err := store.Users().Create(context.Background(), &domain.User{
		Name: "Otro", Email: "juan.perez@example.com", PasswordHash: "x",
	})
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMemoryUserLookups(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	user := seedUser(t, store, "Ana Rodríguez", "ana.rodriguez@example.com")

	byID, err := store.Users().GetByID(ctx, user.ID)
	if err != nil || byID.Email != user.Email {
		t.Fatalf("GetByID: %v %+v", err, byID)
	}
	byEmail, err := store.Users().GetByEmail(ctx, user.Email)
	if err != nil || byEmail.ID != user.ID {
		t.Fatalf("GetByEmail: %v %+v", err, byEmail)
	}
	if _, err := store.Users().GetByID(ctx, "missing"); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("missing id should return pgx.ErrNoRows, got %v", err)
	}

	exists, err := store.Users().Exists(ctx, user.ID)
	if err != nil || !exists {
		t.Fatalf("Exists: %v %v", exists, err)
	}
	count, err := store.Users().Count(ctx)
	if err != nil || count != 1 {
		t.Fatalf("Count = %d, %v", count, err)
	}
}

func TestMemoryUserRoleDefaults(t *testing.T) {
	store := NewMemoryStore()
	user := seedUser(t, store, "Luis Martínez", "luis.martinez@example.com")
	if user.Role != domain.UserRoleUser {
		t.Errorf("role = %q, want user", user.Role)
	}
}

func TestMemoryTicketDefaultsAndJoin(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	user := seedUser(t, store, "Carlos López", "carlos.lopez@example.com")

	ticket := &domain.Ticket{UserID: user.ID, Title: "t", Description: "d"}
	if err := store.Tickets().Create(ctx, ticket); err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("store default status = %q, want open", ticket.Status)
	}
	if ticket.CreatedAt.IsZero() || ticket.UpdatedAt.IsZero() {
		t.Error("timestamps not set on insert")
	}

	got, err := store.Tickets().GetByID(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserName != "Carlos López" || got.UserEmail != "carlos.lopez@example.com" {
		t.Errorf("join fields not populated: %+v", got)
	}
}

func TestMemoryTicketListOffsetPastEnd(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	user := seedUser(t, store, "Juan Pérez", "juan.perez@example.com")

	for i := 0; i < 3; i++ {
		ticket := &domain.Ticket{UserID: user.ID, Title: fmt.Sprintf("t%d", i), Description: "d"}
		if err := store.Tickets().Create(ctx, ticket); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	items, total, err := store.Tickets().ListWithFilter(ctx, TicketFilter{Limit: 10, Offset: 30})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 || total != 3 {
		t.Errorf("items=%d total=%d, want 0/3", len(items), total)
	}
}

func TestMemoryTicketSearchIsCaseSensitive(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	user := seedUser(t, store, "Juan Pérez", "juan.perez@example.com")

	ticket := &domain.Ticket{UserID: user.ID, Title: "Error en el sistema", Description: "d"}
	if err := store.Tickets().Create(ctx, ticket); err != nil {
		t.Fatalf("create: %v", err)
	}

	search := "Sistema"
	items, _, err := store.Tickets().ListWithFilter(ctx, TicketFilter{Search: &search})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Error("search should be case-sensitive, matched with different case")
	}
}

func TestMemoryCountByUser(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	owner := seedUser(t, store, "Juan Pérez", "juan.perez@example.com")
	other := seedUser(t, store, "María García", "maria.garcia@example.com")

	for i := 0; i < 2; i++ {
		ticket := &domain.Ticket{UserID: owner.ID, Title: "t", Description: "d"}
		if err := store.Tickets().Create(ctx, ticket); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	count, err := store.Tickets().CountByUser(ctx, owner.ID)
	if err != nil || count != 2 {
		t.Fatalf("CountByUser(owner) = %d, %v", count, err)
	}
	count, err = store.Tickets().CountByUser(ctx, other.ID)
	if err != nil || count != 0 {
		t.Fatalf("CountByUser(other) = %d, %v", count, err)
	}
}
