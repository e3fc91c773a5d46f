package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestSeederPopulatesDemoData(t *testing.T) {
	tickets, users := newTestEnv(t)
	ctx := context.Background()

	seeder := NewSeeder(users, tickets, zap.NewNop())
	if err := seeder.Run(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	list, err := users.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(list) != 5 {
		t.Fatalf("expected 5 seeded users, got %d", len(list))
	}

	page, err := tickets.ListTickets(ctx, TicketListFilter{Page: 1})
	if err != nil {
		t.Fatalf("list tickets: %v", err)
	}
	if page.Total != 8 {
		t.Fatalf("expected 8 seeded tickets, got %d", page.Total)
	}

	// Seeded accounts can log in with the demo password.
	if _, _, _, err := users.Login(ctx, "juan.perez@example.com", "password"); err != nil {
		t.Errorf("seeded user login: %v", err)
	}
}

func TestSeederIsIdempotent(t *testing.T) {
	tickets, users := newTestEnv(t)
	ctx := context.Background()

	seeder := NewSeeder(users, tickets, zap.NewNop())
	if err := seeder.Run(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := seeder.Run(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}

	page, err := tickets.ListTickets(ctx, TicketListFilter{})
	if err != nil {
		t.Fatalf("list tickets: %v", err)
	}
	if page.Total != 8 {
		t.Errorf("second run duplicated data: %d tickets", page.Total)
	}
}
