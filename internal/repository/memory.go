package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-mx/soporte/internal/domain"
	apperrors "github.com/helpdesk-mx/soporte/pkg/util/errorutil"
)

// MemoryStore backs both repositories when no Postgres pool is configured.
// It mirrors the Postgres semantics: pgx.ErrNoRows for missing rows, a
// CONFLICT error for duplicate emails, created_at/id descending list order
// and case-sensitive substring search on title.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	emails  map[string]string
	tickets map[string]domain.Ticket
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]domain.User),
		emails:  make(map[string]string),
		tickets: make(map[string]domain.Ticket),
	}
}

// Users returns the user repository view of the store.
func (s *MemoryStore) Users() UserRepository {
	return &memoryUserRepository{store: s}
}

// Tickets returns the ticket repository view of the store.
func (s *MemoryStore) Tickets() TicketRepository {
	return &memoryTicketRepository{store: s}
}

type memoryUserRepository struct {
	store *MemoryStore
}

func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return apperrors.NewConflict("email already registered", map[string]any{"email": user.Email})
	}
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = domain.UserRoleUser
	}
	s.users[user.ID] = *user
	s.emails[user.Email] = user.ID
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user := s.users[id]
	return &user, nil
}

func (r *memoryUserRepository) List(ctx context.Context) ([]domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(s.users, id)
	delete(s.emails, user.Email)
	return nil
}

func (r *memoryUserRepository) Exists(ctx context.Context, id string) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok, nil
}

func (r *memoryUserRepository) Count(ctx context.Context) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

type memoryTicketRepository struct {
	store *MemoryStore
}

func (r *memoryTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	ticket.ID = uuid.NewString()
	if ticket.Status == "" {
		ticket.Status = domain.TicketStatusOpen
	}
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	s.joinUserLocked(ticket)
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memoryTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.CreatedAt = existing.CreatedAt
	ticket.UpdatedAt = time.Now().UTC()
	s.joinUserLocked(ticket)
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memoryTicketRepository) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.tickets, id)
	return nil
}

func (r *memoryTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	s.joinUserLocked(&ticket)
	return &ticket, nil
}

func (r *memoryTicketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []domain.Ticket{}
	for _, ticket := range s.tickets {
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Search != nil {
			search := strings.TrimSpace(*filter.Search)
			if search != "" && !strings.Contains(ticket.Title, search) {
				continue
			}
		}
		s.joinUserLocked(&ticket)
		matched = append(matched, ticket)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []domain.Ticket{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *memoryTicketRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, ticket := range s.tickets {
		if ticket.UserID == userID {
			count++
		}
	}
	return count, nil
}

// joinUserLocked fills the display fields from the owning user. Caller must
// hold at least a read lock.
func (s *MemoryStore) joinUserLocked(ticket *domain.Ticket) {
	if user, ok := s.users[ticket.UserID]; ok {
		ticket.UserName = user.Name
		ticket.UserEmail = user.Email
	}
}
