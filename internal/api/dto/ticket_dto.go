package dto

import (
	"time"

	"github.com/helpdesk-mx/soporte/internal/domain"
)

// TicketWriteRequest is the payload for create and update. Status is
// optional on create and defaults to open.
type TicketWriteRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// TicketResponse is a single ticket joined with its owning user. StatusText
// carries the Spanish display label.
type TicketResponse struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	UserName    string              `json:"user_name,omitempty"`
	UserEmail   string              `json:"user_email,omitempty"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      domain.TicketStatus `json:"status"`
	StatusText  string              `json:"status_text"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// PageMeta describes listing pagination.
type PageMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TicketListResponse is one page of tickets plus metadata.
type TicketListResponse struct {
	Data []TicketResponse `json:"data"`
	Meta PageMeta         `json:"meta"`
}
