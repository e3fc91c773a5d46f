package domain

import "time"

// TicketStatus classifies a ticket. It is a free-form classification field,
// not a workflow gate: any status may follow any other.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// statusLabels maps stored status values to their Spanish display text.
var statusLabels = map[TicketStatus]string{
	TicketStatusOpen:       "Abierto",
	TicketStatusInProgress: "En Progreso",
	TicketStatusClosed:     "Cerrado",
}

// Valid reports whether the status is one of the three allowed values.
func (s TicketStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display text for the status. Unknown stored values pass
// through unchanged.
func (s TicketStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// TicketStatuses lists the allowed status values.
func TicketStatuses() []TicketStatus {
	return []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed}
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      TicketStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated when the ticket is fetched joined with its owning user.
	UserName  string
	UserEmail string
}
