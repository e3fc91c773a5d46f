package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/helpdesk-mx/soporte/internal/domain"
	"github.com/helpdesk-mx/soporte/internal/validation"
)

type seedUser struct {
	name  string
	email string
}

type seedTicket struct {
	title       string
	description string
	status      domain.TicketStatus
}

var seedUsers = []seedUser{
	{"Juan Pérez", "juan.perez@example.com"},
	{"María García", "maria.garcia@example.com"},
	{"Carlos López", "carlos.lopez@example.com"},
	{"Ana Rodríguez", "ana.rodriguez@example.com"},
	{"Luis Martínez", "luis.martinez@example.com"},
}

var seedTickets = []seedTicket{
	{"Problema con el acceso al sistema", "No puedo acceder al sistema desde esta mañana. Me aparece un error de autenticación.", domain.TicketStatusOpen},
	{"Solicitud de nueva funcionalidad", "Necesitamos agregar una nueva funcionalidad para exportar reportes en formato PDF.", domain.TicketStatusInProgress},
	{"Error en la base de datos", "Se está produciendo un error al guardar los datos en la base de datos.", domain.TicketStatusClosed},
	{"Problema de rendimiento", "La aplicación está muy lenta al cargar las páginas principales.", domain.TicketStatusOpen},
	{"Actualización de perfil de usuario", "Necesito actualizar mi información de perfil pero no puedo guardar los cambios.", domain.TicketStatusInProgress},
	{"Problema con notificaciones", "No estoy recibiendo las notificaciones por email cuando se actualiza mi ticket.", domain.TicketStatusClosed},
	{"Solicitud de capacitación", "Necesito capacitación sobre las nuevas funcionalidades del sistema.", domain.TicketStatusOpen},
	{"Error en el reporte mensual", "El reporte mensual no está mostrando los datos correctos.", domain.TicketStatusInProgress},
}

// seedPassword is the demo account password.
const seedPassword = "password"

// Seeder populates the store with the canonical demo accounts and tickets.
type Seeder struct {
	users   *UserService
	tickets *TicketService
	logger  *zap.Logger
}

// NewSeeder constructs a seeder over the two services so that seeded data
// passes through the same validation and defaulting as live writes.
func NewSeeder(users *UserService, tickets *TicketService, logger *zap.Logger) *Seeder {
	return &Seeder{users: users, tickets: tickets, logger: logger}
}

// Run seeds demo users and tickets. It is idempotent: a store that already
// holds users is left untouched.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.users.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("seed skipped, users already present", zap.Int("count", count))
		return nil
	}

	created := make([]*domain.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		user, err := s.users.Register(ctx, su.name, su.email, seedPassword)
		if err != nil {
			return err
		}
		created = append(created, user)
	}

	for i, st := range seedTickets {
		owner := created[i%len(created)]
		_, err := s.tickets.CreateTicket(ctx, validation.TicketFields{
			UserID:      owner.ID,
			Title:       st.title,
			Description: st.description,
			Status:      string(st.status),
		})
		if err != nil {
			return err
		}
	}

	s.logger.Info("seeded demo data",
		zap.Int("users", len(seedUsers)),
		zap.Int("tickets", len(seedTickets)))
	return nil
}
