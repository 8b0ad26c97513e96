package repository

import (
	"github.com/nazhanhafiz/psikometrik/internal/model"
	"gorm.io/gorm"
)

type TicketRepository interface {
	Create(ticket *model.SupportTicket) error
	FindByID(id uint) (*model.SupportTicket, error)
	FindAll(status string) ([]model.SupportTicket, error)
	Update(ticket *model.SupportTicket) error
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ticket *model.SupportTicket) error {
	return r.db.Create(ticket).Error
}

func (r *ticketRepository) FindByID(id uint) (*model.SupportTicket, error) {
	var ticket model.SupportTicket
	err := r.db.Preload("User").First(&ticket, id).Error
	return &ticket, err
}

func (r *ticketRepository) FindAll(status string) ([]model.SupportTicket, error) {
	var tickets []model.SupportTicket
	query := r.db.Preload("User").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) Update(ticket *model.SupportTicket) error {
	return r.db.Save(ticket).Error
}
