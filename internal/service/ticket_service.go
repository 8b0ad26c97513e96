package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/nazhanhafiz/psikometrik/internal/dto"
	"github.com/nazhanhafiz/psikometrik/internal/model"
	"github.com/nazhanhafiz/psikometrik/internal/repository"
	"github.com/rs/zerolog/log"
)

// TicketService handles candidate support tickets and admin replies.
type TicketService interface {
	Open(req dto.TicketCreateDTO) (*dto.TicketDTO, error)
	Reply(id uint, req dto.TicketReplyDTO) (*dto.TicketDTO, error)
	Close(id uint) (*dto.TicketDTO, error)
	List(status string) ([]dto.TicketDTO, error)
}

type ticketService struct {
	ticketRepo repository.TicketRepository
	userRepo   repository.UserRepository
}

func NewTicketService(ticketRepo repository.TicketRepository, userRepo repository.UserRepository) TicketService {
	return &ticketService{ticketRepo: ticketRepo, userRepo: userRepo}
}

func (s *ticketService) Open(req dto.TicketCreateDTO) (*dto.TicketDTO, error) {
	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		return nil, fmt.Errorf("user not found with ID %d: %w", req.UserID, err)
	}
	ticket := model.SupportTicket{
		Number:  ticketNumber(),
		UserID:  req.UserID,
		Subject: req.Subject,
		Body:    req.Body,
		Status:  model.TicketOpen,
	}
	if err := s.ticketRepo.Create(&ticket); err != nil {
		return nil, fmt.Errorf("failed to open ticket: %w", err)
	}
	log.Info().Str("number", ticket.Number).Uint("userID", req.UserID).Msg("Support ticket opened")
	return ticketToDTO(&ticket), nil
}

func (s *ticketService) Reply(id uint, req dto.TicketReplyDTO) (*dto.TicketDTO, error) {
	ticket, err := s.ticketRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("ticket not found with ID %d: %w", id, err)
	}
	if ticket.Status == model.TicketClosed {
		return nil, fmt.Errorf("ticket %s is closed", ticket.Number)
	}
	now := time.Now()
	ticket.Reply = req.Reply
	ticket.Status = model.TicketReplied
	ticket.RepliedAt = &now
	if err := s.ticketRepo.Update(ticket); err != nil {
		return nil, fmt.Errorf("failed to reply to ticket %d: %w", id, err)
	}
	return ticketToDTO(ticket), nil
}

func (s *ticketService) Close(id uint) (*dto.TicketDTO, error) {
	ticket, err := s.ticketRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("ticket not found with ID %d: %w", id, err)
	}
	ticket.Status = model.TicketClosed
	if err := s.ticketRepo.Update(ticket); err != nil {
		return nil, fmt.Errorf("failed to close ticket %d: %w", id, err)
	}
	return ticketToDTO(ticket), nil
}

func (s *ticketService) List(status string) ([]dto.TicketDTO, error) {
	tickets, err := s.ticketRepo.FindAll(status)
	if err != nil {
		return nil, fmt.Errorf("error fetching tickets: %w", err)
	}
	var dtos []dto.TicketDTO
	for i := range tickets {
		dtos = append(dtos, *ticketToDTO(&tickets[i]))
	}
	return dtos, nil
}

func ticketNumber() string {
	return "TKT-" + strings.ToUpper(uuid.NewString()[:8])
}

func ticketToDTO(ticket *model.SupportTicket) *dto.TicketDTO {
	var out dto.TicketDTO
	if err := copier.Copy(&out, ticket); err != nil {
		log.Error().Err(err).Uint("ticketID", ticket.ID).Msg("Failed to copy ticket to DTO")
	}
	return &out
}
