package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"kommotirio/internal/entities"
	apperrors "kommotirio/internal/errors"
	"kommotirio/internal/repository"
)

type ContactService struct {
	Newsletter *repository.NewsletterRepository
	Sender     *SenderService
	log        *zap.Logger
}

func NewContactService(newsletter *repository.NewsletterRepository, sender *SenderService, log *zap.Logger) *ContactService {
	return &ContactService{Newsletter: newsletter, Sender: sender, log: log}
}

func (s *ContactService) SendContactMessage(msg *entities.ContactRequest) error {
	if msg.Name == "" || msg.Message == "" {
		return apperrors.ErrBadRequest("name and message are required")
	}
	if !strings.Contains(msg.Email, "@") {
		return apperrors.ErrBadRequest("a valid email address is required")
	}
	if err := s.Sender.SendContactEmail(*msg); err != nil {
		s.log.Error("error relaying contact message", zap.String("from", msg.Email), zap.Error(err))
		return err
	}
	return nil
}

// SubscribeNewsletter stores the subscriber and greets first-time addresses.
// Re-subscribing is accepted silently so the form stays idempotent.
func (s *ContactService) SubscribeNewsletter(ctx context.Context, req *entities.NewsletterRequest) error {
	if !strings.Contains(req.Email, "@") {
		return apperrors.ErrBadRequest("a valid email address is required")
	}
	created, err := s.Newsletter.Subscribe(ctx, req.Email, req.Language)
	if err != nil {
		s.log.Error("error subscribing to newsletter", zap.String("email", req.Email), zap.Error(err))
		return err
	}
	if created {
		s.Sender.SendNewsletterWelcome(req.Email, req.Language)
	}
	return nil
}
