package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"jobsync/internal/repository"

	"github.com/google/uuid"
)

// Mailer forwards a contact message to the site operators. Delivery is
// best effort; the message is already persisted when it runs.
type Mailer interface {
	SendContactMessage(ctx context.Context, m repository.ContactMessage) error
}

type LogMailer struct {
	Logger *log.Logger
}

func (m LogMailer) SendContactMessage(_ context.Context, msg repository.ContactMessage) error {
	logger := m.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("[Contact] Message from %s <%s>: %s", msg.Name, msg.Email, msg.Subject)
	return nil
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

type ContactUsecase interface {
	Submit(ctx context.Context, in ContactInput) error
}

type Contact struct {
	messages repository.ContactRepository
	mailer   Mailer
	logger   *log.Logger
	now      func() time.Time
}

func NewContactUsecase(messages repository.ContactRepository, mailer Mailer, logger *log.Logger) *Contact {
	if mailer == nil {
		mailer = LogMailer{Logger: logger}
	}
	return &Contact{messages: messages, mailer: mailer, logger: logger, now: time.Now}
}

func (u *Contact) Submit(ctx context.Context, in ContactInput) error {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	body := strings.TrimSpace(in.Body)
	if name == "" || email == "" || body == "" {
		return ErrInvalidInput
	}

	m := repository.ContactMessage{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Subject:   strings.TrimSpace(in.Subject),
		Body:      body,
		CreatedAt: u.now(),
	}

	if err := u.messages.Create(ctx, m); err != nil {
		return ErrDependency
	}

	if err := u.mailer.SendContactMessage(ctx, m); err != nil && u.logger != nil {
		u.logger.Printf("[Contact] Mail delivery failed for %s: %v", m.ID, err)
	}

	return nil
}
