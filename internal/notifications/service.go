package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amara-wedding/backend/config"
	"github.com/amara-wedding/backend/internal/models"
	"github.com/amara-wedding/backend/pkg/queue"
)

// GroupStore resolves a group with its guests.
type GroupStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
}

// GuestStore resolves guests for reminder batches.
type GuestStore interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Guest, error)
}

// LogRecorder persists email attempt outcomes.
type LogRecorder interface {
	Record(ctx context.Context, el *models.EmailLog) error
}

// ReminderFailure is one guest the reminder batch could not reach.
type ReminderFailure struct {
	GuestID uuid.UUID `json:"guestId"`
	Reason  string    `json:"reason"`
}

// ReminderResult aggregates a best-effort reminder batch.
type ReminderResult struct {
	Sent     int               `json:"sent"`
	Skipped  int               `json:"skipped"`
	Failures []ReminderFailure `json:"failures"`
}

// Service sends confirmation and reminder emails. Every failure here is
// logged and swallowed; nothing escalates to the guest-facing request.
type Service struct {
	cfg    config.EmailConfig
	groups GroupStore
	guests GuestStore
	logs   LogRecorder
	mailer Mailer
	queue  *queue.Queue
	logger *zap.Logger
}

// NewService creates the notification service. queue may be nil when Redis is
// unavailable (confirmations are then skipped); mailer may be nil when SMTP
// is unconfigured.
func NewService(cfg config.EmailConfig, groups GroupStore, guests GuestStore, logs LogRecorder, mailer Mailer, q *queue.Queue, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:    cfg,
		groups: groups,
		guests: guests,
		logs:   logs,
		mailer: mailer,
		queue:  q,
		logger: logger,
	}
}

func (s *Service) confirmationsReady() bool {
	return s.cfg.ConfirmationsEnabled && s.cfg.SMTPHost != "" && s.mailer != nil
}

// QueueConfirmation enqueues a confirmation email job for the group. No-ops
// silently when confirmations are disabled or the queue is unavailable.
func (s *Service) QueueConfirmation(ctx context.Context, groupID uuid.UUID) error {
	if !s.confirmationsReady() || s.queue == nil {
		s.logger.Debug("confirmation email skipped", zap.String("group_id", groupID.String()))
		return nil
	}
	return s.queue.EnqueueConfirmationEmail(ctx, queue.ConfirmationEmailPayload{GroupID: groupID})
}

// SendConfirmation resolves the group and emails an RSVP summary to its first
// guest (by creation time). Missing group, missing guests or a first guest
// without an email are silent no-ops, not errors.
func (s *Service) SendConfirmation(ctx context.Context, groupID uuid.UUID) error {
	if !s.confirmationsReady() {
		return nil
	}
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("load group: %w", err)
	}
	if group == nil || len(group.Guests) == 0 {
		s.logger.Warn("confirmation skipped: group missing or empty", zap.String("group_id", groupID.String()))
		return nil
	}
	recipient := group.Guests[0]
	if recipient.Email == "" {
		s.logger.Info("confirmation skipped: first guest has no email", zap.String("group_id", groupID.String()))
		return nil
	}

	subject := "Your RSVP is confirmed"
	body := buildConfirmationBody(group)
	sendErr := s.mailer.Send(recipient.Email, subject, body)
	s.record(ctx, &group.ID, &recipient.ID, models.EmailTypeConfirmation, recipient.Email, subject, sendErr)
	if sendErr != nil {
		return fmt.Errorf("send confirmation: %w", sendErr)
	}
	s.logger.Info("confirmation email sent",
		zap.String("group_id", groupID.String()), zap.String("recipient", recipient.Email))
	return nil
}

// SendReminders attempts a reminder to each listed guest. One guest's failure
// never aborts the batch; guests without an email are counted as skipped.
func (s *Service) SendReminders(ctx context.Context, guestIDs []uuid.UUID) ReminderResult {
	result := ReminderResult{Failures: []ReminderFailure{}}

	found, err := s.guests.ListByIDs(ctx, guestIDs)
	if err != nil {
		s.logger.Error("reminder batch: load guests failed", zap.Error(err))
		for _, id := range guestIDs {
			result.Failures = append(result.Failures, ReminderFailure{GuestID: id, Reason: "failed to load guest"})
		}
		return result
	}
	byID := make(map[uuid.UUID]*models.Guest, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	for _, id := range guestIDs {
		guest, ok := byID[id]
		if !ok {
			result.Failures = append(result.Failures, ReminderFailure{GuestID: id, Reason: "guest not found"})
			continue
		}
		if guest.Email == "" {
			result.Skipped++
			continue
		}
		if s.mailer == nil || s.cfg.SMTPHost == "" {
			result.Failures = append(result.Failures, ReminderFailure{GuestID: id, Reason: "email delivery is not configured"})
			continue
		}

		subject := "Reminder: please RSVP"
		body := buildReminderBody(guest)
		sendErr := s.mailer.Send(guest.Email, subject, body)
		s.record(ctx, &guest.GroupID, &guest.ID, models.EmailTypeReminder, guest.Email, subject, sendErr)
		if sendErr != nil {
			s.logger.Warn("reminder send failed", zap.Error(sendErr), zap.String("guest_id", id.String()))
			result.Failures = append(result.Failures, ReminderFailure{GuestID: id, Reason: sendErr.Error()})
			continue
		}
		result.Sent++
	}
	return result
}

func (s *Service) record(ctx context.Context, groupID, guestID *uuid.UUID, emailType, recipient, subject string, sendErr error) {
	if s.logs == nil {
		return
	}
	el := &models.EmailLog{
		GroupID:        groupID,
		GuestID:        guestID,
		EmailType:      emailType,
		RecipientEmail: recipient,
		Subject:        subject,
		Status:         models.EmailLogStatusSent,
	}
	if sendErr != nil {
		el.Status = models.EmailLogStatusFailed
		el.ErrorMessage = sendErr.Error()
	}
	if err := s.logs.Record(ctx, el); err != nil {
		s.logger.Warn("record email log failed", zap.Error(err))
	}
}

// buildConfirmationBody renders one plaintext summary line block per guest.
func buildConfirmationBody(group *models.Group) string {
	var b strings.Builder
	b.WriteString("Thank you for your RSVP! Here is what we have on file:\n")
	for i := range group.Guests {
		g := &group.Guests[i]
		b.WriteString("\n")
		b.WriteString(g.FullName())
		b.WriteString("\n  Status: ")
		b.WriteString(string(g.RSVPStatus))
		if len(g.Events) > 0 {
			b.WriteString("\n  Events: ")
			b.WriteString(strings.Join(g.Events, ", "))
		}
		if g.DietaryRestrictions != "" {
			b.WriteString("\n  Dietary: ")
			b.WriteString(g.DietaryRestrictions)
		}
		if g.PlusOne != nil {
			b.WriteString("\n  Plus one: ")
			b.WriteString(g.PlusOne.Name)
			if g.PlusOne.DietaryRestrictions != "" {
				b.WriteString(" (")
				b.WriteString(g.PlusOne.DietaryRestrictions)
				b.WriteString(")")
			}
		}
		if g.SongRequest != "" {
			b.WriteString("\n  Song request: ")
			b.WriteString(g.SongRequest)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nIf anything changes, you can update your RSVP on the website any time before the deadline.\n")
	return b.String()
}

func buildReminderBody(g *models.Guest) string {
	return fmt.Sprintf(
		"Hi %s,\n\nWe have not received your RSVP yet. Please visit the website and let us know whether you can join us.\n\nWith love,\nAmara & Dev\n",
		g.FirstName,
	)
}
