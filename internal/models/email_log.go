package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailType for guest mail.
const (
	EmailTypeConfirmation = "rsvp_confirmation"
	EmailTypeReminder     = "rsvp_reminder"
)

// EmailLogStatus for delivery.
const (
	EmailLogStatusPending = "pending"
	EmailLogStatusSent    = "sent"
	EmailLogStatusFailed  = "failed"
)

// EmailLog records confirmation and reminder emails sent to guests.
type EmailLog struct {
	ID             uuid.UUID  `json:"id"`
	GroupID        *uuid.UUID `json:"groupId,omitempty"`
	GuestID        *uuid.UUID `json:"guestId,omitempty"`
	EmailType      string     `json:"emailType"`
	RecipientEmail string     `json:"recipientEmail"`
	Subject        string     `json:"subject,omitempty"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sentAt,omitempty"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
