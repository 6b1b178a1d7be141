package rsvp

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amara-wedding/backend/pkg/response"
)

// ConfirmationNotifier queues a confirmation email for a group's primary
// guest. Implementations must never block on delivery.
type ConfirmationNotifier interface {
	QueueConfirmation(ctx context.Context, groupID uuid.UUID) error
}

// Handler handles the guest-facing RSVP endpoints.
type Handler struct {
	service  *Service
	notifier ConfirmationNotifier
	logger   *zap.Logger
}

// NewHandler creates an RSVP handler. notifier may be nil when confirmation
// emails are disabled.
func NewHandler(service *Service, notifier ConfirmationNotifier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, notifier: notifier, logger: logger}
}

func (h *Handler) gateState() (bool, *string) {
	gate := h.service.Gate()
	open := gate.OpenAt(time.Now())
	var by *string
	if d := gate.Deadline(); d != nil {
		s := d.Format("2006-01-02")
		by = &s
	}
	return open, by
}

// Status handles GET /api/rsvp/status.
func (h *Handler) Status(c *gin.Context) {
	open, by := h.gateState()
	response.OK(c, gin.H{"rsvpOpen": open, "rsvpByDate": by})
}

// Lookup handles GET /api/rsvp/lookup?firstName=&lastName=.
func (h *Handler) Lookup(c *gin.Context) {
	groups, err := h.service.Lookup(c.Request.Context(), c.Query("firstName"), c.Query("lastName"))
	switch {
	case errors.Is(err, ErrNameRequired):
		response.BadRequest(c, err.Error())
		return
	case errors.Is(err, ErrNoGuestFound):
		response.NotFound(c, err.Error())
		return
	case err != nil:
		h.logger.Error("lookup failed", zap.Error(err))
		response.Internal(c, "failed to look up guest")
		return
	}

	open, by := h.gateState()
	response.OK(c, gin.H{
		"groups":     groups,
		"rsvpOpen":   open,
		"rsvpByDate": by,
	})
}

// Submit handles POST /api/rsvp.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	err := h.service.Submit(c.Request.Context(), req)
	var emailErr *EmailInUseError
	switch {
	case errors.Is(err, ErrClosed):
		response.Forbidden(c, err.Error())
		return
	case errors.Is(err, ErrGroupNotFound):
		response.NotFound(c, err.Error())
		return
	case errors.Is(err, ErrGuestNotInGroup):
		response.BadRequest(c, err.Error())
		return
	case errors.As(err, &emailErr):
		response.BadRequest(c, emailErr.Error())
		return
	case err != nil:
		h.logger.Error("rsvp submit failed", zap.Error(err), zap.String("group_id", req.GroupID.String()))
		response.Internal(c, "failed to save RSVP")
		return
	}

	response.OK(c, gin.H{"submitted": true})

	// Confirmation email is detached from the request: the response above is
	// final regardless of what happens here.
	if h.notifier != nil {
		groupID := req.GroupID
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.notifier.QueueConfirmation(ctx, groupID); err != nil {
				h.logger.Warn("queue confirmation email failed",
					zap.Error(err), zap.String("group_id", groupID.String()))
			}
		}()
	}
}
