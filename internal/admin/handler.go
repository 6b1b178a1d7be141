package admin

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amara-wedding/backend/internal/models"
	"github.com/amara-wedding/backend/internal/notifications"
	"github.com/amara-wedding/backend/pkg/response"
)

// GuestStore is the guest persistence surface the dashboard needs.
type GuestStore interface {
	List(ctx context.Context) ([]models.Guest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error)
	GetByEmail(ctx context.Context, email string) (*models.Guest, error)
	Create(ctx context.Context, g *models.Guest) error
	Update(ctx context.Context, g *models.Guest) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[models.RSVPStatus]int, error)
	CountByEvent(ctx context.Context) (map[string]int, error)
}

// GroupStore is the group persistence surface the dashboard needs.
// Delete removes the group together with every guest in it.
type GroupStore interface {
	List(ctx context.Context) ([]models.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
	Create(ctx context.Context, g *models.Group) error
	Update(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReminderSender sends a best-effort reminder batch.
type ReminderSender interface {
	SendReminders(ctx context.Context, guestIDs []uuid.UUID) notifications.ReminderResult
}

// Handler handles the admin dashboard endpoints. Admin auth is enforced by
// route middleware before any of these run.
type Handler struct {
	guests    GuestStore
	groups    GroupStore
	reminders ReminderSender
	logger    *zap.Logger
}

// NewHandler creates the admin handler.
func NewHandler(guestRepo GuestStore, groupRepo GroupStore, reminders ReminderSender, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{guests: guestRepo, groups: groupRepo, reminders: reminders, logger: logger}
}

// GuestRequest is the body for guest create/update.
type GuestRequest struct {
	GroupID             uuid.UUID              `json:"groupId" binding:"required"`
	FirstName           string                 `json:"firstName" binding:"required"`
	LastName            string                 `json:"lastName" binding:"required"`
	Email               string                 `json:"email"`
	Events              []string               `json:"events"`
	DietaryRestrictions string                 `json:"dietaryRestrictions"`
	PlusOne             *models.PlusOne        `json:"plusOne"`
	SongRequest         string                 `json:"songRequest"`
	MailingAddress      *models.MailingAddress `json:"mailingAddress"`
	RSVPStatus          string                 `json:"rsvpStatus"`
	PlusOneAllowed      bool                   `json:"plusOneAllowed"`
	HotelBooked         bool                   `json:"hotelBooked"`
}

func validStatus(s string) bool {
	switch models.RSVPStatus(s) {
	case models.RSVPPending, models.RSVPConfirmed, models.RSVPMaybe, models.RSVPDeclined:
		return true
	}
	return false
}

// emailAvailable reports whether email is unused or held by selfID only.
func (h *Handler) emailAvailable(c *gin.Context, email string, selfID uuid.UUID) (bool, error) {
	if email == "" {
		return true, nil
	}
	holder, err := h.guests.GetByEmail(c.Request.Context(), email)
	if err != nil {
		return false, err
	}
	return holder == nil || holder.ID == selfID, nil
}

// ListGuests handles GET /api/admin/guests.
func (h *Handler) ListGuests(c *gin.Context) {
	list, err := h.guests.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list guests failed", zap.Error(err))
		response.Internal(c, "failed to load guests")
		return
	}
	response.OK(c, list)
}

// GetGuest handles GET /api/admin/guests/:id.
func (h *Handler) GetGuest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid guest id")
		return
	}
	guest, err := h.guests.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("get guest failed", zap.Error(err))
		response.Internal(c, "failed to load guest")
		return
	}
	if guest == nil {
		response.NotFound(c, "guest not found")
		return
	}
	response.OK(c, guest)
}

// CreateGuest handles POST /api/admin/guests. New guests start pending with
// no event selections.
func (h *Handler) CreateGuest(c *gin.Context) {
	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	group, err := h.groups.GetByID(c.Request.Context(), req.GroupID)
	if err != nil {
		h.logger.Error("load group failed", zap.Error(err))
		response.Internal(c, "failed to load group")
		return
	}
	if group == nil {
		response.NotFound(c, "group not found")
		return
	}

	email := strings.TrimSpace(req.Email)
	ok, err := h.emailAvailable(c, email, uuid.Nil)
	if err != nil {
		h.logger.Error("email check failed", zap.Error(err))
		response.Internal(c, "failed to create guest")
		return
	}
	if !ok {
		response.BadRequest(c, "email "+email+" is already in use by another guest")
		return
	}

	guest := &models.Guest{
		GroupID:             req.GroupID,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               email,
		RSVPStatus:          models.RSVPPending,
		Events:              []string{},
		DietaryRestrictions: req.DietaryRestrictions,
		PlusOneAllowed:      req.PlusOneAllowed,
		HotelBooked:         req.HotelBooked,
	}
	if err := h.guests.Create(c.Request.Context(), guest); err != nil {
		h.logger.Error("create guest failed", zap.Error(err))
		response.Internal(c, "failed to create guest")
		return
	}
	response.Created(c, guest)
}

// UpdateGuest handles PUT /api/admin/guests/:id.
func (h *Handler) UpdateGuest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid guest id")
		return
	}
	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.RSVPStatus != "" && !validStatus(req.RSVPStatus) {
		response.BadRequest(c, "invalid rsvp status")
		return
	}

	guest, err := h.guests.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("load guest failed", zap.Error(err))
		response.Internal(c, "failed to load guest")
		return
	}
	if guest == nil {
		response.NotFound(c, "guest not found")
		return
	}

	group, err := h.groups.GetByID(c.Request.Context(), req.GroupID)
	if err != nil {
		h.logger.Error("load group failed", zap.Error(err))
		response.Internal(c, "failed to load group")
		return
	}
	if group == nil {
		response.NotFound(c, "group not found")
		return
	}

	email := strings.TrimSpace(req.Email)
	ok, err := h.emailAvailable(c, email, id)
	if err != nil {
		h.logger.Error("email check failed", zap.Error(err))
		response.Internal(c, "failed to update guest")
		return
	}
	if !ok {
		response.BadRequest(c, "email "+email+" is already in use by another guest")
		return
	}

	guest.GroupID = req.GroupID
	guest.FirstName = req.FirstName
	guest.LastName = req.LastName
	guest.Email = email
	guest.Events = models.FilterEvents(req.Events)
	guest.DietaryRestrictions = req.DietaryRestrictions
	guest.PlusOne = req.PlusOne
	guest.SongRequest = req.SongRequest
	guest.MailingAddress = req.MailingAddress
	guest.PlusOneAllowed = req.PlusOneAllowed
	guest.HotelBooked = req.HotelBooked
	if req.RSVPStatus != "" {
		guest.RSVPStatus = models.RSVPStatus(req.RSVPStatus)
	}
	if guest.RSVPStatus == models.RSVPPending || guest.RSVPStatus == models.RSVPDeclined {
		guest.Events = []string{}
	}

	if err := h.guests.Update(c.Request.Context(), guest); err != nil {
		h.logger.Error("update guest failed", zap.Error(err))
		response.Internal(c, "failed to update guest")
		return
	}
	response.OK(c, guest)
}

// DeleteGuest handles DELETE /api/admin/guests/:id.
func (h *Handler) DeleteGuest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid guest id")
		return
	}
	if err := h.guests.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("delete guest failed", zap.Error(err))
		response.Internal(c, "failed to delete guest")
		return
	}
	response.NoContent(c)
}

// GroupRequest is the body for group create/update.
type GroupRequest struct {
	Name string `json:"name"`
}

// ListGroups handles GET /api/admin/groups.
func (h *Handler) ListGroups(c *gin.Context) {
	list, err := h.groups.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list groups failed", zap.Error(err))
		response.Internal(c, "failed to load groups")
		return
	}
	response.OK(c, list)
}

// GetGroup handles GET /api/admin/groups/:id.
func (h *Handler) GetGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}
	group, err := h.groups.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("get group failed", zap.Error(err))
		response.Internal(c, "failed to load group")
		return
	}
	if group == nil {
		response.NotFound(c, "group not found")
		return
	}
	response.OK(c, group)
}

// CreateGroup handles POST /api/admin/groups.
func (h *Handler) CreateGroup(c *gin.Context) {
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	group := &models.Group{Name: req.Name}
	if err := h.groups.Create(c.Request.Context(), group); err != nil {
		h.logger.Error("create group failed", zap.Error(err))
		response.Internal(c, "failed to create group")
		return
	}
	response.Created(c, group)
}

// UpdateGroup handles PUT /api/admin/groups/:id.
func (h *Handler) UpdateGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.groups.Update(c.Request.Context(), id, req.Name); err != nil {
		response.NotFound(c, "group not found")
		return
	}
	response.OK(c, gin.H{"id": id, "name": req.Name})
}

// DeleteGroup handles DELETE /api/admin/groups/:id. Guests in the group are
// deleted with it.
func (h *Handler) DeleteGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}
	if err := h.groups.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("delete group failed", zap.Error(err))
		response.Internal(c, "failed to delete group")
		return
	}
	response.NoContent(c)
}

// GetStats handles GET /api/admin/stats. The aggregates are independent
// reads; the dashboard tolerates slight skew between them.
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	byStatus, err := h.guests.CountByStatus(ctx)
	if err != nil {
		h.logger.Error("count by status failed", zap.Error(err))
		response.Internal(c, "failed to load stats")
		return
	}
	byEvent, err := h.guests.CountByEvent(ctx)
	if err != nil {
		h.logger.Error("count by event failed", zap.Error(err))
		response.Internal(c, "failed to load stats")
		return
	}
	groupList, err := h.groups.List(ctx)
	if err != nil {
		h.logger.Error("list groups failed", zap.Error(err))
		response.Internal(c, "failed to load stats")
		return
	}

	var allGuests []models.Guest
	for i := range groupList {
		allGuests = append(allGuests, groupList[i].Guests...)
	}
	rollups := ComputeGroupRollups(groupList)
	plusAllowed, plusUsed, dietary, hotel := ComputeGuestTallies(allGuests)

	total := 0
	for _, n := range byStatus {
		total += n
	}

	response.OK(c, Stats{
		TotalGuests:       total,
		TotalGroups:       len(groupList),
		ByStatus:          byStatus,
		ByEvent:           byEvent,
		GroupsResponded:   rollups.Responded,
		GroupsAllDeclined: rollups.AllDeclined,
		GroupsMixed:       rollups.Mixed,
		PlusOnesAllowed:   plusAllowed,
		PlusOnesUsed:      plusUsed,
		WithDietary:       dietary,
		HotelBooked:       hotel,
	})
}

// ExportCSV handles GET /api/admin/export.
func (h *Handler) ExportCSV(c *gin.Context) {
	groupList, err := h.groups.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list groups failed", zap.Error(err))
		response.Internal(c, "failed to export guests")
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="guests.csv"`)
	if err := WriteGuestCSV(c.Writer, groupList); err != nil {
		h.logger.Error("write csv failed", zap.Error(err))
	}
}

// RemindersRequest is the body for POST /api/admin/reminders.
type RemindersRequest struct {
	GuestIDs []uuid.UUID `json:"guestIds" binding:"required"`
}

// SendReminders handles POST /api/admin/reminders.
func (h *Handler) SendReminders(c *gin.Context) {
	var req RemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if h.reminders == nil {
		response.ServiceUnavailable(c, "reminder emails are not configured")
		return
	}
	result := h.reminders.SendReminders(c.Request.Context(), req.GuestIDs)
	response.OK(c, result)
}
