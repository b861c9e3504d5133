package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/lms-backend/internal/middleware"
	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/response"
)

// Inbox is the read side of the notification service.
type Inbox interface {
	ListByUser(ctx context.Context, to model.Recipient) ([]model.Notification, error)
	UnreadCount(ctx context.Context, to model.Recipient) (int64, error)
	MarkAsRead(ctx context.Context, id int64, owner *model.Recipient) (*model.Notification, error)
	MarkAllAsRead(ctx context.Context, to model.Recipient) (int64, error)
}

// NotificationHandler serves a user's notification inbox.
type NotificationHandler struct {
	inbox Inbox
	log   zerolog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(inbox Inbox, log zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		inbox: inbox,
		log:   log.With().Str("component", "notification_handler").Logger(),
	}
}

// ListByUser godoc
// GET /api/v1/notifications/user/:userId?role=
// Newest first. role defaults to the caller's own role.
func (h *NotificationHandler) ListByUser(c *gin.Context) {
	to, ok := h.recipient(c)
	if !ok {
		return
	}

	list, err := h.inbox.ListByUser(c.Request.Context(), to)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// UnreadCount godoc
// GET /api/v1/notifications/user/:userId/unread-count?role=
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	to, ok := h.recipient(c)
	if !ok {
		return
	}

	n, err := h.inbox.UnreadCount(c.Request.Context(), to)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": n})
}

// MarkAsRead godoc
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	var owner *model.Recipient
	if claims.Role != model.RoleAdmin {
		owner = &model.Recipient{UserID: claims.UserID, Role: claims.Role}
	}

	n, err := h.inbox.MarkAsRead(c.Request.Context(), id, owner)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, n)
}

// MarkAllAsRead godoc
// PUT /api/v1/notifications/user/:userId/read-all?role=
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	to, ok := h.recipient(c)
	if !ok {
		return
	}

	n, err := h.inbox.MarkAllAsRead(c.Request.Context(), to)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": n})
}

// recipient resolves the inbox named by the path id and the optional role
// query, which defaults to the caller's role.
func (h *NotificationHandler) recipient(c *gin.Context) (model.Recipient, bool) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return model.Recipient{}, false
	}
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return model.Recipient{}, false
	}

	to := model.Recipient{UserID: userID, Role: claims.Role}
	if raw := c.Query("role"); raw != "" {
		to.Role = model.Role(strings.ToUpper(raw))
		if !to.Role.Valid() {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
				"role": "role must be one of STUDENT, INSTRUCTOR, ADMIN",
			})
			return model.Recipient{}, false
		}
	}
	if !requireSelf(c, to) {
		return model.Recipient{}, false
	}
	return to, true
}
