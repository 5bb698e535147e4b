package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hirehub/internal/audit"
	"github.com/mrlokans/hirehub/internal/auth"
)

const (
	defaultActivityLimit = 25
	maxActivityLimit     = 100
)

type ActivityController struct {
	auditService *audit.Service
}

func NewActivityController(auditService *audit.Service) *ActivityController {
	return &ActivityController{
		auditService: auditService,
	}
}

// GetActivity returns the caller's paginated account events as JSON.
// GET /user/me/activity
func (ac *ActivityController) GetActivity(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, auth.MessageResponse{Success: false, Message: auth.MsgUnauthenticated})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultActivityLimit)))

	if page < 1 {
		page = 1
	}
	switch {
	case limit < 1:
		limit = defaultActivityLimit
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}
	offset := (page - 1) * limit

	events, total, err := ac.auditService.GetEvents(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondInternalError(c, err, "load account activity")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"events":       events,
		"page":         page,
		"limit":        limit,
		"total_pages":  totalPages,
		"total_events": total,
	})
}
