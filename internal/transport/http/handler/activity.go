package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resource-library/internal/app"
	"resource-library/internal/model"
	"resource-library/internal/transport/http/response"
)

type ActivityHandler struct {
	activityService *app.ActivityService
}

func NewActivityHandler(activityService *app.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// List serves GET /api/events?resource_id=&limit=.
func (h *ActivityHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	events, err := h.activityService.Recent(c.Request.Context(), c.Query("resource_id"), limit)
	if err != nil {
		writeAppError(c, err, "list events failed")
		return
	}
	if events == nil {
		events = []model.ResourceEvent{}
	}
	response.OK(c, events)
}
