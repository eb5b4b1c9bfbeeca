package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleChat is the transport seam: a webhook adapter POSTs each incoming
// user message here and relays the reply text.
func (h *Handler) HandleChat(c *gin.Context) {
	var in Incoming
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and text are required"})
		return
	}

	reply := h.service.HandleMessage(c.Request.Context(), in)
	c.JSON(http.StatusOK, reply)
}
