package handler

import (
	"errors"
	"net/http"

	"ads-manager-server/internal/apierrors"
	"ads-manager-server/internal/insights/processor"
	"ads-manager-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.InsightsProcessor
	logger    *observability.Logger
}

func New(p processor.InsightsProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: p,
		logger:    logger,
	}
}

// AnalysisResponse wraps the model's Markdown suggestions.
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}

func (h Handler) HandleAnalyzeCampaign(c *gin.Context) {
	analysis, err := h.processor.AnalyzeCampaign(c.Request.Context(), c.Param("id"), c.Param("campaignID"))
	if err != nil {
		switch {
		case errors.Is(err, processor.ErrClientNotFound):
			apierrors.NotFound(c, "Client not found")
		case errors.Is(err, processor.ErrCampaignNotFound):
			apierrors.NotFound(c, "Campaign not found")
		default:
			apierrors.InternalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, AnalysisResponse{Analysis: analysis})
}
