package handler

import (
	"errors"

	"ads-manager-server/internal/adsync/processor"
	"ads-manager-server/internal/apierrors"
	"ads-manager-server/internal/clients/meta"
	"ads-manager-server/internal/observability"
	"ads-manager-server/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.SyncProcessor
	logger    *observability.Logger
}

func New(p processor.SyncProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: p,
		logger:    logger,
	}
}

// SyncRequest selects the date window for one sync. Preset defaults to
// this_month; a custom preset requires an ordered since/until pair.
type SyncRequest struct {
	Preset string `json:"preset"`
	Since  string `json:"since,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Until  string `json:"until,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// HandleSync triggers the sync pipeline for one client and returns the fully
// refreshed client value.
func (h Handler) HandleSync(c *gin.Context) {
	clientID := c.Param("id")

	var req SyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "INVALID_REQUEST", "Invalid sync request: "+err.Error())
			return
		}
	}
	if req.Preset == "" {
		req.Preset = "this_month"
	}
	if req.Preset == processor.PresetCustom {
		if req.Since == "" || req.Until == "" || req.Since > req.Until {
			apierrors.BadRequest(c, "INVALID_DATE_RANGE", "Custom range requires since <= until")
			return
		}
	}

	client, err := h.processor.SyncClient(c.Request.Context(), clientID, processor.DateRangeSelector{
		Preset: req.Preset,
		Since:  req.Since,
		Until:  req.Until,
	})
	if err != nil {
		h.respondSyncError(c, err)
		return
	}

	c.JSON(200, client)
}

// respondSyncError maps pipeline failures onto the API error taxonomy. The
// provider's own message is surfaced verbatim; transport failures get a
// generic connection message.
func (h Handler) respondSyncError(c *gin.Context, err error) {
	var providerErr *meta.ProviderError
	var transportErr *meta.TransportError

	switch {
	case errors.Is(err, store.ErrClientNotFound):
		apierrors.NotFound(c, "Client not found")
	case errors.Is(err, processor.ErrMissingCredentials):
		apierrors.BadRequest(c, "MISSING_CREDENTIALS", "Client has no linked ad account")
	case errors.As(err, &providerErr):
		apierrors.BadGateway(c, "PROVIDER_ERROR", providerErr.Message)
	case errors.As(err, &transportErr):
		apierrors.BadGateway(c, "CONNECTION_ERROR", "Could not reach the ads platform. Please try again.")
	default:
		apierrors.InternalError(c, err)
	}
}
