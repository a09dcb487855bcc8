package handler

import (
	"errors"
	"net/http"

	"ads-manager-server/internal/accounts/processor"
	"ads-manager-server/internal/apierrors"
	"ads-manager-server/internal/clients/meta"
	"ads-manager-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.AccountsProcessor
	logger    *observability.Logger
}

func New(p processor.AccountsProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: p,
		logger:    logger,
	}
}

// CreateClientRequest is the payload for a manual client.
type CreateClientRequest struct {
	Name     string `json:"name" binding:"required,min=1"`
	Industry string `json:"industry"`
}

// ConnectRequest carries the ad account credentials to validate and persist.
type ConnectRequest struct {
	AdAccountID string `json:"ad_account_id" binding:"required,min=1"`
	AccessToken string `json:"access_token" binding:"required,min=1"`
}

func (h Handler) HandleListClients(c *gin.Context) {
	clients, err := h.processor.ListClients(c.Request.Context())
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h Handler) HandleGetClient(c *gin.Context) {
	client, err := h.processor.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h Handler) HandleCreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "INVALID_REQUEST", "Invalid client payload: "+err.Error())
		return
	}
	client, err := h.processor.CreateClient(c.Request.Context(), processor.CreateClientParams{
		Name:     req.Name,
		Industry: req.Industry,
	})
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h Handler) HandleDeleteClient(c *gin.Context) {
	if err := h.processor.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		apierrors.InternalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleConnect validates credentials against the provider and links the ad
// account to the client in the path.
func (h Handler) HandleConnect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "INVALID_REQUEST", "Invalid connect payload: "+err.Error())
		return
	}
	client, err := h.processor.Connect(c.Request.Context(), c.Param("id"), req.AdAccountID, req.AccessToken)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h Handler) HandleSummary(c *gin.Context) {
	summary, err := h.processor.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h Handler) respondError(c *gin.Context, err error) {
	var providerErr *meta.ProviderError
	var transportErr *meta.TransportError

	switch {
	case errors.Is(err, processor.ErrClientNotFound):
		apierrors.NotFound(c, "Client not found")
	case errors.As(err, &providerErr):
		apierrors.BadGateway(c, "PROVIDER_ERROR", providerErr.Message)
	case errors.As(err, &transportErr):
		apierrors.BadGateway(c, "CONNECTION_ERROR", "Could not reach the ads platform. Please try again.")
	default:
		apierrors.InternalError(c, err)
	}
}
