package api

import (
	"net/http"

	accountsHandler "ads-manager-server/internal/accounts/handler"
	adsyncHandler "ads-manager-server/internal/adsync/handler"
	authHandler "ads-manager-server/internal/auth/handler"
	insightsHandler "ads-manager-server/internal/insights/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router          *gin.RouterGroup
	authHandler     authHandler.Handler
	accountsHandler accountsHandler.Handler
	syncHandler     adsyncHandler.Handler
	insightsHandler insightsHandler.Handler
}

func New(router *gin.RouterGroup, auth authHandler.Handler, accounts accountsHandler.Handler,
	sync adsyncHandler.Handler, insights insightsHandler.Handler) API {
	return API{
		router:          router,
		authHandler:     auth,
		accountsHandler: accounts,
		syncHandler:     sync,
		insightsHandler: insights,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/login", a.authHandler.HandleLogin)
	}
	protectedGroup := apiGroup.Group("/protected", a.authHandler.HandleJWTMiddleware)
	{
		protectedGroup.GET("/clients", a.accountsHandler.HandleListClients)
		protectedGroup.POST("/clients", a.accountsHandler.HandleCreateClient)
		protectedGroup.GET("/clients/:id", a.accountsHandler.HandleGetClient)
		protectedGroup.DELETE("/clients/:id", a.accountsHandler.HandleDeleteClient)
		protectedGroup.POST("/clients/:id/connect", a.accountsHandler.HandleConnect)
		protectedGroup.GET("/clients/:id/summary", a.accountsHandler.HandleSummary)
		protectedGroup.POST("/clients/:id/sync", a.syncHandler.HandleSync)
		protectedGroup.POST("/clients/:id/campaigns/:campaignID/analyze", a.insightsHandler.HandleAnalyzeCampaign)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
