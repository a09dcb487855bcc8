package bootstrap

import (
	"context"
	"fmt"

	"ads-manager-server/internal/config"
	"ads-manager-server/internal/observability"
	"ads-manager-server/internal/store"

	accountsHandler "ads-manager-server/internal/accounts/handler"
	accountsProcessor "ads-manager-server/internal/accounts/processor"
	adsyncHandler "ads-manager-server/internal/adsync/handler"
	adsyncProcessor "ads-manager-server/internal/adsync/processor"
	authHandler "ads-manager-server/internal/auth/handler"
	authProcessor "ads-manager-server/internal/auth/processor"
	"ads-manager-server/internal/clients/googleai"
	"ads-manager-server/internal/clients/meta"
	insightsHandler "ads-manager-server/internal/insights/handler"
	insightsProcessor "ads-manager-server/internal/insights/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Clients
	GraphClient *meta.Client
	AIClient    *googleai.Client

	// Handlers
	AuthHandler     authHandler.Handler
	AccountsHandler accountsHandler.Handler
	SyncHandler     adsyncHandler.Handler
	InsightsHandler insightsHandler.Handler
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	var err error
	deps.Store, err = store.New(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to firestore: %w", err)
	}

	deps.GraphClient = meta.NewClient(cfg.Meta.BaseURL, cfg.Meta.APIVersion, logger)

	deps.AIClient, err = googleai.NewClient(ctx, cfg.Services.GoogleAIAPIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}

	authProc := authProcessor.New(deps.Store, cfg.Auth.JWTSecret, logger)
	deps.AuthHandler = authHandler.New(authProc, logger)

	accountsProc := accountsProcessor.New(deps.Store, deps.GraphClient, logger)
	deps.AccountsHandler = accountsHandler.New(accountsProc, logger)

	syncProc := adsyncProcessor.New(deps.GraphClient, deps.Store, logger)
	deps.SyncHandler = adsyncHandler.New(syncProc, logger)

	insightsProc := insightsProcessor.New(deps.Store, deps.AIClient, logger)
	deps.InsightsHandler = insightsHandler.New(insightsProc, logger)

	return deps, nil
}

// Cleanup releases held connections.
func (d *Dependencies) Cleanup() {
	if d.AIClient != nil {
		_ = d.AIClient.Close()
	}
	_ = d.Store.Close()
}
