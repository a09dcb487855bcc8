package processor

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"ads-manager-server/internal/clients/meta"
	"ads-manager-server/internal/observability"
	"ads-manager-server/internal/store"

	"github.com/google/uuid"
)

var ErrClientNotFound = errors.New("client not found")

// AccountsStore defines the persistence operations required by AccountsProcessor.
type AccountsStore interface {
	GetClient(ctx context.Context, id string) (store.Client, error)
	ListClients(ctx context.Context) ([]store.Client, error)
	UpsertClient(ctx context.Context, client store.Client) error
	DeleteClient(ctx context.Context, id string) error
}

// ConnectionValidator confirms ad account credentials against the provider
// before they are persisted.
type ConnectionValidator interface {
	ValidateConnection(ctx context.Context, adAccountID, accessToken string) (meta.AccountInfo, error)
}

// AccountsProcessor manages the agency's client roster: manual creation, ad
// account linking, deletion and dashboard aggregates.
type AccountsProcessor struct {
	store  AccountsStore
	graph  ConnectionValidator
	logger *observability.Logger
}

func New(accountsStore AccountsStore, graph ConnectionValidator, logger *observability.Logger) AccountsProcessor {
	return AccountsProcessor{
		store:  accountsStore,
		graph:  graph,
		logger: logger,
	}
}

// CreateClientParams are the fields an operator supplies for a manual client.
type CreateClientParams struct {
	Name     string
	Industry string
}

// CreateClient adds a client without ad account credentials; sync stays
// unavailable until an account is linked.
func (p AccountsProcessor) CreateClient(ctx context.Context, params CreateClientParams) (store.Client, error) {
	industry := params.Industry
	if industry == "" {
		industry = "General"
	}
	client := store.Client{
		ID:        fmt.Sprintf("c_%s", uuid.New().String()),
		Name:      params.Name,
		Industry:  industry,
		Avatar:    avatarURL(params.Name),
		Campaigns: []store.Campaign{},
	}
	if err := p.store.UpsertClient(ctx, client); err != nil {
		return store.Client{}, err
	}
	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "client_id", Value: client.ID},
	), "client created")
	return client, nil
}

// GetClient returns one client by id.
func (p AccountsProcessor) GetClient(ctx context.Context, id string) (store.Client, error) {
	client, err := p.store.GetClient(ctx, id)
	if errors.Is(err, store.ErrClientNotFound) {
		return store.Client{}, ErrClientNotFound
	}
	return client, err
}

// ListClients returns the full roster.
func (p AccountsProcessor) ListClients(ctx context.Context) ([]store.Client, error) {
	return p.store.ListClients(ctx)
}

// DeleteClient removes a client and all its synced data.
func (p AccountsProcessor) DeleteClient(ctx context.Context, id string) error {
	return p.store.DeleteClient(ctx, id)
}

// Connect validates ad account credentials against the provider and persists
// them. When clientID is empty the account is matched against an existing
// client by its official account id, or a new client is created under the
// account's name.
func (p AccountsProcessor) Connect(ctx context.Context, clientID, adAccountID, accessToken string) (store.Client, error) {
	info, err := p.graph.ValidateConnection(ctx, adAccountID, accessToken)
	if err != nil {
		return store.Client{}, err
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "ad_account_id", Value: info.ID})

	client, err := p.resolveClientForAccount(ctx, clientID, info.ID)
	if err != nil {
		return store.Client{}, err
	}

	client.Name = info.Name
	client.AdAccountID = info.ID
	client.AccessToken = accessToken
	if client.Avatar == "" {
		client.Avatar = avatarURL(info.Name)
	}
	if client.Industry == "" {
		client.Industry = "General"
	}
	if client.Campaigns == nil {
		client.Campaigns = []store.Campaign{}
	}

	if err := p.store.UpsertClient(ctx, client); err != nil {
		return store.Client{}, err
	}
	p.logger.Info(ctx, "ad account connected")
	return client, nil
}

func (p AccountsProcessor) resolveClientForAccount(ctx context.Context, clientID, officialID string) (store.Client, error) {
	if clientID != "" {
		client, err := p.store.GetClient(ctx, clientID)
		if errors.Is(err, store.ErrClientNotFound) {
			return store.Client{}, ErrClientNotFound
		}
		return client, err
	}

	clients, err := p.store.ListClients(ctx)
	if err != nil {
		return store.Client{}, err
	}
	for _, c := range clients {
		if c.AdAccountID == officialID {
			return c, nil
		}
	}
	return store.Client{ID: fmt.Sprintf("c_%s", uuid.New().String())}, nil
}

// Summary aggregates campaign metrics for the dashboard header cards.
type Summary struct {
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions float64 `json:"conversions"`
	Revenue     float64 `json:"revenue"`
	ROAS        float64 `json:"roas"`
	CTR         float64 `json:"ctr"`
}

// Summarize sums campaign-level metrics across a client. ROAS and CTR are
// derived with divide-by-zero guards.
func (p AccountsProcessor) Summarize(ctx context.Context, clientID string) (Summary, error) {
	client, err := p.GetClient(ctx, clientID)
	if err != nil {
		return Summary{}, err
	}

	var s Summary
	for _, campaign := range client.Campaigns {
		s.Spend += campaign.Metrics.Spend
		s.Impressions += campaign.Metrics.Impressions
		s.Clicks += campaign.Metrics.Clicks
		s.Conversions += campaign.Metrics.Conversions
		s.Revenue += campaign.Metrics.ConversionValue
	}
	if s.Spend > 0 {
		s.ROAS = s.Revenue / s.Spend
	}
	if s.Impressions > 0 {
		s.CTR = float64(s.Clicks) / float64(s.Impressions) * 100
	}
	return s, nil
}

func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
