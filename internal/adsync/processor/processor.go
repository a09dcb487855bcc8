package processor

import (
	"context"
	"errors"
	"sort"
	"time"

	"ads-manager-server/internal/clients/meta"
	"ads-manager-server/internal/observability"
	"ads-manager-server/internal/store"
)

// ErrMissingCredentials is returned before any network call when the client
// has no linked ad account or access token.
var ErrMissingCredentials = errors.New("client is missing ad account credentials")

// GraphClient defines the provider operations required by SyncProcessor.
type GraphClient interface {
	FetchCampaignTree(ctx context.Context, adAccountID, accessToken string, q meta.DateQuery) ([]meta.RawCampaign, error)
	FetchDailyHistory(ctx context.Context, adAccountID, accessToken string, q meta.DateQuery) ([]meta.RawInsightsRecord, error)
	FetchDemographics(ctx context.Context, campaignID, accessToken string, q meta.DateQuery) ([]meta.RawDemographic, error)
}

// SyncStore defines the persistence operations required by SyncProcessor.
type SyncStore interface {
	GetClient(ctx context.Context, id string) (store.Client, error)
	UpsertClient(ctx context.Context, client store.Client) error
}

// SyncProcessor runs the ad-data synchronization pipeline: translate the date
// selection, fetch the raw hierarchy and daily history, normalize and
// assemble, then persist the fully replaced client value.
//
// Concurrent syncs for the same client are not serialized here; two racing
// calls both proceed against the remote API and the later persistence write
// wins. Acceptable for a low-frequency human-triggered operation.
type SyncProcessor struct {
	graph  GraphClient
	store  SyncStore
	logger *observability.Logger
}

func New(graph GraphClient, syncStore SyncStore, logger *observability.Logger) SyncProcessor {
	return SyncProcessor{
		graph:  graph,
		store:  syncStore,
		logger: logger,
	}
}

// SyncClient synchronizes one client's campaigns and daily stats from the ads
// platform and persists the result. Campaigns, dailyStats and lastSync are
// fully replaced, never incrementally patched.
func (p SyncProcessor) SyncClient(ctx context.Context, clientID string, sel DateRangeSelector) (store.Client, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "client_id", Value: clientID})

	client, err := p.store.GetClient(ctx, clientID)
	if err != nil {
		p.logger.Error(ctx, "failed to load client for sync", err)
		return store.Client{}, err
	}
	if !client.Connected() {
		return store.Client{}, ErrMissingCredentials
	}

	q := TranslateDatePreset(sel)

	rawCampaigns, err := p.graph.FetchCampaignTree(ctx, client.AdAccountID, client.AccessToken, q)
	if err != nil {
		p.logger.Error(ctx, "campaign tree fetch failed", err)
		return store.Client{}, err
	}

	rawDaily, err := p.graph.FetchDailyHistory(ctx, client.AdAccountID, client.AccessToken, q)
	if err != nil {
		p.logger.Error(ctx, "daily history fetch failed", err)
		return store.Client{}, err
	}

	campaigns := assembleCampaigns(rawCampaigns)
	p.attachDemographics(ctx, campaigns, client.AccessToken, q)

	client.Campaigns = campaigns
	client.DailyStats = buildDailyStats(rawDaily)
	client.LastSync = time.Now().UTC().Format(time.RFC3339)

	if err := p.store.UpsertClient(ctx, client); err != nil {
		return store.Client{}, err
	}
	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "campaigns", Value: len(client.Campaigns)},
		observability.Field{Key: "daily_stats", Value: len(client.DailyStats)},
	), "client sync complete")
	return client, nil
}

// attachDemographics fetches the age/gender breakdown per campaign. A
// provider-reported error leaves that campaign without demographics; transport
// errors are surfaced only as warnings so an optional breakdown cannot fail an
// otherwise complete sync.
func (p SyncProcessor) attachDemographics(ctx context.Context, campaigns []store.Campaign, accessToken string, q meta.DateQuery) {
	for i := range campaigns {
		rows, err := p.graph.FetchDemographics(ctx, campaigns[i].ID, accessToken, q)
		if err != nil {
			p.logger.Warn(observability.WithFields(ctx,
				observability.Field{Key: "campaign_id", Value: campaigns[i].ID},
				observability.Field{Key: "error", Value: err.Error()},
			), "demographics fetch failed, continuing without breakdown")
			continue
		}
		campaigns[i].Metrics.Demographics = normalizeDemographics(rows, campaigns[i].Objective)
	}
}

// buildDailyStats converts day-granularity account insights into the chart
// series, one entry per calendar day sorted ascending. Revenue is the
// purchase action value of the day.
func buildDailyStats(records []meta.RawInsightsRecord) []store.DailyStat {
	if len(records) == 0 {
		return nil
	}
	stats := make([]store.DailyStat, 0, len(records))
	for _, rec := range records {
		stats = append(stats, store.DailyStat{
			Date:    rec.DateStart,
			Spend:   parseFloat(rec.Spend),
			Revenue: actionValue(rec.ActionValues, purchaseAction),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats
}
