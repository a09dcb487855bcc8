package processor

import (
	"context"
	"errors"
	"fmt"

	"ads-manager-server/internal/observability"
	"ads-manager-server/internal/store"
)

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrCampaignNotFound = errors.New("campaign not found")
)

// InsightsStore defines the persistence operations required by InsightsProcessor.
type InsightsStore interface {
	GetClient(ctx context.Context, id string) (store.Client, error)
}

// TextGenerator produces a completion for a single text prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// InsightsProcessor turns a stored campaign's performance into tactical
// optimization suggestions via the AI model.
type InsightsProcessor struct {
	store  InsightsStore
	ai     TextGenerator
	logger *observability.Logger
}

func New(insightsStore InsightsStore, ai TextGenerator, logger *observability.Logger) InsightsProcessor {
	return InsightsProcessor{
		store:  insightsStore,
		ai:     ai,
		logger: logger,
	}
}

// AnalyzeCampaign builds the analysis prompt from the campaign's stored
// metrics and asks the model for suggestions.
func (p InsightsProcessor) AnalyzeCampaign(ctx context.Context, clientID, campaignID string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "client_id", Value: clientID},
		observability.Field{Key: "campaign_id", Value: campaignID},
	)

	client, err := p.store.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrClientNotFound) {
			return "", ErrClientNotFound
		}
		return "", err
	}

	for _, campaign := range client.Campaigns {
		if campaign.ID == campaignID {
			analysis, err := p.ai.GenerateText(ctx, buildPrompt(campaign))
			if err != nil {
				p.logger.Error(ctx, "campaign analysis failed", err)
				return "", err
			}
			return analysis, nil
		}
	}
	return "", ErrCampaignNotFound
}

// buildPrompt renders the media-buyer prompt with derived ROAS, CTR, CPC and
// CPA, each guarded against division by zero.
func buildPrompt(campaign store.Campaign) string {
	m := campaign.Metrics
	roas := safeDiv(m.ConversionValue, m.Spend)
	ctr := safeDiv(float64(m.Clicks), float64(m.Impressions)) * 100
	cpc := safeDiv(m.Spend, float64(m.Clicks))
	cpa := safeDiv(m.Spend, m.Conversions)

	return fmt.Sprintf(`Act as a senior paid-traffic specialist (media buyer).
Analyze the following campaign data and give 3 short, direct tactical suggestions for optimization.
Use Markdown formatting.

Campaign data:
- Name: %s
- Objective: %s
- Audience: %s
- Creative headline: %q
- Spend: %.2f
- Impressions: %d
- Clicks: %d
- Conversions: %.0f
- ROAS (return): %.2fx
- CTR: %.2f%%
- CPC: %.2f
- CPA (cost per action): %.2f

Focus on: creative, audience and bidding. Be critical if the numbers are poor.`,
		campaign.Name, campaign.Objective, campaign.Audience, campaign.Creative.Headline,
		m.Spend, m.Impressions, m.Clicks, m.Conversions, roas, ctr, cpc, cpa)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
