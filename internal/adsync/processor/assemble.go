package processor

import (
	"bytes"
	"encoding/json"

	"ads-manager-server/internal/clients/meta"
	"ads-manager-server/internal/store"
)

const (
	placeholderCreativeURL = "https://via.placeholder.com/150"
	placeholderAudience    = "General Audience"
)

// statusFromProvider maps the provider's status token. Only ACTIVE maps to
// active; everything else, including unknown tokens, is treated as paused.
// The model's ended status is never produced here.
func statusFromProvider(s string) store.EntityStatus {
	if s == "ACTIVE" {
		return store.StatusActive
	}
	return store.StatusPaused
}

// normalizeBudget converts the provider's minor-unit budget strings to a
// major-unit amount. When neither budget is set the result is nil, not zero;
// zero is a valid budget and must not be conflated with unset.
func normalizeBudget(dailyBudget, lifetimeBudget string) (*float64, *store.BudgetType) {
	raw := dailyBudget
	budgetType := store.BudgetDaily
	if raw == "" {
		raw = lifetimeBudget
		budgetType = store.BudgetLifetime
	}
	if raw == "" {
		return nil, nil
	}
	amount := parseFloat(raw) / 100
	return &amount, &budgetType
}

// audienceFromTargeting re-encodes the targeting spec as a compact JSON
// string. Targeting shape is provider-version-dependent; a spec that fails to
// parse degrades to its raw text instead of failing the sync.
func audienceFromTargeting(targeting json.RawMessage) string {
	if len(targeting) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, targeting); err != nil {
		return string(targeting)
	}
	return buf.String()
}

func assembleAd(raw meta.RawAd, objective string) store.Ad {
	creative := store.Creative{
		ID:       "0",
		Type:     "image",
		URL:      placeholderCreativeURL,
		Headline: raw.Name,
	}
	if raw.Creative != nil {
		creative.ID = raw.Creative.ID
		if raw.Creative.ImageURL != "" {
			creative.URL = raw.Creative.ImageURL
		} else if raw.Creative.ThumbnailURL != "" {
			creative.URL = raw.Creative.ThumbnailURL
		}
		if raw.Creative.Title != "" {
			creative.Headline = raw.Creative.Title
		}
	}
	return store.Ad{
		ID:       raw.ID,
		Name:     raw.Name,
		Status:   statusFromProvider(raw.Status),
		Creative: creative,
		Metrics:  normalizeInsights(raw.Insights, objective),
	}
}

func assembleAdSet(raw meta.RawAdSet, objective string) store.AdSet {
	budget, budgetType := normalizeBudget(raw.DailyBudget, raw.LifetimeBudget)

	var ads []store.Ad
	if raw.Ads != nil {
		ads = make([]store.Ad, 0, len(raw.Ads.Data))
		for _, rawAd := range raw.Ads.Data {
			ads = append(ads, assembleAd(rawAd, objective))
		}
	}

	return store.AdSet{
		ID:         raw.ID,
		Name:       raw.Name,
		Status:     statusFromProvider(raw.Status),
		Budget:     budget,
		BudgetType: budgetType,
		Audience:   audienceFromTargeting(raw.Targeting),
		Metrics:    normalizeInsights(raw.Insights, objective),
		Ads:        ads,
	}
}

// assembleCampaign walks one raw campaign node. The campaign's objective is
// threaded down to every ad set and ad: outcome semantics are campaign-defined.
// Campaign metrics come from the campaign's own insights call, never from
// re-aggregating children.
func assembleCampaign(raw meta.RawCampaign) store.Campaign {
	var adSets []store.AdSet
	if raw.AdSets != nil {
		adSets = make([]store.AdSet, 0, len(raw.AdSets.Data))
		for _, rawAdSet := range raw.AdSets.Data {
			adSets = append(adSets, assembleAdSet(rawAdSet, raw.Objective))
		}
	}

	// A campaign can have zero ad sets, e.g. newly created or fully filtered
	// out by the date window; creative and audience fall back to placeholders.
	creative := store.Creative{ID: "0", Type: "image", URL: "", Headline: raw.Name}
	audience := placeholderAudience
	if len(adSets) > 0 {
		audience = adSets[0].Name
		if len(adSets[0].Ads) > 0 {
			creative = adSets[0].Ads[0].Creative
		}
	}

	budget, budgetType := normalizeBudget(raw.DailyBudget, raw.LifetimeBudget)

	return store.Campaign{
		ID:         raw.ID,
		Name:       raw.Name,
		Status:     statusFromProvider(raw.Status),
		Platform:   "facebook",
		Objective:  raw.Objective,
		Metrics:    normalizeInsights(raw.Insights, raw.Objective),
		Budget:     budget,
		BudgetType: budgetType,
		StartTime:  raw.StartTime,
		EndTime:    raw.StopTime,
		AdSets:     adSets,
		Creative:   creative,
		Audience:   audience,
	}
}

func assembleCampaigns(raw []meta.RawCampaign) []store.Campaign {
	campaigns := make([]store.Campaign, 0, len(raw))
	for _, rawCampaign := range raw {
		campaigns = append(campaigns, assembleCampaign(rawCampaign))
	}
	return campaigns
}
