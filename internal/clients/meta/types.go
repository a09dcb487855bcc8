package meta

import "encoding/json"

// AccountInfo is the minimal account read used to confirm credentials before
// they are persisted.
type AccountInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// RawAction is one entry of the Graph API actions / action_values lists.
// Depending on the list, the amount is carried in value or count.
type RawAction struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
	Count      string `json:"count"`
}

// RawInsightsRecord is the loosely typed insights payload for one entity over
// one date window. All numerics arrive as strings; everything is optional.
type RawInsightsRecord struct {
	Spend        string      `json:"spend"`
	Impressions  string      `json:"impressions"`
	Reach        string      `json:"reach"`
	Frequency    string      `json:"frequency"`
	CPM          string      `json:"cpm"`
	Clicks       string      `json:"clicks"`
	Actions      []RawAction `json:"actions"`
	ActionValues []RawAction `json:"action_values"`
	VideoAvgTime []RawAction `json:"video_avg_time_watched_actions"`
	DateStart    string      `json:"date_start"`
}

// RawInsights is the provider's single-element collection wrapper around an
// insights record.
type RawInsights struct {
	Data []RawInsightsRecord `json:"data"`
}

// RawCreative is the creative sub-resource of an ad.
type RawCreative struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// RawAd is one ad of the nested campaign expansion.
type RawAd struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Status   string       `json:"status"`
	Creative *RawCreative `json:"creative"`
	Insights *RawInsights `json:"insights"`
}

type RawAdList struct {
	Data []RawAd `json:"data"`
}

// RawAdSet is one ad set of the nested campaign expansion. Targeting is kept
// as raw JSON; its shape is provider-version-dependent.
type RawAdSet struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Status         string          `json:"status"`
	DailyBudget    string          `json:"daily_budget"`
	LifetimeBudget string          `json:"lifetime_budget"`
	Targeting      json.RawMessage `json:"targeting"`
	Insights       *RawInsights    `json:"insights"`
	Ads            *RawAdList      `json:"ads"`
}

type RawAdSetList struct {
	Data []RawAdSet `json:"data"`
}

// RawCampaign is the root node of the hierarchy fetch.
type RawCampaign struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Status         string        `json:"status"`
	Objective      string        `json:"objective"`
	DailyBudget    string        `json:"daily_budget"`
	LifetimeBudget string        `json:"lifetime_budget"`
	StartTime      string        `json:"start_time"`
	StopTime       string        `json:"stop_time"`
	Insights       *RawInsights  `json:"insights"`
	AdSets         *RawAdSetList `json:"adsets"`
}

// RawDemographic is one age/gender breakdown row of a campaign insights call.
type RawDemographic struct {
	Age     string      `json:"age"`
	Gender  string      `json:"gender"`
	Spend   string      `json:"spend"`
	Actions []RawAction `json:"actions"`
}
