package processor

import (
	"math"
	"strconv"
	"strings"

	"ads-manager-server/internal/clients/meta"
	"ads-manager-server/internal/store"
)

const (
	messagingAction = "onsite_conversion.messaging_first_reply"
	leadAction      = "lead"
	linkClickAction = "link_click"
	purchaseAction  = "purchase"
	videoPlayAction = "video_play"
)

// actionRule selects the primary outcome action for an objective. Rules are
// evaluated in order against the free-form objective text; substring matching
// is intentional, compound objective names like OUTCOME_LEADS must still hit
// their rule instead of falling through to the purchase default.
type actionRule struct {
	substring  string
	actionType string
}

var actionRules = []actionRule{
	{"MESSAGES", messagingAction},
	{"LEAD", leadAction},
	{"OUTCOME_TRAFFIC", linkClickAction},
}

func primaryActionType(objective string) string {
	for _, rule := range actionRules {
		if strings.Contains(objective, rule.substring) {
			return rule.actionType
		}
	}
	return purchaseAction
}

// actionValue extracts the amount of the first list entry matching actionType,
// preferring value over count. Missing lists, missing entries and malformed
// numbers all yield 0.
func actionValue(actions []meta.RawAction, actionType string) float64 {
	for _, a := range actions {
		if a.ActionType != actionType {
			continue
		}
		if a.Value != "" {
			return parseFloat(a.Value)
		}
		return parseFloat(a.Count)
	}
	return 0
}

// parseFloat converts a provider numeric string defensively; anything that is
// not a finite number becomes 0 so NaN never reaches the normalized model.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseInt(s string) int64 {
	return int64(parseFloat(s))
}

// normalizeInsights converts one raw insights payload into the internal
// Metrics value. The provider wraps the record in a single-element data list;
// a nil or empty payload yields all-zero Metrics with no optional fields set.
//
// Conversions and conversionValue are always read from the same
// objective-selected action type, so a per-conversion value stays internally
// consistent.
func normalizeInsights(insights *meta.RawInsights, objective string) store.Metrics {
	if insights == nil || len(insights.Data) == 0 {
		return store.Metrics{}
	}
	rec := insights.Data[0]

	primary := primaryActionType(objective)
	m := store.Metrics{
		Spend:           parseFloat(rec.Spend),
		Impressions:     parseInt(rec.Impressions),
		Clicks:          parseInt(rec.Clicks),
		Conversions:     actionValue(rec.Actions, primary),
		ConversionValue: actionValue(rec.ActionValues, primary),
	}

	if rec.Reach != "" {
		reach := parseInt(rec.Reach)
		m.Reach = &reach
	}
	if rec.Frequency != "" {
		freq := parseFloat(rec.Frequency)
		m.Frequency = &freq
	}
	if rec.CPM != "" {
		cpm := parseFloat(rec.CPM)
		m.CPM = &cpm
	}

	// Messaging is reported alongside the primary outcome whenever a message
	// action was observed. costPerMessage stays unset at zero messages.
	if messages := actionValue(rec.Actions, messagingAction); messages > 0 {
		costPerMessage := m.Spend / messages
		m.Messages = &messages
		m.CostPerMessage = &costPerMessage
	}

	if plays := actionValue(rec.Actions, videoPlayAction); plays > 0 {
		video := store.VideoMetrics{
			Plays:        plays,
			Retention25:  actionValue(rec.Actions, "video_p25_watched_actions"),
			Retention50:  actionValue(rec.Actions, "video_p50_watched_actions"),
			Retention75:  actionValue(rec.Actions, "video_p75_watched_actions"),
			Retention100: actionValue(rec.Actions, "video_p100_watched_actions"),
		}
		if len(rec.VideoAvgTime) > 0 {
			video.AvgTime = parseFloat(rec.VideoAvgTime[0].Value)
		}
		m.Video = &video
	}

	return m
}

// normalizeDemographics converts breakdown rows, resolving results through the
// same primary-action heuristic as the campaign's other metrics.
func normalizeDemographics(rows []meta.RawDemographic, objective string) []store.Demographic {
	if len(rows) == 0 {
		return nil
	}
	primary := primaryActionType(objective)
	out := make([]store.Demographic, 0, len(rows))
	for _, row := range rows {
		out = append(out, store.Demographic{
			Age:     row.Age,
			Gender:  row.Gender,
			Spend:   parseFloat(row.Spend),
			Results: actionValue(row.Actions, primary),
		})
	}
	return out
}
