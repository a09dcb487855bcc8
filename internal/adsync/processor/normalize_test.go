package processor

import (
	"math"
	"testing"

	"ads-manager-server/internal/clients/meta"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeInsights_EmptyInputYieldsZeroMetrics(t *testing.T) {
	for _, insights := range []*meta.RawInsights{nil, {}, {Data: []meta.RawInsightsRecord{}}} {
		m := normalizeInsights(insights, "OUTCOME_SALES")
		assert.Zero(t, m.Spend)
		assert.Zero(t, m.Impressions)
		assert.Zero(t, m.Clicks)
		assert.Zero(t, m.Conversions)
		assert.Zero(t, m.ConversionValue)
		assert.Nil(t, m.Reach)
		assert.Nil(t, m.Frequency)
		assert.Nil(t, m.CPM)
		assert.Nil(t, m.Messages)
		assert.Nil(t, m.CostPerMessage)
		assert.Nil(t, m.Video)
	}
}

func TestNormalizeInsights_NeverProducesNaN(t *testing.T) {
	m := normalizeInsights(&meta.RawInsights{Data: []meta.RawInsightsRecord{{
		Spend:       "not-a-number",
		Impressions: "",
		Clicks:      "NaN",
		Frequency:   "Infinity",
		Actions:     []meta.RawAction{{ActionType: "purchase", Value: "garbage"}},
	}}}, "OUTCOME_SALES")

	assert.False(t, math.IsNaN(m.Spend))
	assert.Zero(t, m.Spend)
	assert.Zero(t, m.Clicks)
	assert.Zero(t, m.Conversions)
	if m.Frequency != nil {
		assert.False(t, math.IsNaN(*m.Frequency))
		assert.False(t, math.IsInf(*m.Frequency, 0))
	}
}

func TestNormalizeInsights_PurchaseObjectiveEndToEnd(t *testing.T) {
	m := normalizeInsights(&meta.RawInsights{Data: []meta.RawInsightsRecord{{
		Spend:        "100.50",
		Actions:      []meta.RawAction{{ActionType: "purchase", Value: "5"}},
		ActionValues: []meta.RawAction{{ActionType: "purchase", Value: "250.75"}},
	}}}, "OUTCOME_SALES")

	assert.Equal(t, 100.50, m.Spend)
	assert.Equal(t, 5.0, m.Conversions)
	assert.Equal(t, 250.75, m.ConversionValue)
}

func TestNormalizeInsights_MessagesObjective(t *testing.T) {
	m := normalizeInsights(&meta.RawInsights{Data: []meta.RawInsightsRecord{{
		Spend: "30",
		Actions: []meta.RawAction{
			{ActionType: "onsite_conversion.messaging_first_reply", Value: "10"},
			{ActionType: "purchase", Value: "2"},
		},
		ActionValues: []meta.RawAction{
			{ActionType: "onsite_conversion.messaging_first_reply", Value: "120"},
		},
	}}}, "OUTCOME_MESSAGES")

	// The messaging action feeds both conversions and messages.
	assert.Equal(t, 10.0, m.Conversions)
	assert.Equal(t, 120.0, m.ConversionValue)
	require.NotNil(t, m.Messages)
	assert.Equal(t, 10.0, *m.Messages)
	require.NotNil(t, m.CostPerMessage)
	assert.Equal(t, 3.0, *m.CostPerMessage)
}

func TestNormalizeInsights_CostPerMessageUnsetAtZeroMessages(t *testing.T) {
	m := normalizeInsights(&meta.RawInsights{Data: []meta.RawInsightsRecord{{
		Spend:   "30",
		Actions: []meta.RawAction{{ActionType: "purchase", Value: "2"}},
	}}}, "OUTCOME_MESSAGES")

	assert.Nil(t, m.Messages)
	assert.Nil(t, m.CostPerMessage)
}

func TestNormalizeInsights_MessagesReportedForOtherObjectives(t *testing.T) {
	m := normalizeInsights(&meta.RawInsights{Data: []meta.RawInsightsRecord{{
		Spend: "50",
		Actions: []meta.RawAction{
			{ActionType: "purchase", Value: "1"},
			{ActionType: "onsite_conversion.messaging_first_reply", Value: "4"},
		},
	}}}, "OUTCOME_SALES")

	assert.Equal(t, 1.0, m.Conversions)
	require.NotNil(t, m.Messages)
	assert.Equal(t, 4.0, *m.Messages)
	require.NotNil(t, m.CostPerMessage)
	assert.Equal(t, 12.5, *m.CostPerMessage)
}

func TestPrimaryActionType_SubstringRules(t *testing.T) {
	// Substring matching keeps compound objective names on their rule instead
	// of falling through to the purchase default.
	cases := map[string]string{
		"MESSAGES":           "onsite_conversion.messaging_first_reply",
		"OUTCOME_MESSAGES":   "onsite_conversion.messaging_first_reply",
		"LEAD_GENERATION":    "lead",
		"OUTCOME_LEADS":      "lead",
		"OUTCOME_TRAFFIC":    "link_click",
		"OUTCOME_SALES":      "purchase",
		"CONVERSIONS":        "purchase",
		"":                   "purchase",
		"SOMETHING_UNKNOWN":  "purchase",
	}
	for objective, want := range cases {
		assert.Equal(t, want, primaryActionType(objective), "objective %q", objective)
	}
}

func TestActionValue_PrefersValueOverCount(t *testing.T) {
	actions := []meta.RawAction{
		{ActionType: "lead", Value: "7", Count: "99"},
		{ActionType: "purchase", Count: "3"},
	}
	assert.Equal(t, 7.0, actionValue(actions, "lead"))
	assert.Equal(t, 3.0, actionValue(actions, "purchase"))
	assert.Zero(t, actionValue(actions, "link_click"))
	assert.Zero(t, actionValue(nil, "purchase"))
}

func TestNormalizeInsights_OptionalFieldsOnlyWhenProvided(t *testing.T) {
	m := normalizeInsights(&meta.RawInsights{Data: []meta.RawInsightsRecord{{
		Spend:     "10",
		Reach:     "500",
		Frequency: "1.4",
	}}}, "OUTCOME_SALES")

	require.NotNil(t, m.Reach)
	assert.Equal(t, int64(500), *m.Reach)
	require.NotNil(t, m.Frequency)
	assert.Equal(t, 1.4, *m.Frequency)
	assert.Nil(t, m.CPM)
}

func TestNormalizeInsights_VideoMetrics(t *testing.T) {
	m := normalizeInsights(&meta.RawInsights{Data: []meta.RawInsightsRecord{{
		Spend: "10",
		Actions: []meta.RawAction{
			{ActionType: "video_play", Value: "200"},
			{ActionType: "video_p25_watched_actions", Value: "150"},
			{ActionType: "video_p100_watched_actions", Value: "40"},
		},
		VideoAvgTime: []meta.RawAction{{Value: "8.5"}},
	}}}, "OUTCOME_SALES")

	require.NotNil(t, m.Video)
	assert.Equal(t, 200.0, m.Video.Plays)
	assert.Equal(t, 8.5, m.Video.AvgTime)
	assert.Equal(t, 150.0, m.Video.Retention25)
	assert.Equal(t, 40.0, m.Video.Retention100)
}

func TestNormalizeDemographics(t *testing.T) {
	rows := []meta.RawDemographic{
		{Age: "25-34", Gender: "female", Spend: "12.5", Actions: []meta.RawAction{{ActionType: "purchase", Value: "3"}}},
		{Age: "35-44", Gender: "male", Spend: "bad", Actions: nil},
	}
	out := normalizeDemographics(rows, "OUTCOME_SALES")
	require.Len(t, out, 2)
	assert.Equal(t, 12.5, out[0].Spend)
	assert.Equal(t, 3.0, out[0].Results)
	assert.Zero(t, out[1].Spend)
	assert.Zero(t, out[1].Results)

	assert.Nil(t, normalizeDemographics(nil, "OUTCOME_SALES"))
}
