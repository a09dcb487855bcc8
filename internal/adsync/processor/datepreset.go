package processor

import "ads-manager-server/internal/clients/meta"

// PresetCustom marks a selector carrying an explicit since/until range instead
// of a named preset.
const PresetCustom = "custom"

// DateRangeSelector is the UI-level date range selection for one sync call.
// Since/Until are inclusive ISO 8601 dates and only meaningful when Preset is
// "custom".
type DateRangeSelector struct {
	Preset string `json:"preset"`
	Since  string `json:"since,omitempty"`
	Until  string `json:"until,omitempty"`
}

// presetMapping maps each UI preset to the Graph API's own preset vocabulary.
// today_and_yesterday maps to last_3d because the provider has no exact 2-day
// preset; the rolling 3-day window is a deliberate approximation.
var presetMapping = map[string]string{
	"maximum":             "maximum",
	"today":               "today",
	"yesterday":           "yesterday",
	"today_and_yesterday": "last_3d",
	"last_7d":             "last_7d",
	"last_14d":            "last_14d",
	"last_28d":            "last_28d",
	"last_30d":            "last_30d",
	"this_week":           "this_week_mon_today",
	"last_week":           "last_week_mon_sun",
	"this_month":          "this_month",
	"last_month":          "last_month",
}

// TranslateDatePreset resolves a UI selection into the provider's date query.
// Unknown presets fall back to this_month rather than failing. A custom
// selector passes its range through unvalidated; ordering is checked at the
// UI boundary.
func TranslateDatePreset(sel DateRangeSelector) meta.DateQuery {
	if sel.Preset == PresetCustom {
		return meta.RangeQuery(sel.Since, sel.Until)
	}
	if mapped, ok := presetMapping[sel.Preset]; ok {
		return meta.PresetQuery(mapped)
	}
	return meta.PresetQuery("this_month")
}
