package meta

import (
	"fmt"
	"net/url"
)

// DateQuery is the provider's date vocabulary for a single sync: either a
// named preset token or an explicit inclusive since/until range, never both.
type DateQuery struct {
	Preset string
	Since  string
	Until  string
}

// PresetQuery builds a preset-token date query.
func PresetQuery(preset string) DateQuery {
	return DateQuery{Preset: preset}
}

// RangeQuery builds an explicit since/until date query. Chronological ordering
// is the caller's responsibility at the UI boundary.
func RangeQuery(since, until string) DateQuery {
	return DateQuery{Since: since, Until: until}
}

// IsRange reports whether the query is an explicit range rather than a preset.
func (q DateQuery) IsRange() bool {
	return q.Preset == ""
}

func (q DateQuery) timeRangeJSON() string {
	return fmt.Sprintf(`{"since":"%s","until":"%s"}`, q.Since, q.Until)
}

// insightsModifier renders the query as a nested-field modifier, e.g.
// ".date_preset(last_7d)" or ".time_range({...})".
func (q DateQuery) insightsModifier() string {
	if q.IsRange() {
		return fmt.Sprintf(".time_range(%s)", q.timeRangeJSON())
	}
	return fmt.Sprintf(".date_preset(%s)", q.Preset)
}

// apply sets the top-level date query parameter.
func (q DateQuery) apply(values url.Values) {
	if q.IsRange() {
		values.Set("time_range", q.timeRangeJSON())
		return
	}
	values.Set("date_preset", q.Preset)
}
