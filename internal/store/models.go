package store

// EntityStatus is the delivery status of a campaign, ad set or ad.
type EntityStatus string

const (
	StatusActive EntityStatus = "active"
	StatusPaused EntityStatus = "paused"
	// StatusEnded is part of the model but is never produced by the Meta sync
	// path, which only distinguishes active from paused. It is reachable when
	// clients are created from other data sources.
	StatusEnded EntityStatus = "ended"
)

// BudgetType distinguishes daily from lifetime budgets.
type BudgetType string

const (
	BudgetDaily    BudgetType = "DAILY"
	BudgetLifetime BudgetType = "LIFETIME"
)

// Metrics is the normalized measurement unit attached to every node of the
// campaign hierarchy. Spend, impressions, clicks, conversions and
// conversionValue are always present (zero when the provider reported
// nothing); the remaining fields are set only when the source supplied them.
type Metrics struct {
	Spend           float64        `json:"spend"`
	Impressions     int64          `json:"impressions"`
	Clicks          int64          `json:"clicks"`
	Conversions     float64        `json:"conversions"`
	ConversionValue float64        `json:"conversionValue"`
	Reach           *int64         `json:"reach,omitempty"`
	Frequency       *float64       `json:"frequency,omitempty"`
	CPM             *float64       `json:"cpm,omitempty"`
	Messages        *float64       `json:"messages,omitempty"`
	CostPerMessage  *float64       `json:"costPerMessage,omitempty"`
	Demographics    []Demographic  `json:"demographics,omitempty"`
	Video           *VideoMetrics  `json:"video,omitempty"`
}

// Demographic is one age/gender breakdown row of a campaign's insights.
type Demographic struct {
	Age     string  `json:"age"`
	Gender  string  `json:"gender"`
	Spend   float64 `json:"spend"`
	Results float64 `json:"results"`
}

// VideoMetrics carries video playback measurements when the creative is a video.
type VideoMetrics struct {
	Plays        float64 `json:"plays"`
	AvgTime      float64 `json:"avgTime"`
	Retention25  float64 `json:"retention25"`
	Retention50  float64 `json:"retention50"`
	Retention75  float64 `json:"retention75"`
	Retention100 float64 `json:"retention100"`
}

// Creative is the asset attached to an ad. URL may be a placeholder when the
// provider supplies none.
type Creative struct {
	ID       string `json:"id"`
	Type     string `json:"type"` // image | video
	URL      string `json:"url"`
	Headline string `json:"headline"`
}

// Ad is the leaf node of the campaign hierarchy.
type Ad struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Status   EntityStatus `json:"status"`
	Creative Creative     `json:"creative"`
	Metrics  Metrics      `json:"metrics"`
}

// AdSet groups ads under a campaign. Budget is in major currency units; nil
// means the provider set neither a daily nor a lifetime budget, which is
// distinct from an explicit zero budget.
type AdSet struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Status     EntityStatus `json:"status"`
	Budget     *float64     `json:"budget,omitempty"`
	BudgetType *BudgetType  `json:"budgetType,omitempty"`
	Audience   string       `json:"audience"` // JSON-encoded targeting spec
	Metrics    Metrics      `json:"metrics"`
	Ads        []Ad         `json:"ads"`
}

// Campaign is the top of the ad hierarchy. Creative and Audience are derived:
// first ad of first ad set, respectively first ad set name, with placeholders
// when the hierarchy is empty.
type Campaign struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Status     EntityStatus `json:"status"`
	Platform   string       `json:"platform"` // facebook | google | tiktok
	Objective  string       `json:"objective"`
	Metrics    Metrics      `json:"metrics"`
	Budget     *float64     `json:"budget,omitempty"`
	BudgetType *BudgetType  `json:"budgetType,omitempty"`
	StartTime  string       `json:"startTime,omitempty"`
	EndTime    string       `json:"endTime,omitempty"`
	AdSets     []AdSet      `json:"adSets"`
	Creative   Creative     `json:"creative"`
	Audience   string       `json:"audience"`
}

// DailyStat is one calendar day of account-level spend and revenue, used for
// time-series charting.
type DailyStat struct {
	Date    string  `json:"date"`
	Spend   float64 `json:"spend"`
	Revenue float64 `json:"revenue"`
}

// Client is the aggregate root persisted per managed advertiser. Campaigns,
// DailyStats and LastSync are fully replaced on every successful sync.
type Client struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Avatar      string      `json:"avatar"`
	Industry    string      `json:"industry"`
	AdAccountID string      `json:"adAccountId,omitempty"`
	AccessToken string      `json:"accessToken,omitempty"`
	LastSync    string      `json:"lastSync,omitempty"`
	Campaigns   []Campaign  `json:"campaigns"`
	DailyStats  []DailyStat `json:"dailyStats,omitempty"`
}

// Connected reports whether the client has both credentials required for sync.
func (c Client) Connected() bool {
	return c.AdAccountID != "" && c.AccessToken != ""
}

// Operator is a dashboard user allowed to log in.
type Operator struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	HashedPassword string `json:"hashedPassword"`
}
