package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"ads-manager-server/internal/observability"
)

// insightsFields is the reporting field list requested at every level of the
// hierarchy.
const insightsFields = "spend,impressions,reach,frequency,cpm,clicks,actions,action_values,video_avg_time_watched_actions"

// Client talks to the Meta Graph API. It performs no retries and imposes no
// deadline of its own; cancellation and timeouts are the caller's concern via
// the request context.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
	logger     *observability.Logger
}

// NewClient creates a Graph API client, e.g. NewClient("https://graph.facebook.com", "v19.0", logger).
func NewClient(baseURL, apiVersion string, logger *observability.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiVersion: apiVersion,
		logger:     logger,
	}
}

// NormalizeAccountID ensures the act_ prefix is present exactly once.
func NormalizeAccountID(adAccountID string) string {
	return "act_" + strings.TrimPrefix(strings.TrimSpace(adAccountID), "act_")
}

// ValidateConnection performs a minimal account read used to confirm
// credentials before persisting them.
func (c *Client) ValidateConnection(ctx context.Context, adAccountID, accessToken string) (AccountInfo, error) {
	values := url.Values{}
	values.Set("fields", "name,currency")
	values.Set("access_token", accessToken)

	var info AccountInfo
	if err := c.getJSON(ctx, NormalizeAccountID(adAccountID), values, &info); err != nil {
		return AccountInfo{}, err
	}
	return info, nil
}

// FetchCampaignTree issues the single hierarchical reporting call: campaigns
// with nested ad-set and ad expansions, each carrying its own insights
// sub-query scoped to the same date window. Request count is O(1) per sync
// regardless of hierarchy depth.
func (c *Client) FetchCampaignTree(ctx context.Context, adAccountID, accessToken string, q DateQuery) ([]RawCampaign, error) {
	ins := q.insightsModifier()
	fields := fmt.Sprintf(
		"id,name,status,objective,daily_budget,lifetime_budget,start_time,stop_time,"+
			"insights%[1]s{%[2]s},"+
			"adsets{id,name,status,daily_budget,lifetime_budget,targeting,"+
			"insights%[1]s{%[2]s},"+
			"ads{id,name,status,creative{id,title,image_url,thumbnail_url},insights%[1]s{%[2]s}}}",
		ins, insightsFields)

	values := url.Values{}
	values.Set("fields", fields)
	q.apply(values)
	values.Set("access_token", accessToken)

	var payload struct {
		Data []RawCampaign `json:"data"`
	}
	path := NormalizeAccountID(adAccountID) + "/campaigns"
	if err := c.getJSON(ctx, path, values, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// FetchDailyHistory returns account-level day-granularity insights, one record
// per calendar day in the window.
func (c *Client) FetchDailyHistory(ctx context.Context, adAccountID, accessToken string, q DateQuery) ([]RawInsightsRecord, error) {
	values := url.Values{}
	values.Set("fields", "spend,action_values,date_start")
	values.Set("time_increment", "1")
	q.apply(values)
	values.Set("access_token", accessToken)

	var payload struct {
		Data []RawInsightsRecord `json:"data"`
	}
	path := NormalizeAccountID(adAccountID) + "/insights"
	if err := c.getJSON(ctx, path, values, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// FetchDemographics returns the age/gender breakdown of one campaign's
// insights over the same date window.
func (c *Client) FetchDemographics(ctx context.Context, campaignID, accessToken string, q DateQuery) ([]RawDemographic, error) {
	values := url.Values{}
	values.Set("breakdowns", "age,gender")
	values.Set("fields", "spend,actions")
	q.apply(values)
	values.Set("access_token", accessToken)

	var payload struct {
		Data []RawDemographic `json:"data"`
	}
	if err := c.getJSON(ctx, campaignID+"/insights", values, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// graphError is the embedded error object of a Graph API response body.
type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

// getJSON performs a GET against the versioned Graph API and decodes the body
// into out. Provider-reported errors become *ProviderError; everything that
// keeps the body from being read and decoded becomes *TransportError.
func (c *Client) getJSON(ctx context.Context, path string, values url.Values, out interface{}) error {
	u := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.apiVersion, path, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &TransportError{Message: "failed to build graph request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Message: "graph request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Message: "failed to read graph response", Err: err}
	}

	var envelope struct {
		Error *graphError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &TransportError{Message: "graph response is not valid JSON", Err: err}
	}
	if envelope.Error != nil {
		c.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "graph_path", Value: path},
			observability.Field{Key: "graph_error_code", Value: envelope.Error.Code},
		), "graph API reported an error")
		return &ProviderError{
			Message: envelope.Error.Message,
			Type:    envelope.Error.Type,
			Code:    envelope.Error.Code,
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Message: "failed to decode graph response", Err: err}
	}
	return nil
}
