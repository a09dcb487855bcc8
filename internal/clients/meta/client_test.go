package meta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"ads-manager-server/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAccountID(t *testing.T) {
	assert.Equal(t, "act_123", NormalizeAccountID("123"))
	assert.Equal(t, "act_123", NormalizeAccountID("act_123"))
	assert.Equal(t, "act_123", NormalizeAccountID("  123 "))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "v19.0", observability.NewLogger()), srv
}

func TestValidateConnection(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"id":"act_777","name":"Acme Ads","currency":"USD"}`))
	})

	info, err := client.ValidateConnection(context.Background(), "777", "tok")
	require.NoError(t, err)
	assert.Equal(t, "Acme Ads", info.Name)
	assert.Equal(t, "USD", info.Currency)
	assert.Equal(t, "/v19.0/act_777", gotPath)
	assert.Equal(t, "tok", gotQuery.Get("access_token"))
}

func TestValidateConnection_ProviderError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`))
	})

	_, err := client.ValidateConnection(context.Background(), "777", "bad")

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "Invalid OAuth access token.", providerErr.Message)
	assert.Equal(t, "OAuthException", providerErr.Type)
	assert.Equal(t, 190, providerErr.Code)
}

func TestValidateConnection_MalformedBodyIsTransportError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway timeout</html>`))
	})

	_, err := client.ValidateConnection(context.Background(), "777", "tok")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestValidateConnection_ServerUnreachable(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.ValidateConnection(context.Background(), "777", "tok")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestFetchCampaignTree(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":[{"id":"c1","name":"Push","status":"ACTIVE","objective":"OUTCOME_SALES",
			"insights":{"data":[{"spend":"12.34"}]},
			"adsets":{"data":[{"id":"as1","name":"Set","status":"ACTIVE",
				"ads":{"data":[{"id":"a1","name":"Ad","status":"PAUSED","creative":{"id":"cr1","image_url":"https://img"}}]}}]}}]}`))
	})

	campaigns, err := client.FetchCampaignTree(context.Background(), "777", "tok", PresetQuery("last_7d"))
	require.NoError(t, err)
	assert.Equal(t, "/v19.0/act_777/campaigns", gotPath)
	assert.Equal(t, "last_7d", gotQuery.Get("date_preset"))

	// The whole hierarchy comes back from the single expanded read.
	fields := gotQuery.Get("fields")
	assert.Contains(t, fields, "adsets{")
	assert.Contains(t, fields, "ads{")
	assert.Contains(t, fields, "insights.date_preset(last_7d)")

	require.Len(t, campaigns, 1)
	require.NotNil(t, campaigns[0].AdSets)
	require.Len(t, campaigns[0].AdSets.Data, 1)
	require.NotNil(t, campaigns[0].AdSets.Data[0].Ads)
	assert.Equal(t, "a1", campaigns[0].AdSets.Data[0].Ads.Data[0].ID)
	assert.Equal(t, "cr1", campaigns[0].AdSets.Data[0].Ads.Data[0].Creative.ID)
}

func TestFetchCampaignTree_CustomRangeUsesTimeRange(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.FetchCampaignTree(context.Background(), "777", "tok", RangeQuery("2026-08-01", "2026-08-15"))
	require.NoError(t, err)

	assert.Empty(t, gotQuery.Get("date_preset"))
	assert.JSONEq(t, `{"since":"2026-08-01","until":"2026-08-15"}`, gotQuery.Get("time_range"))
	assert.Contains(t, gotQuery.Get("fields"), `insights.time_range({"since":"2026-08-01","until":"2026-08-15"})`)
}

func TestFetchDailyHistory(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":[
			{"date_start":"2026-08-01","spend":"10.00","action_values":[{"action_type":"purchase","value":"30.00"}]},
			{"date_start":"2026-08-02","spend":"20.00"}]}`))
	})

	records, err := client.FetchDailyHistory(context.Background(), "act_777", "tok", PresetQuery("this_month"))
	require.NoError(t, err)
	assert.Equal(t, "/v19.0/act_777/insights", gotPath)
	assert.Equal(t, "1", gotQuery.Get("time_increment"))
	assert.Equal(t, "this_month", gotQuery.Get("date_preset"))
	require.Len(t, records, 2)
	assert.Equal(t, "2026-08-01", records[0].DateStart)
}

func TestFetchDemographics(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":[{"age":"25-34","gender":"female","spend":"5.00","actions":[{"action_type":"purchase","value":"2"}]}]}`))
	})

	rows, err := client.FetchDemographics(context.Background(), "camp1", "tok", PresetQuery("last_7d"))
	require.NoError(t, err)
	assert.Equal(t, "/v19.0/camp1/insights", gotPath)
	assert.Equal(t, "age,gender", gotQuery.Get("breakdowns"))
	require.Len(t, rows, 1)
	assert.Equal(t, "25-34", rows[0].Age)
	assert.Equal(t, "female", rows[0].Gender)
}
