package processor

import (
	"context"
	"strings"
	"testing"

	"ads-manager-server/internal/clients/meta"
	"ads-manager-server/internal/observability"
	"ads-manager-server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountsStore is a mock implementation of AccountsStore
type MockAccountsStore struct {
	mock.Mock
}

func (m *MockAccountsStore) GetClient(ctx context.Context, id string) (store.Client, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.Client), args.Error(1)
}

func (m *MockAccountsStore) ListClients(ctx context.Context) ([]store.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.Client), args.Error(1)
}

func (m *MockAccountsStore) UpsertClient(ctx context.Context, client store.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockAccountsStore) DeleteClient(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockConnectionValidator is a mock implementation of ConnectionValidator
type MockConnectionValidator struct {
	mock.Mock
}

func (m *MockConnectionValidator) ValidateConnection(ctx context.Context, adAccountID, accessToken string) (meta.AccountInfo, error) {
	args := m.Called(ctx, adAccountID, accessToken)
	return args.Get(0).(meta.AccountInfo), args.Error(1)
}

func TestCreateClient(t *testing.T) {
	mockStore := new(MockAccountsStore)
	p := New(mockStore, new(MockConnectionValidator), observability.NewLogger())

	var persisted store.Client
	mockStore.On("UpsertClient", mock.Anything, mock.AnythingOfType("store.Client")).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(store.Client) }).
		Return(nil)

	client, err := p.CreateClient(context.Background(), CreateClientParams{Name: "Acme Shoes"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(client.ID, "c_"))
	assert.Equal(t, "Acme Shoes", client.Name)
	assert.Equal(t, "General", client.Industry)
	assert.Contains(t, client.Avatar, "ui-avatars.com")
	assert.NotNil(t, client.Campaigns)
	assert.False(t, client.Connected())
	assert.Equal(t, client.ID, persisted.ID)
}

func TestCreateClient_KeepsProvidedIndustry(t *testing.T) {
	mockStore := new(MockAccountsStore)
	p := New(mockStore, new(MockConnectionValidator), observability.NewLogger())
	mockStore.On("UpsertClient", mock.Anything, mock.Anything).Return(nil)

	client, err := p.CreateClient(context.Background(), CreateClientParams{Name: "Acme", Industry: "Retail"})
	require.NoError(t, err)
	assert.Equal(t, "Retail", client.Industry)
}

func TestGetClient_NotFound(t *testing.T) {
	mockStore := new(MockAccountsStore)
	p := New(mockStore, new(MockConnectionValidator), observability.NewLogger())

	mockStore.On("GetClient", mock.Anything, "missing").Return(store.Client{}, store.ErrClientNotFound)

	_, err := p.GetClient(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestConnect_ExistingClient(t *testing.T) {
	mockStore := new(MockAccountsStore)
	mockGraph := new(MockConnectionValidator)
	p := New(mockStore, mockGraph, observability.NewLogger())

	mockGraph.On("ValidateConnection", mock.Anything, "42", "tok").
		Return(meta.AccountInfo{ID: "act_42", Name: "Acme Ads", Currency: "USD"}, nil)
	mockStore.On("GetClient", mock.Anything, "c_1").
		Return(store.Client{ID: "c_1", Name: "Old Name", Avatar: "https://existing"}, nil)
	mockStore.On("UpsertClient", mock.Anything, mock.AnythingOfType("store.Client")).Return(nil)

	client, err := p.Connect(context.Background(), "c_1", "42", "tok")
	require.NoError(t, err)

	assert.Equal(t, "c_1", client.ID)
	assert.Equal(t, "Acme Ads", client.Name)
	assert.Equal(t, "act_42", client.AdAccountID)
	assert.Equal(t, "tok", client.AccessToken)
	assert.Equal(t, "https://existing", client.Avatar)
	assert.True(t, client.Connected())
}

func TestConnect_InvalidCredentialsNotPersisted(t *testing.T) {
	mockStore := new(MockAccountsStore)
	mockGraph := new(MockConnectionValidator)
	p := New(mockStore, mockGraph, observability.NewLogger())

	mockGraph.On("ValidateConnection", mock.Anything, "42", "bad").
		Return(meta.AccountInfo{}, &meta.ProviderError{Message: "Invalid OAuth access token."})

	_, err := p.Connect(context.Background(), "c_1", "42", "bad")

	var providerErr *meta.ProviderError
	require.ErrorAs(t, err, &providerErr)
	mockStore.AssertNotCalled(t, "UpsertClient")
}

func TestConnect_MatchesExistingClientByAccountID(t *testing.T) {
	mockStore := new(MockAccountsStore)
	mockGraph := new(MockConnectionValidator)
	p := New(mockStore, mockGraph, observability.NewLogger())

	mockGraph.On("ValidateConnection", mock.Anything, "42", "tok").
		Return(meta.AccountInfo{ID: "act_42", Name: "Acme Ads"}, nil)
	mockStore.On("ListClients", mock.Anything).Return([]store.Client{
		{ID: "c_other", AdAccountID: "act_99"},
		{ID: "c_match", AdAccountID: "act_42"},
	}, nil)
	mockStore.On("UpsertClient", mock.Anything, mock.Anything).Return(nil)

	client, err := p.Connect(context.Background(), "", "42", "tok")
	require.NoError(t, err)
	assert.Equal(t, "c_match", client.ID)
}

func TestConnect_CreatesClientWhenNoMatch(t *testing.T) {
	mockStore := new(MockAccountsStore)
	mockGraph := new(MockConnectionValidator)
	p := New(mockStore, mockGraph, observability.NewLogger())

	mockGraph.On("ValidateConnection", mock.Anything, "42", "tok").
		Return(meta.AccountInfo{ID: "act_42", Name: "Acme Ads"}, nil)
	mockStore.On("ListClients", mock.Anything).Return([]store.Client{}, nil)
	mockStore.On("UpsertClient", mock.Anything, mock.Anything).Return(nil)

	client, err := p.Connect(context.Background(), "", "42", "tok")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(client.ID, "c_"))
	assert.Equal(t, "Acme Ads", client.Name)
	assert.Equal(t, "General", client.Industry)
}

func TestSummarize(t *testing.T) {
	mockStore := new(MockAccountsStore)
	p := New(mockStore, new(MockConnectionValidator), observability.NewLogger())

	mockStore.On("GetClient", mock.Anything, "c_1").Return(store.Client{
		ID: "c_1",
		Campaigns: []store.Campaign{
			{Metrics: store.Metrics{Spend: 100, Impressions: 10000, Clicks: 200, Conversions: 10, ConversionValue: 400}},
			{Metrics: store.Metrics{Spend: 50, Impressions: 5000, Clicks: 100, Conversions: 5, ConversionValue: 200}},
		},
	}, nil)

	s, err := p.Summarize(context.Background(), "c_1")
	require.NoError(t, err)

	assert.Equal(t, 150.0, s.Spend)
	assert.Equal(t, int64(15000), s.Impressions)
	assert.Equal(t, int64(300), s.Clicks)
	assert.Equal(t, 15.0, s.Conversions)
	assert.Equal(t, 600.0, s.Revenue)
	assert.Equal(t, 4.0, s.ROAS)
	assert.InDelta(t, 2.0, s.CTR, 1e-9)
}

func TestSummarize_NoCampaignsHasNoDerivedRates(t *testing.T) {
	mockStore := new(MockAccountsStore)
	p := New(mockStore, new(MockConnectionValidator), observability.NewLogger())

	mockStore.On("GetClient", mock.Anything, "c_1").Return(store.Client{ID: "c_1"}, nil)

	s, err := p.Summarize(context.Background(), "c_1")
	require.NoError(t, err)
	assert.Zero(t, s.ROAS)
	assert.Zero(t, s.CTR)
}
