package memory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coreframe-ai/doom-diag/pkg/models/api"
	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetPreferences(ctx context.Context, tool string) (domain.Preferences, error) {
	args := m.Called(ctx, tool)
	return args.Get(0).(domain.Preferences), args.Error(1)
}

func (m *mockStore) SetPreferences(ctx context.Context, prefs domain.Preferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

func (m *mockStore) AppendUsage(ctx context.Context, record domain.UsageRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockStore) ListUsage(ctx context.Context, tool string) ([]domain.UsageRecord, error) {
	args := m.Called(ctx, tool)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UsageRecord), args.Error(1)
}

func TestGetPreferences_DefaultsToolName(t *testing.T) {
	storeMock := &mockStore{}
	storeMock.On("GetPreferences", mock.Anything, "doom-diag").
		Return(domain.Preferences{Tool: "doom-diag", Settings: map[string]string{"currency": "RM"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/memory/preferences", nil)
	rec := httptest.NewRecorder()
	NewHandler(storeMock).GetPreferences(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res api.Preferences
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "doom-diag", res.Tool)
	assert.Equal(t, "RM", res.Settings["currency"])
	storeMock.AssertExpectations(t)
}

func TestGetPreferences_ExplicitTool(t *testing.T) {
	storeMock := &mockStore{}
	storeMock.On("GetPreferences", mock.Anything, "other-tool").
		Return(domain.Preferences{Tool: "other-tool", Settings: map[string]string{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/memory/preferences?tool=other-tool", nil)
	rec := httptest.NewRecorder()
	NewHandler(storeMock).GetPreferences(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	storeMock.AssertExpectations(t)
}

func TestSetPreferences(t *testing.T) {
	storeMock := &mockStore{}
	storeMock.On("SetPreferences", mock.Anything, domain.Preferences{
		Tool:     "doom-diag",
		Settings: map[string]string{"currency": "RM"},
	}).Return(nil)

	body := `{"settings":{"currency":"RM"}}`
	req := httptest.NewRequest(http.MethodPut, "/memory/preferences", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(storeMock).SetPreferences(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	storeMock.AssertExpectations(t)
}

func TestSetPreferences_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/memory/preferences", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	NewHandler(&mockStore{}).SetPreferences(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUsage(t *testing.T) {
	runAt := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	storeMock := &mockStore{}
	storeMock.On("ListUsage", mock.Anything, "doom-diag").
		Return([]domain.UsageRecord{{ID: "rec-1", Tool: "doom-diag", FileName: "ledger.csv", RunAt: runAt}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/memory/usage", nil)
	rec := httptest.NewRecorder()
	NewHandler(storeMock).ListUsage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res []api.UsageRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Len(t, res, 1)
	assert.Equal(t, "rec-1", res[0].Id)
	assert.Equal(t, "ledger.csv", res[0].FileName)
}
