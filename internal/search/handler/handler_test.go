package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tailspend/internal/search"
	"tailspend/internal/search/handler/mock"
	dErrors "tailspend/pkg/domain-errors"
)

func newTestRouter(t *testing.T) (*mock.MockService, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return svc, r
}

func TestSearchReturnsResults(t *testing.T) {
	svc, router := newTestRouter(t)
	svc.EXPECT().Search(gomock.Any(), "laptop").Return([]search.Result{
		{Label: "RFQ: RFQ-001 - Office Laptops", Screen: "RFQDetail", EntityID: "RFQ-001", Type: "RFQ"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/search?q=laptop", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Results []search.Result `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "RFQ-001", body.Results[0].EntityID)
	assert.Equal(t, "RFQDetail", body.Results[0].Screen)
}

func TestSearchEmptyQuery(t *testing.T) {
	svc, router := newTestRouter(t)
	svc.EXPECT().Search(gomock.Any(), "").Return([]search.Result{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
}

func TestSearchErrorMapsToStatus(t *testing.T) {
	svc, router := newTestRouter(t)
	svc.EXPECT().Search(gomock.Any(), "x").
		Return(nil, dErrors.New(dErrors.CodeForbidden, "search not available for this role"))

	req := httptest.NewRequest(http.MethodGet, "/search?q=x", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
