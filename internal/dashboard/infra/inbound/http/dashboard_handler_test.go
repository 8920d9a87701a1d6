package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/consentlab/internal/dashboard/application"
	dashboardDomain "github.com/davicafu/consentlab/internal/dashboard/domain"
	documentApp "github.com/davicafu/consentlab/internal/document/application"
	documentFixtures "github.com/davicafu/consentlab/internal/document/infra/outbound/fixtures"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	docs, err := documentFixtures.NewDocumentRepo()
	require.NoError(t, err)
	sources := []application.Source{{
		Dataset: "documents",
		Stats:   documentApp.NewDocumentService(docs, nil, nil, time.Now, zap.NewNop()),
		Fields:  []string{"classification"},
	}}

	r := gin.New()
	RegisterDashboardRoutes(r, NewDashboardHandler(application.NewDashboardService(sources, nil, nil, zap.NewNop())))
	return r
}

func get(r *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestSummary_Endpoint(t *testing.T) {
	r := setupRouter(t)

	w := get(r, "/dashboard/summary")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data dashboardDomain.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	b, ok := body.Data.Find("documents", "classification")
	require.True(t, ok)
	assert.Equal(t, 27, b.Total)
	assert.Len(t, b.Counts, 6)
}

func TestTrend_Endpoint(t *testing.T) {
	r := setupRouter(t)

	assert.Equal(t, http.StatusBadRequest, get(r, "/dashboard/trend?dataset=documents").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/dashboard/trend?dataset=documents&key=Plans&from=last-week").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/dashboard/trend?dataset=documents&key=Plans").Code)
}
