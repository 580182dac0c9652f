package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/timeline-api/api/types"
	"github.com/killallgit/timeline-api/internal/database"
	"github.com/killallgit/timeline-api/internal/services/persistence"
	"github.com/killallgit/timeline-api/internal/services/seeding"
	"github.com/killallgit/timeline-api/internal/services/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupDeps      func() *types.Dependencies
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name: "healthy with database",
			setupDeps: func() *types.Dependencies {
				db, err := database.Initialize(":memory:", false)
				require.NoError(t, err)
				return &types.Dependencies{DB: db}
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"status":   "ok",
				"database": "healthy",
			},
		},
		{
			name: "healthy without database",
			setupDeps: func() *types.Dependencies {
				return &types.Dependencies{}
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"status":   "ok",
				"database": "not configured",
			},
		},
		{
			name: "unhealthy with closed database",
			setupDeps: func() *types.Dependencies {
				db, err := database.Initialize(":memory:", false)
				require.NoError(t, err)
				require.NoError(t, db.Close())
				return &types.Dependencies{DB: db}
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody: map[string]interface{}{
				"status":   "unhealthy",
				"database": "unhealthy",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			deps := tt.setupDeps()
			Get(deps)(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedBody["status"], response["status"])
			dbStatus, ok := response["database"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.expectedBody["database"], dbStatus["status"])
			assert.NotContains(t, response, "sessions")

			if deps.DB != nil {
				deps.DB.Close()
			}
		})
	}
}

func TestGet_Sessions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo, err := persistence.NewFileRepository(t.TempDir(), persistence.FormatJSON)
	require.NoError(t, err)
	manager := sessions.NewManager(repo, sessions.WithDebounce(time.Hour))
	_, err = manager.Seed(context.Background(), seeding.Seed{MediaID: "ep-1", MediaDuration: 10}, false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Get(&types.Dependencies{Sessions: manager})(c)

	require.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	s, ok := response["sessions"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), s["open"])
	assert.Equal(t, float64(0), s["unsaved"])
}
