package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brawl-missions/internal/config"
	brawlerdomain "brawl-missions/internal/domain/brawler"
	missiondomain "brawl-missions/internal/domain/mission"
	"brawl-missions/pkg/logger"
)

func testConfig() config.Config {
	return config.Config{
		HTTPPort: "0",
		Env:      "test",
		DB: config.DBConfig{
			Driver:      config.DriverSQLite,
			DSN:         ":memory:",
			AutoMigrate: true,
		},
		Missions: config.MissionsConfig{MaxCrewPerMission: 4},
		JWT:      config.JWTConfig{Secret: "app-secret", TTL: time.Hour},
	}
}

func TestNewWiresServicesWithoutOptionalBackends(t *testing.T) {
	application, err := New(testConfig(), logger.Discard())
	require.NoError(t, err)
	defer application.Close()

	ctx := context.Background()
	services := application.Services()

	passport, err := services.Brawlers.Register(ctx, brawlerdomain.RegisterInput{Username: "chief", Password: "pw", DisplayName: "Chief"})
	require.NoError(t, err)
	assert.NotEmpty(t, passport.Token)

	_, err = services.Brawlers.UploadAvatar(ctx, 1, "aGVsbG8=")
	assert.ErrorIs(t, err, brawlerdomain.ErrUploaderNotConfigured)

	id, err := services.Management.Add(ctx, 1, missiondomain.AddInput{Name: "Rescue Op"})
	require.NoError(t, err)
	require.NoError(t, services.Crew.Join(ctx, 1, id))

	_, err = services.Operation.ToProgress(ctx, id, 1)
	require.NoError(t, err)

	view, err := services.Viewing.GetOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, missiondomain.StatusInProgress, view.Status)

	rec := httptest.NewRecorder()
	application.HTTPServer().Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ":0", application.HTTPServer().Addr)
}
