//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"brawl-missions/internal/app"
	"brawl-missions/internal/config"
	"brawl-missions/internal/db"
	"brawl-missions/pkg/logger"
)

type testEnv struct {
	server *httptest.Server
	app    *app.App
}

func setupE2E(t *testing.T, maxCrew int64) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.Discard()
	cfg := config.Config{
		Env:         "test",
		CORSOrigins: []string{"*"},
		DB:          config.DBConfig{Driver: config.DriverPostgres, DSN: dsn, AutoMigrate: true},
		Missions:    config.MissionsConfig{MaxCrewPerMission: maxCrew},
		JWT:         config.JWTConfig{Secret: "e2e-secret", TTL: time.Hour},
	}

	dbConn, err := db.Open(cfg.DB, false, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	if err := app.Migrate(cfg, dbConn, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}

	application, err := app.New(cfg, log)
	if err != nil {
		t.Fatalf("app init: %v", err)
	}

	server := httptest.NewServer(application.HTTPServer().Handler)
	return &testEnv{server: server, app: application}
}

func (e *testEnv) Close() {
	e.server.Close()
	_ = e.app.Close()
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE crew_memberships, missions, brawlers RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(body))
	}
}

func decode(t *testing.T, body []byte, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, dst); err != nil {
		t.Fatalf("decode response: %v (%s)", err, string(body))
	}
}

type passport struct {
	Token       string  `json:"token"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

type missionResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	ChiefID   int64  `json:"chief_id"`
	CrewCount int64  `json:"crew_count"`
}

type crewMemberResponse struct {
	DisplayName         string `json:"display_name"`
	MissionSuccessCount int64  `json:"mission_success_count"`
	MissionJoinedCount  int64  `json:"mission_joined_count"`
}

func registerBrawler(t *testing.T, client *http.Client, baseURL, username string) string {
	t.Helper()
	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/api/brawlers/register", "", map[string]string{
		"username":     username,
		"password":     "pw-" + username,
		"display_name": username,
	})
	expectStatus(t, resp, body, http.StatusCreated)

	var p passport
	decode(t, body, &p)
	if p.Token == "" {
		t.Fatalf("expected token for %s", username)
	}
	return p.Token
}

func addMission(t *testing.T, client *http.Client, baseURL, token, name string) string {
	t.Helper()
	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/api/mission-management", token, map[string]string{"name": name})
	expectStatus(t, resp, body, http.StatusCreated)

	var created struct {
		ID int64 `json:"id"`
	}
	decode(t, body, &created)
	return strconv.FormatInt(created.ID, 10)
}

func TestE2EMissionLifecycle(t *testing.T) {
	env := setupE2E(t, 3)
	defer env.Close()

	client := env.server.Client()
	baseURL := env.server.URL

	chief := registerBrawler(t, client, baseURL, "chief")
	colt := registerBrawler(t, client, baseURL, "colt")
	poco := registerBrawler(t, client, baseURL, "poco")

	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/api/authentication/login", "", map[string]string{
		"username": "colt",
		"password": "pw-colt",
	})
	expectStatus(t, resp, body, http.StatusOK)

	id := addMission(t, client, baseURL, chief, "Rescue Op")

	resp, body = requestJSON(t, client, http.MethodPatch, baseURL+"/api/mission-management/"+id, chief, map[string]string{"description": "bring the medkit"})
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = requestJSON(t, client, http.MethodPost, baseURL+"/api/crew-operation/join/"+id, colt, nil)
	expectStatus(t, resp, body, http.StatusNoContent)
	resp, body = requestJSON(t, client, http.MethodPost, baseURL+"/api/crew-operation/join/"+id, poco, nil)
	expectStatus(t, resp, body, http.StatusNoContent)

	resp, body = requestJSON(t, client, http.MethodDelete, baseURL+"/api/mission-management/"+id, chief, nil)
	expectStatus(t, resp, body, http.StatusConflict)

	resp, body = requestJSON(t, client, http.MethodPatch, baseURL+"/api/mission-operation/in-progress/"+id, chief, nil)
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = requestJSON(t, client, http.MethodPatch, baseURL+"/api/mission-operation/to-completed/"+id, chief, nil)
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = requestJSON(t, client, http.MethodGet, baseURL+"/api/missions/"+id, "", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var mission missionResponse
	decode(t, body, &mission)
	if mission.Status != "Completed" || mission.CrewCount != 2 {
		t.Fatalf("unexpected mission %+v", mission)
	}

	resp, body = requestJSON(t, client, http.MethodGet, baseURL+"/api/missions/"+id+"/crew", "", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var crew []crewMemberResponse
	decode(t, body, &crew)
	if len(crew) != 2 {
		t.Fatalf("expected 2 crew members, got %d", len(crew))
	}
	for _, member := range crew {
		if member.MissionSuccessCount != 1 || member.MissionJoinedCount != 1 {
			t.Fatalf("unexpected roster row %+v", member)
		}
	}

	resp, body = requestJSON(t, client, http.MethodGet, baseURL+"/api/missions?status=Completed&name=rescue", "", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var listed []missionResponse
	decode(t, body, &listed)
	if len(listed) != 1 || listed[0].Name != "Rescue Op" {
		t.Fatalf("unexpected list %+v", listed)
	}
}

func TestE2EConcurrentTransitionsApplyOnce(t *testing.T) {
	env := setupE2E(t, 5)
	defer env.Close()

	client := env.server.Client()
	baseURL := env.server.URL

	chief := registerBrawler(t, client, baseURL, "chief")
	member := registerBrawler(t, client, baseURL, "member")
	id := addMission(t, client, baseURL, chief, "Night Raid")

	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/api/crew-operation/join/"+id, member, nil)
	expectStatus(t, resp, body, http.StatusNoContent)

	const attempts = 8
	codes := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, _ := http.NewRequest(http.MethodPatch, baseURL+"/api/mission-operation/in-progress/"+id, nil)
			req.Header.Set("Authorization", "Bearer "+chief)
			resp, err := client.Do(req)
			if err != nil {
				return
			}
			resp.Body.Close()
			codes[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	// InProgress -> InProgress is not a legal transition, so only one wins.
	succeeded := 0
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			succeeded++
		case http.StatusUnprocessableEntity:
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one successful transition, got %d", succeeded)
	}
}

func TestE2EConcurrentJoinsAreIdempotent(t *testing.T) {
	env := setupE2E(t, 5)
	defer env.Close()

	client := env.server.Client()
	baseURL := env.server.URL

	chief := registerBrawler(t, client, baseURL, "chief")
	member := registerBrawler(t, client, baseURL, "member")
	id := addMission(t, client, baseURL, chief, "Crowded")

	const attempts = 6
	codes := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, _ := http.NewRequest(http.MethodPost, baseURL+"/api/crew-operation/join/"+id, nil)
			req.Header.Set("Authorization", "Bearer "+member)
			resp, err := client.Do(req)
			if err != nil {
				return
			}
			resp.Body.Close()
			codes[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	joined := 0
	for _, code := range codes {
		switch code {
		case http.StatusNoContent:
			joined++
		case http.StatusConflict:
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	if joined != 1 {
		t.Fatalf("expected exactly one join, got %d", joined)
	}

	resp, body := requestJSON(t, client, http.MethodGet, baseURL+"/api/missions/"+id, "", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var mission missionResponse
	decode(t, body, &mission)
	if mission.CrewCount != 1 {
		t.Fatalf("expected crew 1, got %d", mission.CrewCount)
	}
}
