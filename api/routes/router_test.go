package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/videoteka/videoteka-backend/internal/catalog"
	"github.com/videoteka/videoteka-backend/internal/collections"
	"github.com/videoteka/videoteka-backend/internal/users"
	"github.com/videoteka/videoteka-backend/pkg/config"
	"github.com/videoteka/videoteka-backend/pkg/db"
	"github.com/videoteka/videoteka-backend/pkg/db/models"
)

const ownedTableDDL = `CREATE TABLE %s (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	movie_id TEXT NOT NULL,
	title TEXT NOT NULL,
	author TEXT,
	price TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (user_id, movie_id)
)`

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	cfg.JWT = config.JWTConfig{Secret: "test-secret", Issuer: "videoteka", ExpirationMinutes: 30}
	cfg.Password = config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	return cfg
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := testConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.New(context.Background(), config.DBConfig{Driver: config.DriverSQLite, URL: dsn}, nil)
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	conn := client.DB()
	if err := conn.AutoMigrate(&models.User{}, &models.Film{}); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	for _, table := range []string{collections.TableBookmarks, collections.TableCartItems} {
		if err := conn.Exec(fmt.Sprintf(ownedTableDDL, table)).Error; err != nil {
			t.Fatalf("creating %s: %v", table, err)
		}
	}

	usersRepo := users.NewRepository(conn)
	usersSvc := users.NewService(usersRepo, cfg.Password)
	catalogSvc := catalog.NewService(catalog.NewRepository(conn), client, nil)
	if err := catalogSvc.EnsureSeed(context.Background()); err != nil {
		t.Fatalf("seeding catalog: %v", err)
	}

	handler := NewRouter(Deps{
		Cfg:       cfg,
		DB:        client,
		Users:     usersSvc,
		Bookmarks: collections.NewBookmarksService(collections.NewBookmarksRepository(conn), usersRepo),
		Cart:      collections.NewCartService(collections.NewCartRepository(conn), usersRepo),
		Catalog:   catalogSvc,
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, payload any) (*http.Response, []byte) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshaling payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, buf.Bytes()
}

func decodeData(t *testing.T, raw []byte, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decoding envelope from %s: %v", raw, err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
}

func registerAndLogin(t *testing.T, server *httptest.Server, username string) string {
	t.Helper()
	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "wonderland",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/v1/login", "", map[string]string{
		"username": username,
		"password": "wonderland",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200 got %d", resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeData(t, body, &token)
	if token.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %q", token.TokenType)
	}
	if token.AccessToken == "" {
		t.Fatal("empty access token")
	}
	return token.AccessToken
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var status map[string]string
	decodeData(t, body, &status)
	if status["status"] != "healthy" {
		t.Fatalf("unexpected health payload %v", status)
	}

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/health/ready", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ready: expected 200 got %d", resp.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/register", "", map[string]string{
		"username": "alice",
		"email":    "not-an-email",
		"password": "wonderland",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
}

func TestRegisterDuplicateAnswers400(t *testing.T) {
	server := newTestServer(t)
	registerAndLogin(t, server, "alice")

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "wonderland",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	server := newTestServer(t)
	registerAndLogin(t, server, "alice")

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/api/v1/me", "/api/v1/bookmarks", "/api/v1/cart"} {
		resp, _ := doJSON(t, http.MethodGet, server.URL+path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", path, resp.StatusCode)
		}
	}
}

func TestMeProfileFlow(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "alice")

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/v1/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: expected 200 got %d", resp.StatusCode)
	}
	var profile struct {
		Username     string  `json:"username"`
		Email        string  `json:"email"`
		AvatarBase64 *string `json:"avatar_base64"`
	}
	decodeData(t, body, &profile)
	if profile.Username != "alice" || profile.Email != "alice@example.com" {
		t.Fatalf("unexpected profile %+v", profile)
	}
	if profile.AvatarBase64 != nil {
		t.Fatalf("expected no avatar yet")
	}

	resp, body = doJSON(t, http.MethodPut, server.URL+"/api/v1/me/avatar", token, map[string]string{
		"avatar_base64": "data:image/png;base64,AAAA",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("avatar: expected 200 got %d", resp.StatusCode)
	}
	decodeData(t, body, &profile)
	if profile.AvatarBase64 == nil || *profile.AvatarBase64 != "data:image/png;base64,AAAA" {
		t.Fatalf("avatar not stored: %+v", profile)
	}
}

func TestPasswordChangeFlow(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "alice")

	resp, _ := doJSON(t, http.MethodPut, server.URL+"/api/v1/me/password", token, map[string]string{
		"current_password": "wonderland",
		"new_password":     "rabbit-hole",
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/login", "", map[string]string{
		"username": "alice",
		"password": "wonderland",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("old password should fail, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/login", "", map[string]string{
		"username": "alice",
		"password": "rabbit-hole",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("new password should work, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPut, server.URL+"/api/v1/me/password", token, map[string]string{
		"current_password": "rabbit-hole",
		"new_password":     "short",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("short password should fail, got %d", resp.StatusCode)
	}
}

func TestBookmarksFlow(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "alice")

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/v1/bookmarks", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var items []map[string]any
	decodeData(t, body, &items)
	if len(items) != 0 {
		t.Fatalf("fresh user should have no bookmarks, got %d", len(items))
	}

	resp, body = doJSON(t, http.MethodPost, server.URL+"/api/v1/bookmarks", token, map[string]string{
		"movie_id": "m-1",
		"title":    "Alien",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.StatusCode, body)
	}

	// Adding the same movie again keeps a single row.
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/bookmarks", token, map[string]string{
		"movie_id": "m-1",
		"title":    "Alien",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/v1/bookmarks", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	decodeData(t, body, &items)
	if len(items) != 1 {
		t.Fatalf("expected a single bookmark, got %d", len(items))
	}

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/v1/bookmarks/m-1", token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/v1/bookmarks/m-1", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.StatusCode)
	}
}

func TestBookmarkUpsertReplacesFields(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/v1/login", "", map[string]string{
		"username": "alice",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200 got %d", resp.StatusCode)
	}
	var token struct {
		AccessToken string `json:"access_token"`
	}
	decodeData(t, body, &token)

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/v1/me", token.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: expected 200 got %d", resp.StatusCode)
	}
	var profile struct {
		Username string `json:"username"`
	}
	decodeData(t, body, &profile)
	if profile.Username != "alice" {
		t.Fatalf("expected alice, got %q", profile.Username)
	}

	for _, title := range []string{"X", "Y"} {
		resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/bookmarks", token.AccessToken, map[string]string{
			"movie_id": "42",
			"title":    title,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("add %q: expected 201 got %d", title, resp.StatusCode)
		}
	}

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/v1/bookmarks", token.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", resp.StatusCode)
	}
	var items []struct {
		MovieID string `json:"movie_id"`
		Title   string `json:"title"`
	}
	decodeData(t, body, &items)
	if len(items) != 1 {
		t.Fatalf("expected exactly one bookmark, got %d", len(items))
	}
	if items[0].MovieID != "42" || items[0].Title != "Y" {
		t.Fatalf("expected movie 42 titled Y, got %+v", items[0])
	}
}

func TestCartIsSeparateFromBookmarks(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "alice")

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/cart", token, map[string]string{
		"movie_id": "m-9",
		"title":    "Solaris",
		"price":    "299",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/v1/bookmarks", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var items []map[string]any
	decodeData(t, body, &items)
	if len(items) != 0 {
		t.Fatalf("cart add must not touch bookmarks, got %d items", len(items))
	}
}

func TestFilmsByGenreIsPublic(t *testing.T) {
	server := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/v1/genres/scifi/films", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var films []struct {
		Title      string `json:"title"`
		GenreTitle string `json:"genre_title"`
	}
	decodeData(t, body, &films)
	if len(films) != 5 {
		t.Fatalf("expected 5 scifi films, got %d", len(films))
	}

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/v1/genres/SciFi/films", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	decodeData(t, body, &films)
	if len(films) != 5 {
		t.Fatalf("genre lookup should fold case, got %d films", len(films))
	}

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/v1/genres/western/films", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	decodeData(t, body, &films)
	if len(films) != 0 {
		t.Fatalf("unknown genre should return empty list, got %d", len(films))
	}
}

func TestUsersOwnSeparateCollections(t *testing.T) {
	server := newTestServer(t)
	aliceToken := registerAndLogin(t, server, "alice")
	bobToken := registerAndLogin(t, server, "bob")

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/bookmarks", aliceToken, map[string]string{
		"movie_id": "m-1",
		"title":    "Alien",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/v1/bookmarks", bobToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var items []map[string]any
	decodeData(t, body, &items)
	if len(items) != 0 {
		t.Fatalf("bob must not see alice's bookmarks, got %d", len(items))
	}

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/v1/bookmarks/m-1", bobToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("bob deleting alice's bookmark should 404, got %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/metrics", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
}
