package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"newsdesk/internal/api"
	"newsdesk/internal/app/service"
	"newsdesk/internal/common/security"
	"newsdesk/internal/domain/model"
	"newsdesk/internal/mocks"
	"newsdesk/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	os.Exit(m.Run())
}

func newTestServer() http.Handler {
	userRepo := mocks.NewMemUserRepository()
	catRepo := mocks.NewMemCategoryRepository()
	articleRepo := mocks.NewMemArticleRepository(catRepo)
	refreshStore := mocks.NewMemRefreshStore()

	authService := service.NewAuthService(userRepo, refreshStore)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(catRepo)
	articleService := service.NewArticleService(articleRepo, catRepo)

	return api.NewRouter(zap.NewNop(), authService, userService, categoryService, articleService)
}

func doJSON(t *testing.T, srv http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, srv http.Handler, username, password string) {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/v1/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func login(t *testing.T, srv http.Handler, username, password string) string {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/v1/token", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var pair service.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	return pair.Access
}

func TestRegisterPublishFlow(t *testing.T) {
	srv := newTestServer()

	// Register alice; role defaults to contributor.
	w := doJSON(t, srv, http.MethodPost, "/api/v1/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var alice model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alice))
	assert.Equal(t, model.RoleContributor, alice.Role)

	token := login(t, srv, "alice", "correct-horse")

	// Create a draft article; author is forced to alice.
	w = doJSON(t, srv, http.MethodPost, "/api/v1/articles", token, map[string]string{
		"title":   "Hello",
		"content": "First post.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var article model.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))
	assert.Equal(t, alice.ID, article.AuthorID)
	assert.Equal(t, model.StatusDraft, article.Status)
	assert.Equal(t, "hello", article.Slug)

	// Anonymous list does not include the draft.
	w = doJSON(t, srv, http.MethodGet, "/api/v1/articles", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Articles []model.Article `json:"articles"`
		Total    int             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, 0, listing.Total)

	// Alice publishes.
	w = doJSON(t, srv, http.MethodPost, "/api/v1/articles/hello/publish", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var published model.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &published))
	assert.Equal(t, model.StatusPublished, published.Status)
	assert.NotNil(t, published.PublishedAt)

	// Now visible anonymously.
	w = doJSON(t, srv, http.MethodGet, "/api/v1/articles", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Equal(t, 1, listing.Total)
	assert.Equal(t, "hello", listing.Articles[0].Slug)
}

func TestPublishByNonOwnerIsForbidden(t *testing.T) {
	srv := newTestServer()
	register(t, srv, "alice", "correct-horse")
	register(t, srv, "bob", "correct-horse")

	aliceToken := login(t, srv, "alice", "correct-horse")
	bobToken := login(t, srv, "bob", "correct-horse")

	w := doJSON(t, srv, http.MethodPost, "/api/v1/articles", aliceToken, map[string]string{
		"title": "Mine", "content": "x",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/articles/mine/publish", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// Unauthenticated publish never reaches the service.
	w = doJSON(t, srv, http.MethodPost, "/api/v1/articles/mine/publish", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestByCategoryRequiresParameter(t *testing.T) {
	srv := newTestServer()

	w := doJSON(t, srv, http.MethodGet, "/api/v1/articles/by_category", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	register(t, srv, "alice", "correct-horse")
	token := login(t, srv, "alice", "correct-horse")
	w = doJSON(t, srv, http.MethodPost, "/api/v1/categories", token, map[string]string{"name": "Tech"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/articles/by_category?category=tech", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryVisibility(t *testing.T) {
	srv := newTestServer()

	// Reads are public, writes are not.
	w := doJSON(t, srv, http.MethodGet, "/api/v1/categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/categories", "", map[string]string{"name": "Tech"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsersMeRequiresToken(t *testing.T) {
	srv := newTestServer()

	w := doJSON(t, srv, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	register(t, srv, "alice", "correct-horse")
	token := login(t, srv, "alice", "correct-horse")

	w = doJSON(t, srv, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "alice", me.Username)
}

func TestTokenRefreshEndpoint(t *testing.T) {
	srv := newTestServer()
	register(t, srv, "alice", "correct-horse")

	w := doJSON(t, srv, http.MethodPost, "/api/v1/token", "", map[string]string{
		"username": "alice", "password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var pair service.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))

	w = doJSON(t, srv, http.MethodPost, "/api/v1/token/refresh", "", map[string]string{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var next service.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &next))
	assert.NotEmpty(t, next.Access)

	// Replay of the rotated token fails.
	w = doJSON(t, srv, http.MethodPost, "/api/v1/token/refresh", "", map[string]string{"refresh": pair.Refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginEndpointReturnsUser(t *testing.T) {
	srv := newTestServer()
	register(t, srv, "alice", "correct-horse")

	w := doJSON(t, srv, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"username": "alice", "password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp service.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.Refresh)
	assert.Equal(t, "alice", resp.User.Username)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePasswordEndpoint(t *testing.T) {
	srv := newTestServer()

	w := doJSON(t, srv, http.MethodPost, "/api/v1/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var alice model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alice))

	token := login(t, srv, "alice", "correct-horse")

	w = doJSON(t, srv, http.MethodPut, "/api/v1/users/"+alice.ID+"/change_password", token, map[string]string{
		"old_password": "wrong", "new_password": "brand-new-pass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodPut, "/api/v1/users/"+alice.ID+"/change_password", token, map[string]string{
		"old_password": "correct-horse", "new_password": "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Old credential is dead, new one works.
	w = doJSON(t, srv, http.MethodPost, "/api/v1/token", "", map[string]string{
		"username": "alice", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	login(t, srv, "alice", "brand-new-pass")
}

func TestHealth(t *testing.T) {
	srv := newTestServer()
	w := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
