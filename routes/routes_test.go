package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/sportsgear-api/app"
	"github.com/upb/sportsgear-api/config"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			RequestTimeout: 5 * time.Second,
			AllowedOrigins: []string{"http://localhost:*"},
		},
		Store: config.StoreConfig{Driver: config.StoreDriverMemory},
		Auth: config.AuthConfig{
			Secret:         "routes-test-secret",
			TokenTTL:       time.Hour,
			Issuer:         "sportsgear-test",
			CookieName:     "token",
			CookieSameSite: "strict",
		},
		Redis:         config.RedisConfig{KeyPrefix: "revoked:"},
		Observability: config.ObservabilityConfig{LogLevel: "info"},
	}
}

func newRouter(t *testing.T, cfg *config.Config) (http.Handler, *app.Dependencies) {
	t.Helper()
	deps, err := app.NewDependencies(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close(context.Background()) })
	return SetupRoutes(deps), deps
}

func serve(router http.Handler, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router http.Handler, email string) *http.Cookie {
	t.Helper()
	w := serve(router, http.MethodPost, "/jwt", `{"email":"`+email+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func data(t *testing.T, w *httptest.ResponseRecorder) interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	return response["data"]
}

func insertedID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := data(t, w).(map[string]interface{})["insertedId"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestTableAccessLevels(t *testing.T) {
	_, deps := newRouter(t, testConfig())

	guarded := map[string]Access{}
	for _, route := range Table(deps) {
		if route.Access != Public {
			guarded[route.Method+" "+route.Pattern] = route.Access
		}
	}
	assert.Equal(t, map[string]Access{"GET /myEquipment": Owner}, guarded)
}

func TestRootAndHealth(t *testing.T) {
	router, _ := newRouter(t, testConfig())

	w := serve(router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello World", w.Body.String())

	w = serve(router, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnedEquipmentScenario(t *testing.T) {
	router, _ := newRouter(t, testConfig())

	insertedID(t, serve(router, http.MethodPost, "/products", `{"name":"Bat","email":"a@x.com"}`))
	insertedID(t, serve(router, http.MethodPost, "/products", `{"name":"Glove","email":"a@x.com"}`))
	insertedID(t, serve(router, http.MethodPost, "/products", `{"name":"Helmet","email":"b@x.com"}`))

	cookie := login(t, router, "a@x.com")

	t.Run("own email lists own documents", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/myEquipment?email=a@x.com", "", cookie)
		require.Equal(t, http.StatusOK, w.Code)

		docs := data(t, w).([]interface{})
		require.Len(t, docs, 2)
		for _, doc := range docs {
			assert.Equal(t, "a@x.com", doc.(map[string]interface{})["email"])
		}
	})

	t.Run("other email is forbidden", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/myEquipment?email=b@x.com", "", cookie)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NotContains(t, w.Body.String(), "Helmet")
	})

	t.Run("missing email is forbidden", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/myEquipment", "", cookie)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("bearer header works too", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/myEquipment?email=a@x.com", nil)
		req.Header.Set("Authorization", "Bearer "+cookie.Value)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLoginWithIdentityPayload(t *testing.T) {
	router, _ := newRouter(t, testConfig())

	insertedID(t, serve(router, http.MethodPost, "/products", `{"name":"Bat","email":"a@x.com"}`))

	w := serve(router, http.MethodPost, "/jwt", `{"identity":"a@x.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	w = serve(router, http.MethodGet, "/myEquipment?email=a@x.com", "", cookies[0])
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data(t, w), 1)
}

func TestMissingCredentialNeverReachesStore(t *testing.T) {
	router, deps := newRouter(t, testConfig())

	insertedID(t, serve(router, http.MethodPost, "/products", `{"name":"Bat","email":"a@x.com"}`))

	for _, cookie := range []*http.Cookie{nil, {Name: "token", Value: "not-a-token"}} {
		var w *httptest.ResponseRecorder
		if cookie == nil {
			w = serve(router, http.MethodGet, "/myEquipment?email=a@x.com", "")
		} else {
			w = serve(router, http.MethodGet, "/myEquipment?email=a@x.com", "", cookie)
		}
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotContains(t, w.Body.String(), "Bat")
	}

	// the store still holds exactly what was inserted
	docs, err := deps.Products.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDeleteProductTwice(t *testing.T) {
	router, _ := newRouter(t, testConfig())

	id := insertedID(t, serve(router, http.MethodPost, "/products", `{"name":"Bat"}`))

	for _, want := range []float64{1, 0} {
		w := serve(router, http.MethodDelete, "/products/"+id, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, data(t, w).(map[string]interface{})["deletedCount"])
	}

	w := serve(router, http.MethodGet, "/products/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateKeepsOnlyWhitelistedFields(t *testing.T) {
	router, _ := newRouter(t, testConfig())

	id := insertedID(t, serve(router, http.MethodPost, "/products", `{"name":"Bat","email":"a@x.com","price":10}`))

	w := serve(router, http.MethodPut, "/products/"+id, `{"price":12,"email":"b@x.com","isAdmin":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), data(t, w).(map[string]interface{})["modifiedCount"])

	w = serve(router, http.MethodGet, "/products/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	doc := data(t, w).(map[string]interface{})
	assert.Equal(t, float64(12), doc["price"])
	assert.Equal(t, "a@x.com", doc["email"])
	assert.NotContains(t, doc, "isAdmin")
}

func TestCartItemFilter(t *testing.T) {
	router, _ := newRouter(t, testConfig())

	insertedID(t, serve(router, http.MethodPost, "/cartItem", `{"pName":"Bat"}`))
	insertedID(t, serve(router, http.MethodPost, "/cartItem", `{"pName":"Glove"}`))

	w := serve(router, http.MethodGet, "/cartItem?pName=Bat", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data(t, w), 1)

	w = serve(router, http.MethodGet, "/cartItem", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data(t, w), 2)
}

func TestLogoutRevokesCredential(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Redis.URL = "redis://" + mr.Addr()
	router, _ := newRouter(t, cfg)

	cookie := login(t, router, "a@x.com")

	w := serve(router, http.MethodGet, "/myEquipment?email=a@x.com", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodPost, "/logOut", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodGet, "/myEquipment?email=a@x.com", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnknownRoutes(t *testing.T) {
	router, _ := newRouter(t, testConfig())

	w := serve(router, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	w = serve(router, http.MethodPatch, "/products", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORSRejectsForeignOrigins(t *testing.T) {
	router, _ := newRouter(t, testConfig())

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost:3000", true},
		{"https://attacker.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/myEquipment?email=a@x.com", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if tt.allowed {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
				return
			}
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}
