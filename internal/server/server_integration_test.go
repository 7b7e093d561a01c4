package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/gallery/internal/app"
	"github.com/nfrund/gallery/internal/config"
	"github.com/nfrund/gallery/internal/handlers"
	"github.com/nfrund/gallery/internal/i18n"
	"github.com/nfrund/gallery/internal/modules/live"
	"github.com/nfrund/gallery/internal/pubsub"
	"github.com/nfrund/gallery/internal/registry"
	"github.com/nfrund/gallery/internal/remote"
	"github.com/nfrund/gallery/internal/remote/remotetest"
	"github.com/nfrund/gallery/internal/rendering"
	"github.com/nfrund/gallery/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCredential = "integration-token"

// setupIntegrationTest wires the whole application the way cmd/server does,
// against an in-memory gallery service.
func setupIntegrationTest(t *testing.T) (*server.Server, *httptest.Server, *remotetest.Server) {
	t.Helper()

	stub := remotetest.New(testCredential, remotetest.User{ID: "me", Name: "Jacques", About: "Explorer"})
	stub.AppendCard(remotetest.Card{ID: "lake", Name: "Lake", Link: "https://x/lake.jpg"})
	api := httptest.NewServer(stub.Handler())
	t.Cleanup(api.Close)

	cfg := &config.Config{
		APIURL:        api.URL,
		APIToken:      testCredential,
		Language:      "en",
		SessionSecret: "a-very-secret-key-for-testing-!",
	}
	require.NoError(t, cfg.Validate())

	client, err := remote.New(cfg.GetAPIURL(), remote.NewSession(cfg.GetAPIToken()), remote.Options{})
	require.NoError(t, err)

	ps := pubsub.NewWatermillBridge()
	renderer := rendering.NewUniversalRenderer()

	s, err := server.New(server.Dependencies{Config: cfg, Renderer: renderer})
	require.NoError(t, err)

	modules := app.NewModules(app.Dependencies{
		Remote:     client,
		Publisher:  ps,
		Subscriber: ps,
		Renderer:   renderer,
		Labels:     i18n.Match(cfg.GetLanguage()),
	})
	reg := registry.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.InitModules(ctx, modules, reg))
	s.RegisterRoutes()

	sync := registry.MustGet(reg, registry.SynchronizerKey)
	require.Eventually(t, func() bool {
		_, loaded := sync.Profile()
		return loaded && len(sync.Cards()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	ts := httptest.NewServer(s.E)
	t.Cleanup(func() {
		ts.Close()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = s.Shutdown(shutdownCtx)
		cancel()
		_ = ps.Close()
	})
	return s, ts, stub
}

func TestServer_Integration(t *testing.T) {
	_, ts, stub := setupIntegrationTest(t)

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "OK", string(body))
	})

	t.Run("page carries a request id and the loaded gallery", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(echo.HeaderXRequestID))
		assert.Contains(t, string(body), "Jacques")
		assert.Contains(t, string(body), `id="card-lake"`)
	})

	t.Run("htmx like action", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/cards/lake/like", strings.NewReader(url.Values{}.Encode()))
		require.NoError(t, err)
		req.Header.Set("HX-Request", "true")
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "like_active")
		card, ok := stub.Card("lake")
		require.True(t, ok)
		assert.Equal(t, []string{"me"}, card.Likes)
	})

	t.Run("errors are answered as JSON", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/popups/bogus/close", nil)
		require.NoError(t, err)
		req.Header.Set("HX-Request", "true")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body handlers.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "not_found", body.Code)
	})

	t.Run("live socket accepts connections", func(t *testing.T) {
		wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + live.Path
		conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err, "Failed to connect to live websocket")
		defer conn.Close()
		assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	})
}
