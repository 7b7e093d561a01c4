package live_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/gallery/internal/config"
	gallerymod "github.com/nfrund/gallery/internal/modules/gallery"
	"github.com/nfrund/gallery/internal/modules/live"
	"github.com/nfrund/gallery/internal/pubsub"
	"github.com/nfrund/gallery/internal/registry"
	"github.com/nfrund/gallery/internal/remote"
	"github.com/nfrund/gallery/internal/remote/remotetest"
	"github.com/nfrund/gallery/internal/rendering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCredential = "test-token"

func TestLiveUpdates(t *testing.T) {
	stub := remotetest.New(testCredential, remotetest.User{ID: "me", Name: "Jacques", About: "Explorer"})
	stub.AppendCard(remotetest.Card{ID: "lake", Name: "Lake", Link: "https://x/lake.jpg"})
	api := httptest.NewServer(stub.Handler())
	defer api.Close()

	client, err := remote.New(api.URL, remote.NewSession(testCredential), remote.Options{})
	require.NoError(t, err)

	ps := pubsub.NewWatermillBridge()
	defer ps.Close()
	renderer := rendering.NewUniversalRenderer()

	galleryModule := gallerymod.New(gallerymod.Dependencies{Remote: client, Publisher: ps, Renderer: renderer})
	liveModule := live.New(live.Dependencies{Subscriber: ps, Renderer: renderer})

	e := echo.New()
	reg := registry.New(&config.Config{})
	require.NoError(t, galleryModule.Register(reg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, galleryModule.Boot(ctx, e.Group(""), reg))
	require.NoError(t, liveModule.Boot(ctx, e.Group(""), reg))
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		assert.NoError(t, liveModule.Shutdown(shutdownCtx))
		assert.NoError(t, galleryModule.Shutdown(shutdownCtx))
	}()

	s := galleryModule.Synchronizer()
	require.Eventually(t, func() bool {
		_, loaded := s.Profile()
		return loaded && len(s.Cards()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	srv := httptest.NewServer(e)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + live.Path
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	require.NoError(t, err, "Failed to connect to live websocket")
	defer conn.Close()

	require.Eventually(t, func() bool { return liveModule.Hub().Len(ctx) == 1 }, 2*time.Second, 10*time.Millisecond)

	_, err = s.ToggleLike(ctx, "lake")
	require.NoError(t, err)

	// Earlier load events may still be in flight; read until the like shows.
	deadline := time.Now().Add(3 * time.Second)
	for {
		require.NoError(t, conn.SetReadDeadline(deadline))
		_, p, err := conn.ReadMessage()
		require.NoError(t, err, "Failed to read live update")

		msg := string(p)
		assert.Contains(t, msg, `id="profile" hx-swap-oob="true"`)
		assert.Contains(t, msg, `id="cards" hx-swap-oob="true"`)
		if strings.Contains(msg, "like_active") {
			break
		}
	}
}
