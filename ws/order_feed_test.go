package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"laundrypos/notify"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderFeedBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := NewOrderFeed()
	go feed.Run(ctx)

	r := gin.New()
	r.GET("/ws/orders", feed.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/orders"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return feed.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	sent := notify.NewEvent(notify.OrderCreated, map[string]string{"receiptId": "RID-03072024-001"})
	require.NoError(t, feed.Publish(ctx, sent))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got struct {
		ID      string            `json:"id"`
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, sent.ID.String(), got.ID)
	assert.Equal(t, notify.OrderCreated, got.Type)
	assert.Equal(t, "RID-03072024-001", got.Payload["receiptId"])

	conn.Close()
	assert.Eventually(t, func() bool { return feed.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestPublishDropsWhenFeedIsFull(t *testing.T) {
	// no Run loop, so nothing drains the buffer
	feed := NewOrderFeed()
	ctx := context.Background()
	for i := 0; i < feedBuffer; i++ {
		require.NoError(t, feed.Publish(ctx, notify.NewEvent(notify.OrderCreated, i)))
	}

	returned := make(chan error, 1)
	go func() { returned <- feed.Publish(ctx, notify.NewEvent(notify.OrderCreated, "late")) }()
	select {
	case err := <-returned:
		assert.ErrorIs(t, err, ErrFeedBusy)
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full feed")
	}
}

func TestOrderFeedChecksOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := NewOrderFeed("https://pos.laundry.io")
	go feed.Run(ctx)

	r := gin.New()
	r.GET("/ws/orders", feed.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/orders"

	_, res, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://pos.laundry.io"}})
	require.NoError(t, err)
	conn.Close()
}
