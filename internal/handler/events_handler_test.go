package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ministerio-antioquia/antioquia-api/internal/realtime"
)

func readFrame(t *testing.T, reader *bufio.Reader) string {
	t.Helper()
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if strings.HasPrefix(line, "data: ") {
			return strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestEventsStreamDeliversFrames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	broker := realtime.NewBroker(nil)
	router := gin.New()
	router.GET("/events", NewEventsHandler(broker, nil).Stream)

	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	require.JSONEq(t, `{"type":"connected"}`, readFrame(t, reader))
	require.Equal(t, 1, broker.Subscribers())

	broker.Publish(realtime.Event{
		Type:    realtime.EventNewSuggestion,
		Payload: map[string]string{"id": "sug-1"},
	})
	frame := readFrame(t, reader)
	require.Contains(t, frame, realtime.EventNewSuggestion)
	require.Contains(t, frame, "sug-1")
}

func TestEventsStreamEndsOnShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	broker := realtime.NewBroker(nil)
	router := gin.New()
	router.GET("/events", NewEventsHandler(broker, nil).Stream)

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readFrame(t, reader)

	broker.Shutdown()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, err := reader.ReadString('\n'); err != nil {
				return
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not close after broker shutdown")
	}
}
