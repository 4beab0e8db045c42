package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/irisfast"
)

// irischeck exercises the Iris bridge: fetches /config over HTTP, then watches
// the WebSocket event stream for a short window so inbound chat can be
// verified before pointing the bot at a room.
func main() {
	baseURL := strings.TrimSpace(os.Getenv("IRIS_BASE_URL"))
	wsURL := strings.TrimSpace(os.Getenv("IRIS_WS_URL"))
	if baseURL == "" {
		log.Fatal("IRIS_BASE_URL is required")
	}

	headers := authHeaders()

	client := irisfast.NewClient(baseURL,
		irisfast.WithHeaderProvider(headers),
		irisfast.WithTimeout(8*time.Second),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cfg, err := client.GetConfig(ctx)
	if err != nil {
		log.Printf("/config error: %v", err)
	} else {
		log.Printf("/config ok: port=%d polling=%d rate=%d endpoint=%s",
			cfg.Port, cfg.PollingSpeed, cfg.MessageRate, cfg.WebserverEndpoint)
	}

	if wsURL == "" {
		log.Println("IRIS_WS_URL not set; skipping WS check")
		return
	}

	ws := irisfast.NewWebSocket(wsURL, 5, time.Second)
	ws.SetHeaderProvider(headers)
	ws.OnStateChange(func(state irisfast.WebSocketState) {
		log.Printf("ws state: %s", state)
	})
	ws.OnMessage(func(msg *irisfast.Message) {
		from := "?"
		if msg.Sender != nil {
			from = *msg.Sender
		}
		log.Printf("ws msg room=%s from=%s text=%q", msg.Room, from, msg.Msg)
	})

	cctx, ccancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer ccancel()
	if err := ws.Connect(cctx); err != nil {
		log.Printf("ws connect error: %v", err)
		return
	}

	log.Println("watching the event stream for 10s")
	time.Sleep(10 * time.Second)

	_ = ws.Close(context.Background())
}

func authHeaders() irisfast.HeaderProvider {
	userID := strings.TrimSpace(os.Getenv("X_USER_ID"))
	userEmail := strings.TrimSpace(os.Getenv("X_USER_EMAIL"))
	sessionID := strings.TrimSpace(os.Getenv("X_SESSION_ID"))
	return func() map[string]string {
		h := map[string]string{}
		if userID != "" {
			h["X-User-Id"] = userID
		}
		if userEmail != "" {
			h["X-User-Email"] = userEmail
		}
		if sessionID != "" {
			h["X-Session-Id"] = sessionID
		}
		return h
	}
}
