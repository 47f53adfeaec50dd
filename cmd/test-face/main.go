// Watches the duck's face over the sentry's websocket and optionally
// cycles through every expression, for checking the avatar end to end:
//
//	go run ./cmd/test-face -sentry duckpi.local:5000 -cycle
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/debug-duck/go-duck/internal/httpc"
	"github.com/debug-duck/go-duck/pkg/duck"
)

func main() {
	host := flag.String("sentry", "localhost:5000", "sentry host:port")
	cycle := flag.Bool("cycle", false, "cycle through all expressions")
	flag.Parse()

	wsURL := url.URL{Scheme: "ws", Host: *host, Path: "/ws/face"}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect %s: %v\n", wsURL.String(), err)
		os.Exit(1)
	}
	defer conn.Close()
	fmt.Printf("watching face at %s\n", wsURL.String())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var frame struct {
				Expression string `json:"expression"`
			}
			if err := conn.ReadJSON(&frame); err != nil {
				fmt.Fprintf(os.Stderr, "read: %v\n", err)
				return
			}
			fmt.Printf("face: %s\n", frame.Expression)
		}
	}()

	if *cycle {
		go cycleExpressions(*host)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-done:
	case <-sig:
	}
}

// cycleExpressions posts each expression to the sentry in turn.
func cycleExpressions(host string) {
	for _, e := range duck.Expressions {
		payload, _ := json.Marshal(map[string]string{"emotion": e.String()})
		resp, err := httpc.Client.Post("http://"+host+"/emotion", "application/json", bytes.NewReader(payload))
		if err != nil {
			fmt.Fprintf(os.Stderr, "post %s: %v\n", e, err)
			return
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "post %s: status %d\n", e, resp.StatusCode)
		}
		time.Sleep(2 * time.Second)
	}
}
