// gyrfalcon-server exposes the engine control surface over a WebSocket using the
// request/response protocol in pkg/protocol. It contains no engine logic of its own: it
// decodes one JSON message at a time, dispatches it, and writes back whatever responses
// Dispatch produces. An analyze request is dispatched on its own goroutine so that a
// later stop request on the same connection can still be read and acted on while the
// search streams its principal variations.
package main

import (
	"context"
	"flag"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/herohde/gyrfalcon/pkg/engine"
	"github.com/herohde/gyrfalcon/pkg/protocol"
	"github.com/seekerror/logw"
)

var (
	addr = flag.String("addr", ":8080", "Listen address")
	path = flag.String("path", "/ws", "WebSocket endpoint path")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func main() {
	flag.Parse()
	ctx := context.Background()

	logw.Infof(ctx, "GYRFALCON server listening on %v%v", *addr, *path)

	http.HandleFunc(*path, handleConn)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logw.Exitf(ctx, "server failed: %v", err)
	}
}

// connWriter serializes writes to a single WebSocket connection: gorilla/websocket
// forbids concurrent writers, and an analyze goroutine's streamed responses can otherwise
// race with a reply to a request handled directly on the read loop.
type connWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (w *connWriter) send(ctx context.Context, resp protocol.Response) {
	data, err := protocol.Encode(resp)
	if err != nil {
		logw.Errorf(ctx, "failed to encode response: %v", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		logw.Errorf(ctx, "failed to write response: %v", err)
	}
}

func handleConn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logw.Errorf(ctx, "upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	e := engine.New(ctx, "GYRFALCON", "gyrfalcon contributors")
	out := &connWriter{conn: conn}

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			logw.Debugf(ctx, "connection closed: %v", err)
			return
		}

		req, err := protocol.Decode(data)
		if err != nil {
			logw.Errorf(ctx, "malformed request: %v", err)
			continue
		}

		if req.Type == protocol.TypeAnalyze {
			wg.Add(1)
			go func(req protocol.Request) {
				defer wg.Done()
				protocol.Dispatch(ctx, e, req, func(resp protocol.Response) { out.send(ctx, resp) })
			}(req)
			continue
		}

		protocol.Dispatch(ctx, e, req, func(resp protocol.Response) { out.send(ctx, resp) })
	}
}
