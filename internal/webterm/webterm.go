// Package webterm connects a browser terminal to a game session over a
// websocket. The browser sends key bytes as binary messages and its terminal
// size as a JSON text message; the game's ANSI output travels back as binary
// messages.
package webterm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	defaultCols = 80
	defaultRows = 24

	writeWait      = 5 * time.Second
	maxMessageSize = 4096
)

// Resize is the control message a browser sends whenever its terminal
// changes size.
type Resize struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// Conn is one browser terminal. It reads like the keyboard and writes like
// the screen.
type Conn struct {
	ws    *websocket.Conn
	keys  *io.PipeReader
	keysW *io.PipeWriter
	done  chan struct{}

	writeMu sync.Mutex

	sizeMu sync.RWMutex
	cols   int
	rows   int
}

// NewConn starts reading from ws.
func NewConn(ws *websocket.Conn) *Conn {
	pr, pw := io.Pipe()
	c := &Conn{
		ws:    ws,
		keys:  pr,
		keysW: pw,
		done:  make(chan struct{}),
		cols:  defaultCols,
		rows:  defaultRows,
	}
	ws.SetReadLimit(maxMessageSize)
	go c.readPump()
	return c
}

func (c *Conn) readPump() {
	defer close(c.done)
	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			c.keysW.CloseWithError(err)
			return
		}
		switch kind {
		case websocket.BinaryMessage:
			if _, err := c.keysW.Write(data); err != nil {
				return
			}
		case websocket.TextMessage:
			var r Resize
			if err := json.Unmarshal(data, &r); err == nil && r.Cols > 0 && r.Rows > 0 {
				c.sizeMu.Lock()
				c.cols, c.rows = r.Cols, r.Rows
				c.sizeMu.Unlock()
			}
		}
	}
}

// Read returns key bytes typed in the browser.
func (c *Conn) Read(p []byte) (int, error) {
	return c.keys.Read(p)
}

// Write sends p to the browser as one binary message.
func (c *Conn) Write(p []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Size reports the browser terminal size; it satisfies draw.TermSizeFunc.
func (c *Conn) Size() (int, int, error) {
	c.sizeMu.RLock()
	defer c.sizeMu.RUnlock()
	return c.cols, c.rows, nil
}

// Done is closed once the browser side has gone away.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Close says goodbye to the browser and drops the connection.
func (c *Conn) Close() error {
	c.writeMu.Lock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"),
		time.Now().Add(writeWait))
	c.writeMu.Unlock()
	c.keys.Close()
	return c.ws.Close()
}

// Handler upgrades each request and runs Play on the resulting Conn.
type Handler struct {
	Upgrader websocket.Upgrader
	Logger   *log.Logger
	// Play runs one session; ctx is cancelled when the browser disconnects.
	Play func(ctx context.Context, c *Conn) error
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ws, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered with an HTTP error.
		logger.Debug("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	c := NewConn(ws)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-c.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Info("browser session started", "remote", r.RemoteAddr)
	if err := h.Play(ctx, c); err != nil {
		logger.Error("browser session failed", "remote", r.RemoteAddr, "err", err)
	}
	logger.Info("browser session ended", "remote", r.RemoteAddr)
}
