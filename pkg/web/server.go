// Package web provides a real-time preview server for a processing run:
// annotated frames and match results streamed over websockets, plus a
// small REST surface for status and recent results.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/libcompanion/companion-go/internal/log"
	"github.com/libcompanion/companion-go/pkg/companion"
	"github.com/libcompanion/companion-go/pkg/hub"
)

// maxResults bounds the in-memory result history.
const maxResults = 200

// PipelineStatus is the state of the processing run as shown to preview
// clients.
type PipelineStatus struct {
	Running    bool   `json:"running"`
	Source     string `json:"source"`
	Models     int    `json:"models"`
	Frames     int    `json:"frames"`
	Detections int    `json:"detections"`
	Clients    int    `json:"clients"`
}

// ResultEntry is one frame's worth of results in the history.
type ResultEntry struct {
	ID      string             `json:"id"`
	Time    string             `json:"time"`
	Frame   int                `json:"frame"`
	Results []companion.Result `json:"results"`
}

// Server is the preview server.
type Server struct {
	app  *fiber.App
	port string

	status   PipelineStatus
	statusMu sync.RWMutex

	results   []ResultEntry
	resultsMu sync.RWMutex

	// Hubs for websocket broadcast.
	statusHub *hub.Hub
	frameHub  *hub.Hub
	resultHub *hub.Hub
}

// NewServer creates a preview server listening on the given port.
func NewServer(port string) *Server {
	s := &Server{
		port:      port,
		results:   make([]ResultEntry, 0, maxResults),
		statusHub: hub.New("status"),
		frameHub:  hub.New("frames"),
		resultHub: hub.New("results"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Companion Preview",
		DisableStartupMessage: true,
	})

	// CORS for local development.
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/results", s.handleResults)

	// WebSocket upgrade middleware.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/frames", websocket.New(s.handleFrameWS))
	app.Get("/ws/results", websocket.New(s.handleResultWS))

	s.app = app
	return s
}

// Start runs the hubs and serves until Shutdown.
func (s *Server) Start() error {
	log.Info("preview server listening", "addr", "http://localhost:"+s.port)

	go s.statusHub.Run()
	go s.frameHub.Run()
	go s.resultHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("preview server stopped", "error", err)
		}
	}()
}

// UpdateStatus mutates the pipeline status, refreshes the preview
// client count and broadcasts the result.
func (s *Server) UpdateStatus(update func(*PipelineStatus)) {
	s.statusMu.Lock()
	update(&s.status)
	s.status.Clients = s.FrameClientCount()
	status := s.status
	s.statusMu.Unlock()

	s.statusHub.BroadcastJSON(status)
}

// PublishFrame records one processed frame: the frame is annotated with
// the result rectangles, JPEG-encoded and broadcast to frame clients,
// and the results are appended to the history and broadcast to result
// clients. The frame itself is not retained.
func (s *Server) PublishFrame(frame gocv.Mat, frameNo int, results []companion.Result) {
	if jpeg, ok := encodeAnnotated(frame, results); ok {
		s.frameHub.BroadcastBinary(jpeg)
	}

	if len(results) == 0 {
		return
	}

	entry := ResultEntry{
		ID:      uuid.NewString(),
		Time:    time.Now().Format("15:04:05.000"),
		Frame:   frameNo,
		Results: results,
	}

	s.resultsMu.Lock()
	s.results = append(s.results, entry)
	if len(s.results) > maxResults {
		s.results = s.results[1:]
	}
	s.resultsMu.Unlock()

	s.resultHub.BroadcastJSON(entry)
}

// FrameClientCount returns the number of connected frame clients.
func (s *Server) FrameClientCount() int {
	return s.frameHub.ClientCount()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
