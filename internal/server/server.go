// Package server exposes session operations as MCP tools.
package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/sapgui-cli/internal/prompt"
	"github.com/mj1618/sapgui-cli/internal/session"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	// Window is the default window for window-level tools.
	Window string
	// Session is the title used when a tool call names none.
	Session string
	Version string
}

// Server wraps the MCP server with the session selector and cache.
type Server struct {
	selector *session.Selector
	cache    *SessionCache
	host     *hostWorker
	cfg      Config
	logger   *log.Logger
	mcp      *mcpserver.MCPServer
}

// New creates and configures an MCP server with all sapgui-cli tools.
func New(selector *session.Selector, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Window == "" {
		cfg.Window = session.RootWindow
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	s := &Server{
		selector: selector,
		cache:    NewSessionCache(cfg.CacheTTL),
		host:     newHostWorker(),
		cfg:      cfg,
		logger:   logger,
	}
	s.mcp = mcpserver.NewMCPServer("sapgui-cli", cfg.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve() error {
	defer s.Close()
	switch s.cfg.Transport {
	case "", "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

// Close stops the host worker. Tool calls made afterwards fail.
func (s *Server) Close() {
	s.host.stop()
}

// attach resolves title (or the configured default) to a controller. A
// stale cached descriptor triggers one fresh discovery. The caller must
// run on the host worker.
func (s *Server) attach(title string) (*session.Controller, error) {
	if title == "" {
		title = s.cfg.Session
	}
	for attempt := 0; attempt < 2; attempt++ {
		sessions, err := s.cache.Sessions(s.selector.Discover)
		if err != nil {
			return nil, err
		}
		chosen, ok, err := prompt.Static{Title: title}.Choose("", sessions.Titles())
		if err != nil {
			if attempt == 0 {
				s.cache.Invalidate()
				continue
			}
			return nil, err
		}
		if !ok {
			return nil, prompt.ErrCancelled
		}
		ctl, err := s.selector.Attach(chosen, sessions[chosen])
		if errors.Is(err, session.ErrStaleSession) && attempt == 0 {
			s.logger.Debug("cached session is stale, rediscovering", "title", chosen)
			s.cache.Invalidate()
			continue
		}
		return ctl, err
	}
	return nil, session.ErrStaleSession
}

func (s *Server) registerTools() {
	sessionParam := mcp.WithString("session", mcp.Description("Session window title (default: configured session, or the only one)"))
	windowParam := mcp.WithString("window", mcp.Description("Window id, e.g. wnd[0] (default: configured window)"))
	idParam := mcp.WithString("id", mcp.Description("Element id, e.g. wnd[0]/usr/txtRSYST-BNAME"), mcp.Required())

	s.mcp.AddTool(
		mcp.NewTool("sessions",
			mcp.WithDescription("List the scripting sessions that are not busy, keyed by window title"),
		),
		s.handleSessions,
	)

	s.mcp.AddTool(
		mcp.NewTool("press",
			mcp.WithDescription("Activate an element: press a button, set a checkbox, select a radio button, tab or menu, or focus a label"),
			sessionParam, idParam,
			mcp.WithBoolean("check", mcp.Description("Checkbox state to set (default: true)")),
		),
		s.stepHandler("press"),
	)

	s.mcp.AddTool(
		mcp.NewTool("insert",
			mcp.WithDescription("Write a value into a text field or select a combo box key"),
			sessionParam, idParam,
			mcp.WithString("value", mcp.Description("Value to write"), mcp.Required()),
		),
		s.stepHandler("insert"),
	)

	s.mcp.AddTool(
		mcp.NewTool("vkey",
			mcp.WithDescription("Send a virtual key to a window: enter, f2, f3, f8, save, pageup or pagedown"),
			sessionParam, windowParam,
			mcp.WithString("key", mcp.Description("Key name or code (default: enter)")),
		),
		s.stepHandler("vkey"),
	)

	s.mcp.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Read the status bar of a window"),
			sessionParam, windowParam,
		),
		s.stepHandler("status"),
	)

	s.mcp.AddTool(
		mcp.NewTool("start_transaction",
			mcp.WithDescription("Start a transaction by code"),
			sessionParam,
			mcp.WithString("code", mcp.Description("Transaction code, e.g. MM03"), mcp.Required()),
		),
		s.stepHandler("start"),
	)

	s.mcp.AddTool(
		mcp.NewTool("end_transaction",
			mcp.WithDescription("End the running transaction"),
			sessionParam,
		),
		s.stepHandler("end"),
	)

	s.mcp.AddTool(
		mcp.NewTool("verify",
			mcp.WithDescription("Check whether an element exists"),
			sessionParam, idParam,
		),
		s.stepHandler("verify"),
	)

	s.mcp.AddTool(
		mcp.NewTool("get_text",
			mcp.WithDescription("Read the Text property of an element"),
			sessionParam, idParam,
		),
		s.stepHandler("text"),
	)

	s.mcp.AddTool(
		mcp.NewTool("confirm",
			mcp.WithDescription("Press a button (element id) or send a key to a window (window id) and report whether the screen changed"),
			sessionParam,
			mcp.WithString("id", mcp.Description("Button or window id (default: configured window)")),
			mcp.WithString("key", mcp.Description("Key sent when id is a window (default: enter)")),
		),
		s.stepHandler("confirm"),
	)

	s.mcp.AddTool(
		mcp.NewTool("grid_scrape",
			mcp.WithDescription("Read columns for every row of a grid view, scrolling it as needed"),
			sessionParam, idParam,
			mcp.WithString("columns", mcp.Description("Comma-separated column names"), mcp.Required()),
		),
		s.stepHandler("grid-scrape"),
	)

	s.mcp.AddTool(
		mcp.NewTool("do",
			mcp.WithDescription("Execute multiple steps in a batch. Each step is an object with one action key: "+joinActions()),
			sessionParam, windowParam,
			mcp.WithArray("steps", mcp.Description("Array of step objects"), mcp.Required()),
			mcp.WithBoolean("stop-on-error", mcp.Description("Stop on first error (default: true)")),
		),
		s.handleDo,
	)
}
