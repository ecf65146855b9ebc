// Package ops serves the operational HTTP surface: health, version and
// tool status endpoints, plus the streamable MCP endpoint when the
// server runs in HTTP mode.
package ops

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/open-cli-collective/opencli-mcp/internal/system"
	"github.com/open-cli-collective/opencli-mcp/internal/tools"
	appver "github.com/open-cli-collective/opencli-mcp/internal/version"
)

type Server struct {
	Addr string
	Rec  *tools.Reconciler
	MCP  http.Handler // streamable MCP endpoint; nil disables /mcp
}

// toolRow is the wire shape of one registry entry.
type toolRow struct {
	ID          tools.ToolID `json:"id"`
	DisplayName string       `json:"display_name"`
	Binary      string       `json:"binary"`
	Summary     string       `json:"summary"`
	Source      tools.Source `json:"source"`
}

func (s *Server) Start(ctx context.Context) error {
	r := s.routes()
	srv := &http.Server{Addr: s.Addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	system.Logger.Info("ops server listening", "addr", s.Addr)
	return srv.ListenAndServe()
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", gin.WrapF(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	api.GET("/version", gin.WrapF(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": appver.AppVersion})
	}))
	api.GET("/tools", gin.WrapF(s.toolsHandler))
	api.GET("/tools/status", gin.WrapF(s.statusHandler))
	api.GET("/updates", gin.WrapF(s.updatesHandler))
	api.POST("/updates", gin.WrapF(s.applyHandler))

	if s.MCP != nil {
		r.Any("/mcp", gin.WrapH(s.MCP))
	}
	return r
}

func (s *Server) toolsHandler(w http.ResponseWriter, req *http.Request) {
	ds := s.Rec.Registry().Descriptors()
	rows := make([]toolRow, len(ds))
	for i, d := range ds {
		rows[i] = toolRow{
			ID:          d.ID,
			DisplayName: d.DisplayName,
			Binary:      d.Binary,
			Summary:     d.Summary,
			Source:      d.Source,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": rows})
}

func (s *Server) statusHandler(w http.ResponseWriter, req *http.Request) {
	withLatest := req.URL.Query().Get("latest") == "1"
	sts := s.Rec.StatusAll(req.Context(), withLatest)
	writeJSON(w, http.StatusOK, map[string]any{"tools": sts})
}

func (s *Server) updatesHandler(w http.ResponseWriter, req *http.Request) {
	cands, err := s.Rec.CheckUpdates(req.Context(), nil)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errJSON(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": cands})
}

// applyHandler upgrades the requested tools, or every tool with a newer
// version when the body names none.
func (s *Server) applyHandler(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Tools []tools.ToolID `json:"tools"`
	}
	if req.Body != nil {
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil && err != io.EOF {
			writeJSON(w, http.StatusBadRequest, errJSON(err))
			return
		}
	}
	cands, err := s.Rec.ApplyUpdates(req.Context(), body.Tools)
	if err != nil {
		var unknown *tools.UnknownToolError
		if errors.As(err, &unknown) {
			writeJSON(w, http.StatusBadRequest, errJSON(err))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errJSON(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": cands})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func errJSON(err error) map[string]string { return map[string]string{"error": err.Error()} }
