// Package meshserver serves voxel meshes over HTTP and websockets.
package meshserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/voxelmesh/pkg/formats"
	"github.com/Faultbox/voxelmesh/pkg/voxel"
)

// ErrTooManyCells is returned for requests larger than the configured limit.
var ErrTooManyCells = errors.New("grid exceeds server cell limit")

// Options configures a Server.
type Options struct {
	Defaults     voxel.Params
	MaxCells     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server builds meshes on request.
type Server struct {
	opts     Options
	log      *zap.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// New creates a server. A nil logger discards output.
func New(opts Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		opts: opts,
		log:  log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/mesh", s.handleMesh)
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// build validates and runs one request.
func (s *Server) build(req BuildRequest) (*voxel.Mesh, voxel.Stats, error) {
	p := req.params(s.opts.Defaults)
	if err := p.Validate(); err != nil {
		return nil, voxel.Stats{}, err
	}
	if s.opts.MaxCells > 0 && p.Dims.Cells() > s.opts.MaxCells {
		return nil, voxel.Stats{}, fmt.Errorf("%w: %s > %d cells", ErrTooManyCells, p.Dims, s.opts.MaxCells)
	}

	mesh, stats, err := voxel.BuildWithStats(p)
	if err != nil {
		return nil, stats, err
	}
	s.log.Debug("mesh built",
		zap.Stringer("dims", p.Dims),
		zap.Int64("seed", p.Seed),
		zap.Int("triangles", stats.Triangles),
		zap.Duration("took", stats.Total()))
	return mesh, stats, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleMesh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	var ff formats.Format
	if format != "json" {
		if ff, err = formats.ParseFormat(format); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	mesh, stats, err := s.build(req)
	if err != nil {
		s.log.Warn("mesh request rejected", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if format == "json" {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newMeshMessage(mesh, stats)); err != nil {
			s.log.Warn("write mesh", zap.Error(err))
		}
		return
	}

	var buf bytes.Buffer
	if err := ff.Write(&buf, "voxelmesh", mesh); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ff.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="voxelmesh`+ff.Extension()+`"`)
	w.Write(buf.Bytes())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	log := s.log.With(zap.String("remote", r.RemoteAddr))
	log.Debug("client connected")

	// Requests are handled one at a time, so writes never interleave.
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read", zap.Error(err))
			}
			break
		}

		var msg MeshMessage
		var req BuildRequest
		if err := json.Unmarshal(data, &req); err != nil {
			msg = errorMessage(fmt.Errorf("decode request: %w", err))
		} else if mesh, stats, err := s.build(req); err != nil {
			msg = errorMessage(err)
		} else {
			msg = newMeshMessage(mesh, stats)
		}

		if err := conn.WriteJSON(msg); err != nil {
			log.Warn("websocket write", zap.Error(err))
			break
		}
	}
	log.Debug("client disconnected")
}
