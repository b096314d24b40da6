package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"archipelago/internal/island"
	"archipelago/internal/migration"
	"archipelago/internal/platform/metrics"
	"archipelago/internal/platform/middleware"
	"archipelago/internal/topology"
	dErrors "archipelago/pkg/domain-errors"
	"archipelago/pkg/platform/httputil"
)

// Service is the archipelago surface exposed over HTTP.
type Service interface {
	Size() int
	Status() island.Status
	Evolve(n uint) error
	WaitCheck() error
	Island(i int) (*island.Island, error)
	ChampionsF() ([][]float64, error)
	ChampionsX() ([][]float64, error)
	MigrantsDB() []migration.Group
	IslandConnections(i int) (topology.Connections, error)
	Topology() topology.Topology
	String() string
}

// Checkpointer saves and restores named snapshots.
type Checkpointer interface {
	Save(ctx context.Context, key string) error
	Restore(ctx context.Context, key string) error
	List(ctx context.Context) ([]string, error)
}

// Handler serves the archipelago control and introspection API.
type Handler struct {
	logger    *slog.Logger
	archi     Service
	snapshots Checkpointer
	metrics   *metrics.Metrics
}

// New creates a Handler. snapshots may be nil, in which case the snapshot
// routes are not registered.
func New(archi Service, snapshots Checkpointer, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		archi:     archi,
		snapshots: snapshots,
		metrics:   m,
	}
}

// Register registers the archipelago routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	ar := chi.NewRouter()
	ar.Use(middleware.Recovery(h.logger))
	ar.Use(middleware.RequestID)
	ar.Use(middleware.Logger(h.logger))
	ar.Use(middleware.ContentTypeJSON)
	ar.Use(middleware.Latency(h.metrics))

	ar.Get("/archipelago", h.handleSummary)
	ar.Get("/archipelago/status", h.handleStatus)
	ar.Post("/archipelago/evolve", h.handleEvolve)
	ar.Post("/archipelago/wait", h.handleWait)
	ar.Get("/archipelago/champions", h.handleChampions)
	ar.Get("/archipelago/migrants", h.handleMigrants)
	ar.Get("/archipelago/islands/{ordinal}", h.handleIsland)
	ar.Get("/archipelago/islands/{ordinal}/connections", h.handleConnections)
	if h.snapshots != nil {
		ar.Get("/archipelago/snapshots", h.handleListSnapshots)
		ar.Put("/archipelago/snapshots/{key}", h.handleSaveSnapshot)
		ar.Post("/archipelago/snapshots/{key}/restore", h.handleRestoreSnapshot)
	}

	r.Mount("/", ar)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	db := h.archi.MigrantsDB()
	migrants := make([]int, len(db))
	for i, g := range db {
		migrants[i] = g.Len()
	}
	httputil.WriteJSON(w, http.StatusOK, &SummaryResponse{
		Islands:  h.archi.Size(),
		Status:   h.archi.Status(),
		Topology: h.archi.Topology().Name(),
		Migrants: migrants,
		Dump:     h.archi.String(),
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, &StatusResponse{Status: h.archi.Status()})
}

func (h *Handler) handleEvolve(w http.ResponseWriter, r *http.Request) {
	n := uint64(1)
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "invalid cycle count %q", raw))
			return
		}
		n = v
	}
	if err := h.archi.Evolve(uint(n)); err != nil {
		h.logger.WarnContext(r.Context(), "evolve rejected",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, &StatusResponse{Status: h.archi.Status()})
}

// handleWait blocks until every island is idle. A recorded fault is reported
// in the body rather than as an error status: the request itself succeeded.
func (h *Handler) handleWait(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	err := h.archi.WaitCheck()
	resp := &WaitResponse{
		Status:     h.archi.Status(),
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		resp.Fault = err.Error()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleChampions(w http.ResponseWriter, r *http.Request) {
	fs, err := h.archi.ChampionsF()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	xs, err := h.archi.ChampionsX()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &ChampionsResponse{F: fs, X: xs})
}

func (h *Handler) handleMigrants(w http.ResponseWriter, r *http.Request) {
	db := h.archi.MigrantsDB()
	out := make([]MigrantSlot, len(db))
	for i, g := range db {
		out[i] = MigrantSlot{Ordinal: i, Count: g.Len(), IDs: g.IDs()}
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleIsland(w http.ResponseWriter, r *http.Request) {
	ordinal, err := ordinalParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	isl, err := h.archi.Island(ordinal)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	pop := isl.Population()
	resp := &IslandResponse{
		Ordinal:        ordinal,
		ID:             isl.ID().String(),
		Status:         isl.Status(),
		Algorithm:      isl.Algorithm().Name(),
		Problem:        pop.Problem().Name(),
		PopulationSize: pop.Size(),
		MigrationRate:  isl.MigrationRate(),
	}
	if err := isl.Fault(); err != nil {
		resp.Fault = err.Error()
	}
	if x, err := pop.ChampionX(); err == nil {
		resp.ChampionX = x
		resp.ChampionF, _ = pop.ChampionF()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleConnections(w http.ResponseWriter, r *http.Request) {
	ordinal, err := ordinalParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	conns, err := h.archi.IslandConnections(ordinal)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &ConnectionsResponse{
		Ordinal: ordinal,
		Sources: conns.Sources,
		Weights: conns.Weights,
	})
}

func (h *Handler) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	keys, err := h.snapshots.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list snapshots", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &SnapshotListResponse{Keys: keys})
}

func (h *Handler) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.snapshots.Save(r.Context(), key); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to save snapshot",
			"key", key,
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.snapshots.Restore(r.Context(), key); err != nil {
		h.logger.WarnContext(r.Context(), "failed to restore snapshot",
			"key", key,
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &StatusResponse{Status: h.archi.Status()})
}

func ordinalParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "ordinal")
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeBadRequest, "invalid ordinal %q", raw)
	}
	return v, nil
}
