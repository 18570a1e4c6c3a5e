package httpapi

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/jose-valero/discord-interactions-demo/internal/adapters/discord"
	"github.com/jose-valero/discord-interactions-demo/internal/domain"
	"github.com/jose-valero/discord-interactions-demo/internal/observability"
)

const maxBody = 1 << 20

// Lo implementa internal/adapters/discord.Handler
type InteractionHandler interface {
	Accepts(ic *discordgo.Interaction) bool
	Handle(ctx context.Context, ic *discordgo.Interaction, raw json.RawMessage) *discordgo.InteractionResponse
}

// Lo implementa internal/infra/storage.RecallStore
type RecallReader interface {
	Lookup(id string) (domain.InteractionRecord, error)
	Len() int
}

type Server struct {
	publicKey ed25519.PublicKey
	handler   InteractionHandler
	recall    RecallReader
	metrics   *observability.Metrics
	recallMW  []func(http.Handler) http.Handler // límite opcional en GET /interactions/{id}
	log       *slog.Logger
	router    http.Handler
	lambda    *httpadapter.HandlerAdapterV2
}

type Option func(*Server)

// WithRecallRateLimit limita las lecturas del registro a una cada window por IP.
func WithRecallRateLimit(window time.Duration) Option {
	return func(s *Server) {
		if window > 0 {
			s.recallMW = append(s.recallMW, httprate.Limit(1, window,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
					respondError(w, http.StatusTooManyRequests, "rate_limited", "slow down")
				}),
			))
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

func New(publicKey ed25519.PublicKey, handler InteractionHandler, recall RecallReader, metrics *observability.Metrics, opts ...Option) *Server {
	s := &Server{
		publicKey: publicKey,
		handler:   handler,
		recall:    recall,
		metrics:   metrics,
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetrics(nil, "")
	}
	s.router = s.routes()
	s.lambda = newLambdaAdapter(s.router)
	return s
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)

	r.Post("/interactions", s.handleInteraction)
	r.With(s.recallMW...).Get("/interactions/{id}", s.handleRecall)
	r.Get("/metadata", s.handleMetadata)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())
	return r
}

func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	// leemos primero para distinguir un body enorme de una firma inválida
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.metrics.InteractionsRejected.WithLabelValues("too_large").Inc()
			respondError(w, http.StatusRequestEntityTooLarge, "body_too_large", err.Error())
			return
		}
		s.metrics.InteractionsRejected.WithLabelValues("body").Inc()
		respondError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	if !discordgo.VerifyInteraction(r, s.publicKey) {
		s.metrics.InteractionsRejected.WithLabelValues("signature").Inc()
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		return
	}

	var ic discordgo.Interaction
	if err := json.Unmarshal(body, &ic); err != nil {
		s.metrics.InteractionsRejected.WithLabelValues("decode").Inc()
		respondError(w, http.StatusBadRequest, "invalid_interaction", err.Error())
		return
	}

	// handshake de Discord
	if ic.Type == discordgo.InteractionPing {
		respondJSON(w, http.StatusOK, discord.Pong())
		return
	}

	if !s.handler.Accepts(&ic) {
		s.metrics.InteractionsRejected.WithLabelValues("unsupported").Inc()
		s.log.Warn("unsupported interaction", "id", ic.ID, "type", discord.TypeName(ic.Type))
		respondError(w, http.StatusBadRequest, "unsupported_interaction", "interaction not routed to this handler")
		return
	}

	start := time.Now()
	resp := s.handler.Handle(r.Context(), &ic, body)
	s.metrics.ObserveHandle(time.Since(start))
	s.metrics.InteractionsHandled.WithLabelValues(discord.TypeName(ic.Type), strconv.Itoa(int(resp.Type))).Inc()

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecall(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_interaction_id", "missing interaction id")
		return
	}

	rec, err := s.recall.Lookup(id)
	s.metrics.RecallRecords.Set(float64(s.recall.Len()))
	if errors.Is(err, domain.ErrInteractionNotFound) {
		s.metrics.RecallLookups.WithLabelValues("miss").Inc()
		respondError(w, http.StatusNotFound, "interaction_not_found", err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	s.metrics.RecallLookups.WithLabelValues("hit").Inc()
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleMetadata(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, discord.Describe())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"recall_records": s.recall.Len(),
	})
}

// Start sirve en addr hasta que ctx se cancele; luego apaga con gracia.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("http shutting down")
	return srv.Shutdown(shCtx)
}
