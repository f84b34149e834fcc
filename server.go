package main

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bodul/crossword/internal/store"
	"github.com/bodul/crossword/internal/xword"
)

//go:embed frontend
var frontendFS embed.FS

// maxCandidatesSize caps the JSON body of a generate request. A large
// news-driven keyword batch is plausible; unbounded JSON is not. Adapted
// from the teacher's maxUploadSize image-size cap.
const maxCandidatesSize = 1 << 20

// rateLimiter is a simple per-IP token bucket rate limiter.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*bucket
	rate     int           // tokens per interval
	interval time.Duration // refill interval
}

type bucket struct {
	tokens   int
	lastSeen time.Time
}

func newRateLimiter(rate int, interval time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*bucket),
		rate:     rate,
		interval: interval,
	}
	// Cleanup stale entries every minute.
	go func() {
		for {
			time.Sleep(time.Minute)
			rl.mu.Lock()
			for ip, b := range rl.visitors {
				if time.Since(b.lastSeen) > 5*time.Minute {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.visitors[ip]
	if !ok {
		rl.visitors[ip] = &bucket{tokens: rl.rate - 1, lastSeen: time.Now()}
		return true
	}

	// Refill tokens based on elapsed time.
	elapsed := time.Since(b.lastSeen)
	refill := int(elapsed / rl.interval)
	if refill > 0 {
		b.tokens += refill * rl.rate
		if b.tokens > rl.rate {
			b.tokens = rl.rate
		}
		b.lastSeen = time.Now()
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// Server is the main HTTP server: the external interface of spec.md §6
// over internal/xword's producer/player operations.
type Server struct {
	mux       *http.ServeMux
	store     *store.Store
	clues     *ClueClient
	sse       *Broadcaster
	pool      *workerPool
	genRL     *rateLimiter
	checkRL   *rateLimiter
	synthSeed int64
}

// NewServer creates a configured HTTP server. clues may be nil, in which
// case the candidate-generation helper endpoint is disabled.
func NewServer(st *store.Store, clues *ClueClient) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		store:   st,
		clues:   clues,
		sse:     NewBroadcaster(),
		pool:    newWorkerPool(4),
		genRL:   newRateLimiter(5, time.Minute),  // 5 generations/min per IP
		checkRL: newRateLimiter(30, time.Minute), // 30 checks/min per IP
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/puzzles", s.handleGenerate)
	s.mux.HandleFunc("GET /api/puzzles", s.handleList)
	s.mux.HandleFunc("GET /api/puzzles/{id}", s.handleGet)
	s.mux.HandleFunc("DELETE /api/puzzles/{id}", s.handleDelete)
	s.mux.HandleFunc("POST /api/puzzles/{id}/check", s.handleCheck)
	s.mux.HandleFunc("GET /api/puzzles/{id}/hint", s.handleHint)

	s.mux.HandleFunc("POST /api/puzzles/jobs", s.handleGenerateAsync)
	s.mux.HandleFunc("GET /api/puzzles/jobs/{id}/events", s.handleJobEvents)

	s.mux.HandleFunc("POST /api/candidates", s.handleGenerateCandidates)

	frontendDir, _ := fs.Sub(frontendFS, "frontend")
	fileServer := http.FileServer(http.FS(frontendDir))
	s.mux.Handle("GET /", fileServer)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
	s.mux.ServeHTTP(w, r)
}

// synthesizeOptions builds the SynthesizeOptions every generate path
// shares, pinning the seed when the server was configured with one
// (SYNTH_SEED) so repeated requests are reproducible.
func (s *Server) synthesizeOptions() xword.SynthesizeOptions {
	return xword.SynthesizeOptions{Seed: s.synthSeed}
}

func newJobID() string {
	return uuid.NewString()
}

// generateRequest is the shared body shape of handleGenerate and
// handleGenerateAsync.
type generateRequest struct {
	Size           int               `json:"size"`
	CandidateWords []xword.Candidate `json:"candidate_words"`
}

// POST /api/puzzles — synthesize a grid and persist it. Dispatches the
// actual synthesis work to the worker pool so a burst of requests can't
// each spawn unbounded CPU work, but still answers synchronously: this
// is the external generate(size, candidates) -> record call of spec.md
// §6.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !s.genRL.allow(r.RemoteAddr) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCandidatesSize)
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.CandidateWords) == 0 {
		jsonError(w, "candidate_words must not be empty", http.StatusBadRequest)
		return
	}

	result, err := s.pool.Submit(r.Context(), func() (interface{}, error) {
		return xword.Build(req.CandidateWords, req.Size, s.synthesizeOptions())
	})
	if err != nil {
		writeXwordError(w, err)
		return
	}
	rec := result.(xword.Record)

	if err := s.store.Put(r.Context(), rec); err != nil {
		writeXwordError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{"id": rec.ID, "size": rec.Size}).Info("server: generated puzzle")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rec.Strip())
}

// POST /api/puzzles/jobs — start synthesis in the background and return
// a job id immediately; progress and completion are observed over
// GET /api/puzzles/jobs/{id}/events. Useful for large grids where a
// caller wants to watch attempts land rather than block on the request.
func (s *Server) handleGenerateAsync(w http.ResponseWriter, r *http.Request) {
	if !s.genRL.allow(r.RemoteAddr) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCandidatesSize)
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.CandidateWords) == 0 {
		jsonError(w, "candidate_words must not be empty", http.StatusBadRequest)
		return
	}

	jobID := newJobID()
	go s.runGenerateJob(jobID, req)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"job_id": jobID})
}

// runGenerateJob runs on its own goroutine, dispatching to the same
// worker pool as the synchronous path and broadcasting progress to any
// SSE clients watching jobID.
func (s *Server) runGenerateJob(jobID string, req generateRequest) {
	opts := s.synthesizeOptions()
	opts.OnAttempt = func(attempt int, density float64, wordCount int) {
		evt, _ := json.Marshal(map[string]any{
			"type": "attempt", "attempt": attempt, "density": density, "wordCount": wordCount,
		})
		s.sse.Broadcast(jobID, string(evt))
	}

	ctx := context.Background()
	result, err := s.pool.Submit(ctx, func() (interface{}, error) {
		n := xword.ClampSize(req.Size)
		grid, placed, err := xword.Synthesize(req.CandidateWords, n, opts)
		if err != nil {
			return nil, err
		}
		numbered := xword.Number(grid, placed)
		rec := xword.Export(uuid.NewString(), time.Now(), n, grid, numbered)
		return rec, nil
	})
	if err != nil {
		evt, _ := json.Marshal(map[string]string{"type": "failed", "error": err.Error()})
		s.sse.Broadcast(jobID, string(evt))
		return
	}
	rec := result.(xword.Record)

	if err := s.store.Put(ctx, rec); err != nil {
		evt, _ := json.Marshal(map[string]string{"type": "failed", "error": err.Error()})
		s.sse.Broadcast(jobID, string(evt))
		return
	}

	evt, _ := json.Marshal(map[string]string{"type": "done", "puzzle_id": rec.ID})
	s.sse.Broadcast(jobID, string(evt))
}

// GET /api/puzzles/jobs/{id}/events — SSE stream of one job's progress.
func (s *Server) handleJobEvents(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	s.sse.ServeSSE(w, r, jobID, nil, nil)
}

// GET /api/puzzles — list every stored puzzle's summary.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		writeXwordError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// GET /api/puzzles/{id} — get a single puzzle, answers stripped.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeXwordError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// DELETE /api/puzzles/{id} — remove a puzzle.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeXwordError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/puzzles/{id}/check — grade a set of submitted answers.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if !s.checkRL.allow(r.RemoteAddr) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}

	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.store.Check(r.Context(), r.PathValue("id"), req.Answers)
	if err != nil {
		writeXwordError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GET /api/puzzles/{id}/hint?number=&orientation= — reveal the first
// letter of one clue's answer.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(r.URL.Query().Get("number"))
	if err != nil {
		jsonError(w, "number must be an integer", http.StatusBadRequest)
		return
	}
	orientation, err := xword.ParseOrientation(r.URL.Query().Get("orientation"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.store.Hint(r.Context(), r.PathValue("id"), number, orientation)
	if err != nil {
		writeXwordError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// POST /api/candidates — ask the configured clue client for candidate
// answer/clue pairs drawn from an article body.
func (s *Server) handleGenerateCandidates(w http.ResponseWriter, r *http.Request) {
	if s.clues == nil {
		jsonError(w, "candidate generation not configured", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		ArticleRef string `json:"article_ref"`
		Body       string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Body == "" {
		jsonError(w, "field 'body' required", http.StatusBadRequest)
		return
	}

	candidates, err := s.clues.GenerateCandidates(r.Context(), req.ArticleRef, req.Body)
	if err != nil {
		logrus.WithError(err).Error("server: candidate generation failed")
		jsonError(w, "candidate generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(candidates)
}

// --- Helpers ---

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeXwordError maps an *xword.Error's Kind to an HTTP status code.
func writeXwordError(w http.ResponseWriter, err error) {
	switch xword.Kind(err) {
	case xword.KindNotFound:
		jsonError(w, err.Error(), http.StatusNotFound)
	case xword.KindUnknownClue:
		jsonError(w, err.Error(), http.StatusNotFound)
	case xword.KindBadRequest, xword.KindInvalidSize:
		jsonError(w, err.Error(), http.StatusBadRequest)
	case xword.KindInsufficientWords:
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}
