package wordlehttp

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	wordleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/application"
	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	"github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/puzzledate"
	"github.com/Black-And-White-Club/wordle-bot/app/observability"
	"github.com/go-chi/chi/v5"
)

// MessageRequest is the body of POST /v1/messages.
type MessageRequest struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Chat   string `json:"chat,omitempty"`
}

// MessageResponse is returned when the message produced a reply.
type MessageResponse struct {
	Kind      string `json:"kind"`
	Reply     string `json:"reply"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// HealthCheck reports an unhealthy dependency by returning an error.
type HealthCheck func() error

// Handlers serves the wordle HTTP API.
type Handlers struct {
	service wordleservice.Service
	logger  *slog.Logger
	checks  map[string]HealthCheck
}

func NewHandlers(service wordleservice.Service, logger *slog.Logger, checks map[string]HealthCheck) *Handlers {
	return &Handlers{service: service, logger: logger, checks: checks}
}

// PostMessage handles one chat message the same way the CLI and NATS paths do.
func (h *Handlers) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reply, err := h.service.HandleMessage(r.Context(), wordledomain.Inbound{
		Sender: req.Sender,
		Text:   req.Text,
		Chat:   req.Chat,
	})
	switch {
	case errors.Is(err, wordleservice.ErrInvalidSubmission):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case errors.Is(err, puzzledate.ErrResolution):
		http.Error(w, "Could not resolve puzzle date", http.StatusBadGateway)
		return
	case err != nil:
		h.logger.ErrorContext(r.Context(), "Failed to handle message",
			observability.CorrelationAttr(r.Context()),
			slog.Any("error", err),
		)
		http.Error(w, "Failed to handle message", http.StatusInternalServerError)
		return
	}

	if reply.Empty() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Kind:      reply.Kind.String(),
		Reply:     reply.Text,
		Duplicate: reply.Duplicate,
	})
}

// GetDailyBoard renders the leaderboard of one puzzle as plain text.
func (h *Handlers) GetDailyBoard(w http.ResponseWriter, r *http.Request) {
	puzzle, err := strconv.Atoi(chi.URLParam(r, "puzzle"))
	if err != nil || puzzle < 0 {
		http.Error(w, "Invalid puzzle", http.StatusBadRequest)
		return
	}

	board, err := h.service.DailyBoard(r.Context(), puzzle)
	if err != nil {
		http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
		return
	}
	writeText(w, board.String())
}

// GetMonthlyBoard renders a month's point table, or the "No entries found" message.
// The month may be a name ("march") or a number ("3").
func (h *Handlers) GetMonthlyBoard(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}
	month, ok := parseMonthParam(chi.URLParam(r, "month"))
	if !ok {
		http.Error(w, "Invalid month", http.StatusBadRequest)
		return
	}

	text, err := h.service.MonthlyReport(r.Context(), month, year)
	if err != nil {
		http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
		return
	}
	writeText(w, text)
}

// Healthz runs every registered check.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{}
	healthy := true
	for name, check := range h.checks {
		if err := check(); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func parseMonthParam(s string) (time.Month, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, false
		}
		return time.Month(n), true
	}
	return wordledomain.ParseMonthName(s)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text + "\n"))
}
