package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahmeed2051/onilne-mono-tracking/internal/services/ledger"
)

// HandlerProvider wraps a ledger.Store and exposes HTTP handlers.
type HandlerProvider struct {
	store *ledger.Store
}

// NewHandler returns a new handler provider.
func NewHandler(store *ledger.Store) *HandlerProvider {
	return &HandlerProvider{store: store}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeLedgerError maps engine errors onto status codes: unknown game
// 404, bad input 400, overdraft 409.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("unexpected ledger error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody reads a size-capped JSON body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty body")

			return err
		}

		writeError(w, http.StatusBadRequest, "invalid JSON")

		return err
	}

	return nil
}

// --- Request payloads ---

type createGameRequest struct {
	Name            string   `json:"name"`
	StartingBalance *float64 `json:"startingBalance"`
	Currency        string   `json:"currency"`
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

type txRequest struct {
	Type         string   `json:"type"`
	Amount       *float64 `json:"amount"`
	FromPlayerID string   `json:"fromPlayerId"`
	ToPlayerID   string   `json:"toPlayerId"`
	Note         string   `json:"note"`
}

// optionalAmount turns an absent JSON number into NaN, which the engine
// treats as "not a valid amount" (or "use the default" on game
// creation).
func optionalAmount(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}

	return *v
}

// --- Handlers ---

// ListGames handles GET /api/games.
func (h *HandlerProvider) ListGames(w http.ResponseWriter, r *http.Request) {
	games := []ledger.GameSummary{}
	for sum := range h.store.Games() {
		games = append(games, sum)
	}

	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

// CreateGame handles POST /api/games.
func (h *HandlerProvider) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if decodeBody(w, r, &req) != nil {
		return
	}

	game, err := h.store.CreateGame(req.Name, optionalAmount(req.StartingBalance), req.Currency)
	if err != nil {
		writeLedgerError(w, err)

		return
	}

	gamesCreated.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{"game": game})
}

// GetGame handles GET /api/games/{gameID}.
func (h *HandlerProvider) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.store.Game(chi.URLParam(r, "gameID"))
	if err != nil {
		writeLedgerError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"game": game})
}

// GetGameByCode handles GET /api/games/code/{joinCode}.
func (h *HandlerProvider) GetGameByCode(w http.ResponseWriter, r *http.Request) {
	game, err := h.store.GameByCode(chi.URLParam(r, "joinCode"))
	if err != nil {
		writeLedgerError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"game": game})
}

// AddPlayer handles POST /api/games/{gameID}/players.
func (h *HandlerProvider) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var req addPlayerRequest
	if decodeBody(w, r, &req) != nil {
		return
	}

	game, err := h.store.AddPlayer(chi.URLParam(r, "gameID"), req.Name)
	if err != nil {
		writeLedgerError(w, err)

		return
	}

	playersAdded.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{"game": game})
}

// ApplyTransaction handles POST /api/games/{gameID}/transactions.
func (h *HandlerProvider) ApplyTransaction(w http.ResponseWriter, r *http.Request) {
	var req txRequest
	if decodeBody(w, r, &req) != nil {
		return
	}

	game, err := h.store.ApplyTransaction(chi.URLParam(r, "gameID"), ledger.TransactionInput{
		Type:         req.Type,
		Amount:       optionalAmount(req.Amount),
		FromPlayerID: req.FromPlayerID,
		ToPlayerID:   req.ToPlayerID,
		Note:         req.Note,
	})
	if err != nil {
		transactionsRejected.WithLabelValues(rejectionReason(err)).Inc()
		writeLedgerError(w, err)

		return
	}

	transactionsApplied.WithLabelValues(string(game.Transactions[0].Type)).Inc()
	writeJSON(w, http.StatusCreated, map[string]any{"game": game})
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ledger.ErrGameNotFound):
		return "not_found"
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ledger.ErrInvalidInput):
		return "validation"
	default:
		return "internal"
	}
}
