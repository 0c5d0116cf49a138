// Package ledger implements the in-memory play-money ledger: games,
// their players, and the transaction log of deposits, withdrawals and
// transfers between players.
//
// A single Store owns every game. All state changes run under one
// mutex, so a transaction is either fully applied (both balance
// effects, the log entry, the updatedAt bump) or not at all; no caller
// ever observes a half-applied transfer.
package ledger

import (
	"fmt"
	"iter"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ahmeed2051/onilne-mono-tracking/pkg/ident"
)

const (
	gameIDLen   = 10
	playerIDLen = 8
	joinCodeLen = 6
)

// Config holds the per-store defaults applied when a game is created
// without explicit values.
type Config struct {
	StartingBalance float64  // balance each new player begins with
	Currency        string   // display label, e.g. "M$"
	Palette         []string // player colors, assigned round-robin by join order
}

// DefaultConfig mirrors the defaults of the original banker app.
func DefaultConfig() Config {
	return Config{
		StartingBalance: 1500,
		Currency:        "M$",
		Palette: []string{
			"#f59f00", "#0ea5e9", "#f97316",
			"#22c55e", "#a855f7", "#ef4444",
		},
	}
}

// Store is the ledger engine. The zero value is not usable; construct
// with New. Each test gets its own Store, there is no package-level
// registry.
type Store struct {
	mu     sync.RWMutex
	cfg    Config
	games  map[string]*game
	order  []string          // game insertion order, for stable listings
	byCode map[string]string // join code -> game ID
	nowFn  func() time.Time
}

// New returns an empty Store. Zero-valued cfg fields fall back to
// DefaultConfig.
func New(cfg Config) *Store {
	def := DefaultConfig()
	if cfg.StartingBalance <= 0 || math.IsNaN(cfg.StartingBalance) || math.IsInf(cfg.StartingBalance, 0) {
		cfg.StartingBalance = def.StartingBalance
	}
	if strings.TrimSpace(cfg.Currency) == "" {
		cfg.Currency = def.Currency
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = def.Palette
	}

	return &Store{
		cfg:    cfg,
		games:  make(map[string]*game),
		byCode: make(map[string]string),
		nowFn:  time.Now,
	}
}

// CreateGame registers a new game and returns its snapshot.
//
// The name must be non-empty after trimming. startingBalance is
// replaced by the store default when it is negative or not finite
// (callers pass NaN for "absent"); currency falls back likewise.
func (s *Store) CreateGame(name string, startingBalance float64, currency string) (*GameView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: game name is required", ErrInvalidInput)
	}

	if startingBalance < 0 || math.IsNaN(startingBalance) || math.IsInf(startingBalance, 0) {
		startingBalance = s.cfg.StartingBalance
	}

	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = s.cfg.Currency
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()
	g := &game{
		id:              s.newGameID(),
		joinCode:        s.newJoinCode(),
		name:            name,
		startingBalance: startingBalance,
		currency:        currency,
		createdAt:       now,
		updatedAt:       now,
		players:         make(map[string]*player),
	}

	s.games[g.id] = g
	s.order = append(s.order, g.id)
	s.byCode[g.joinCode] = g.id

	return g.view(), nil
}

// Games returns a restartable sequence of summaries for every stored
// game, in creation order. The summaries are captured when iteration
// starts, so a caller holding the sequence never observes the store
// mid-mutation.
func (s *Store) Games() iter.Seq[GameSummary] {
	return func(yield func(GameSummary) bool) {
		s.mu.RLock()
		summaries := make([]GameSummary, 0, len(s.order))
		for _, id := range s.order {
			summaries = append(summaries, s.games[id].summary())
		}
		s.mu.RUnlock()

		for _, sum := range summaries {
			if !yield(sum) {
				return
			}
		}
	}
}

// Game returns the full snapshot of one game.
func (s *Store) Game(id string) (*GameView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}

	return g.view(), nil
}

// GameByCode resolves a game by its join code. Codes are matched
// case-insensitively since people type them.
func (s *Store) GameByCode(code string) (*GameView, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCode[code]
	if !ok {
		return nil, ErrGameNotFound
	}

	return s.games[id].view(), nil
}

// AddPlayer adds a player to an existing game. The player starts with
// the game's starting balance and the next color in the palette,
// cycling by join order.
func (s *Store) AddPlayer(gameID, name string) (*GameView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}

	now := s.nowFn()
	p := &player{
		id:        s.newPlayerID(g),
		name:      name,
		balance:   g.startingBalance,
		color:     s.cfg.Palette[len(g.players)%len(s.cfg.Palette)],
		createdAt: now,
	}

	g.players[p.id] = p
	g.playerOrder = append(g.playerOrder, p.id)
	g.updatedAt = now

	return g.view(), nil
}

// ApplyTransaction validates and applies one deposit, withdrawal or
// transfer, records it at the head of the game's log, and returns the
// updated snapshot. On any error the game is left exactly as it was.
func (s *Store) ApplyTransaction(gameID string, in TransactionInput) (*GameView, error) {
	txType, err := ParseTxType(in.Type)
	if err != nil {
		return nil, err
	}

	if in.Amount <= 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return nil, fmt.Errorf("%w: amount must be a positive number", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}

	txn := &Transaction{
		ID:      uuid.NewString(),
		Type:    txType,
		Amount:  in.Amount,
		Note:    strings.TrimSpace(in.Note),
		Results: make(map[string]float64),
	}

	// Validate fully before mutating anything: after this switch either
	// all balance effects are applied or none are.
	switch txType {
	case TxDeposit:
		target, ok := g.players[in.ToPlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: recipient player is required for deposits", ErrInvalidInput)
		}

		target.balance += in.Amount
		txn.Actors = Actors{To: target.ref()}
		txn.Results[target.id] = target.balance

	case TxWithdraw:
		source, ok := g.players[in.FromPlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: source player is required for withdrawals", ErrInvalidInput)
		}
		if source.balance < in.Amount {
			return nil, fmt.Errorf("%w: %s does not have enough balance for this withdrawal", ErrInsufficientFunds, source.name)
		}

		source.balance -= in.Amount
		txn.Actors = Actors{From: source.ref()}
		txn.Results[source.id] = source.balance

	case TxTransfer:
		source, ok := g.players[in.FromPlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: source player is required for transfers", ErrInvalidInput)
		}
		target, ok := g.players[in.ToPlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: recipient player is required for transfers", ErrInvalidInput)
		}
		if source.id == target.id {
			return nil, fmt.Errorf("%w: cannot transfer to the same player", ErrInvalidInput)
		}
		if source.balance < in.Amount {
			return nil, fmt.Errorf("%w: %s does not have enough balance to transfer", ErrInsufficientFunds, source.name)
		}

		source.balance -= in.Amount
		target.balance += in.Amount
		txn.Actors = Actors{From: source.ref(), To: target.ref()}
		txn.Results[source.id] = source.balance
		txn.Results[target.id] = target.balance
	}

	now := s.nowFn()
	txn.CreatedAt = now

	// Newest first.
	g.transactions = append([]*Transaction{txn}, g.transactions...)
	g.updatedAt = now

	return g.view(), nil
}

// ParseTxType normalizes raw input into a TxType.
func ParseTxType(raw string) (TxType, error) {
	switch TxType(strings.ToLower(strings.TrimSpace(raw))) {
	case TxDeposit:
		return TxDeposit, nil
	case TxWithdraw:
		return TxWithdraw, nil
	case TxTransfer:
		return TxTransfer, nil
	default:
		return "", fmt.Errorf("%w: transaction type must be deposit, withdraw, or transfer", ErrInvalidInput)
	}
}

// newGameID retries until the identifier is unused. Collisions are
// vanishingly rare at 10 characters; the loop makes them a non-event.
// Callers must hold s.mu.
func (s *Store) newGameID() string {
	for {
		id := ident.New(gameIDLen)
		if _, taken := s.games[id]; !taken {
			return id
		}
	}
}

// newJoinCode retries like newGameID. Callers must hold s.mu.
func (s *Store) newJoinCode() string {
	for {
		code := ident.NewCode(joinCodeLen)
		if _, taken := s.byCode[code]; !taken {
			return code
		}
	}
}

// newPlayerID retries within the game. Callers must hold s.mu.
func (s *Store) newPlayerID(g *game) string {
	for {
		id := ident.New(playerIDLen)
		if _, taken := g.players[id]; !taken {
			return id
		}
	}
}
