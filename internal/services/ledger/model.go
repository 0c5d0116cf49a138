package ledger

import "time"

// TxType is the kind of balance-changing action. The set is closed; raw
// input is normalized through ParseTxType.
type TxType string

const (
	TxDeposit  TxType = "deposit"
	TxWithdraw TxType = "withdraw"
	TxTransfer TxType = "transfer"
)

// PlayerRef is a snapshot of a player's identity taken when a
// transaction is applied. It deliberately omits balance and color so the
// record stays meaningful after later balance changes.
type PlayerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Actors names the players involved in a transaction: `to` for
// deposits, `from` for withdrawals, both for transfers.
type Actors struct {
	From *PlayerRef `json:"from,omitempty"`
	To   *PlayerRef `json:"to,omitempty"`
}

// Transaction is one immutable entry of a game's activity log.
// Results maps each affected player ID to that player's balance right
// after the action.
type Transaction struct {
	ID        string             `json:"id"`
	Type      TxType             `json:"type"`
	Amount    float64            `json:"amount"`
	Note      string             `json:"note"`
	CreatedAt time.Time          `json:"createdAt"`
	Actors    Actors             `json:"actors"`
	Results   map[string]float64 `json:"results"`
}

// TransactionInput carries the caller-supplied arguments for
// ApplyTransaction. FromPlayerID/ToPlayerID are required per type; Note
// is optional free text.
type TransactionInput struct {
	Type         string
	Amount       float64
	FromPlayerID string
	ToPlayerID   string
	Note         string
}

// player is the mutable in-store record. Only ApplyTransaction changes
// its balance; everything else is fixed at creation.
type player struct {
	id        string
	name      string
	balance   float64
	color     string
	createdAt time.Time
}

func (p *player) ref() *PlayerRef {
	return &PlayerRef{ID: p.id, Name: p.name}
}

func (p *player) view() PlayerView {
	return PlayerView{
		ID:        p.id,
		Name:      p.name,
		Balance:   p.balance,
		Color:     p.color,
		CreatedAt: p.createdAt,
	}
}

// game is the mutable in-store record. players is keyed by player ID;
// playerOrder preserves join order for serialization and color
// assignment. transactions is newest-first.
type game struct {
	id              string
	joinCode        string
	name            string
	startingBalance float64
	currency        string
	createdAt       time.Time
	updatedAt       time.Time
	players         map[string]*player
	playerOrder     []string
	transactions    []*Transaction
}

// PlayerView is the public shape of a player.
type PlayerView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Balance   float64   `json:"balance"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// GameView is the full serialized snapshot of a game, with players as
// an ordered sequence rather than the internal map.
type GameView struct {
	ID              string         `json:"id"`
	JoinCode        string         `json:"joinCode"`
	Name            string         `json:"name"`
	StartingBalance float64        `json:"startingBalance"`
	Currency        string         `json:"currency"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	Players         []PlayerView   `json:"players"`
	Transactions    []*Transaction `json:"transactions"`
}

// GameSummary is the lightweight listing shape.
type GameSummary struct {
	ID               string    `json:"id"`
	JoinCode         string    `json:"joinCode"`
	Name             string    `json:"name"`
	StartingBalance  float64   `json:"startingBalance"`
	Currency         string    `json:"currency"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	PlayerCount      int       `json:"playerCount"`
	TransactionCount int       `json:"transactionCount"`
}

func (g *game) view() *GameView {
	players := make([]PlayerView, 0, len(g.playerOrder))
	for _, id := range g.playerOrder {
		players = append(players, g.players[id].view())
	}

	// Transactions are immutable once recorded, so sharing the elements
	// is safe; only the slice header is copied.
	txns := make([]*Transaction, len(g.transactions))
	copy(txns, g.transactions)

	return &GameView{
		ID:              g.id,
		JoinCode:        g.joinCode,
		Name:            g.name,
		StartingBalance: g.startingBalance,
		Currency:        g.currency,
		CreatedAt:       g.createdAt,
		UpdatedAt:       g.updatedAt,
		Players:         players,
		Transactions:    txns,
	}
}

func (g *game) summary() GameSummary {
	return GameSummary{
		ID:               g.id,
		JoinCode:         g.joinCode,
		Name:             g.name,
		StartingBalance:  g.startingBalance,
		Currency:         g.currency,
		CreatedAt:        g.createdAt,
		UpdatedAt:        g.updatedAt,
		PlayerCount:      len(g.players),
		TransactionCount: len(g.transactions),
	}
}
