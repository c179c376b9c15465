package protocol

// MessageType identifies the type of message
type MessageType string

const (
	// Client -> Server
	TypeJoin   = "join"
	TypeAction = "action"
	TypeChat   = "chat"
	TypeSitOut = "sit_out"
	TypeSitIn  = "sit_in"

	// Server -> Client
	TypeGameState      = "game_state"
	TypeActionRequired = "action_required"
	TypeHoleCards      = "hole_cards"
	TypeShowdown       = "showdown"
	TypeHandComplete   = "hand_complete"
	TypeError          = "error"
)

// Cards travel as two-character strings (e.g. "As", "Td"), parsed and
// rendered by internal/deck.

// Client -> Server Messages

// Join is sent by a client when connecting
type Join struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Action is sent by a client in response to ActionRequired
type Action struct {
	Type   string `json:"type"`
	Action string `json:"action"` // fold, check, call, bet, raise, allin
	Amount int    `json:"amount,omitempty"`
}

// Chat carries a table chat line. Clients send it without a seat; the
// server fills Seat in before relaying.
type Chat struct {
	Type string `json:"type"`
	Seat int    `json:"seat,omitempty"`
	Text string `json:"text"`
}

// SitOut asks to sit out starting with the next hand
type SitOut struct {
	Type string `json:"type"`
}

// SitIn asks to be dealt back in
type SitIn struct {
	Type string `json:"type"`
}

// Server -> Client Messages

// PlayerState is one seat as seen on the wire. HoleCards is populated
// only in the copy sent to that seat's own connection.
type PlayerState struct {
	Seat      int      `json:"seat"`
	Name      string   `json:"name"`
	Chips     int      `json:"chips"`
	Status    string   `json:"status"` // active, folded, allin, sitting_out
	Bet       int      `json:"bet,omitempty"`
	TotalBet  int      `json:"total_bet,omitempty"`
	HoleCards []string `json:"hole_cards,omitempty"`
}

// PotState is one pot tier
type PotState struct {
	Amount   int   `json:"amount"`
	Eligible []int `json:"eligible"`
}

// GameState is broadcast after every accepted mutation
type GameState struct {
	Type       string        `json:"type"`
	HandNumber int           `json:"hand_number"`
	Stage      string        `json:"stage"`
	Street     string        `json:"street"`
	Button     int           `json:"button"`
	Pot        int           `json:"pot"`
	Pots       []PotState    `json:"pots,omitempty"`
	Board      []string      `json:"board,omitempty"`
	Players    []PlayerState `json:"players"`
	CurrentBet int           `json:"current_bet"`
	MinRaise   int           `json:"min_raise"`
	ToAct      int           `json:"to_act"` // -1 when no action pending
}

// ActionRequired asks one seat to act
type ActionRequired struct {
	Type         string   `json:"type"`
	Seat         int      `json:"seat"`
	ValidActions []string `json:"valid_actions"`
	CallAmount   int      `json:"call_amount"`
	MinBet       int      `json:"min_bet"`
	MinRaiseTo   int      `json:"min_raise_to"`
	MaxBet       int      `json:"max_bet"`
	TimeoutMS    int      `json:"timeout_ms,omitempty"`
}

// HoleCards is the private deal notification sent to one seat only
type HoleCards struct {
	Type  string   `json:"type"`
	Seat  int      `json:"seat"`
	Cards []string `json:"cards"`
}

// ShowdownHand is one revealed hand
type ShowdownHand struct {
	Seat      int      `json:"seat"`
	Name      string   `json:"name"`
	HoleCards []string `json:"hole_cards"`
	HandRank  string   `json:"hand_rank"` // e.g. "Two Pair"
}

// PotAward records one resolved pot
type PotAward struct {
	PotIndex int   `json:"pot_index"`
	Amount   int   `json:"amount"`
	Winners  []int `json:"winners"`
}

// Showdown is broadcast when a hand is decided by comparing hands
type Showdown struct {
	Type   string         `json:"type"`
	Board  []string       `json:"board"`
	Hands  []ShowdownHand `json:"hands"`
	Awards []PotAward     `json:"awards"`
}

// HandComplete closes a hand. Awards is populated for uncontested wins,
// where no Showdown is sent.
type HandComplete struct {
	Type       string     `json:"type"`
	HandNumber int        `json:"hand_number"`
	NextButton int        `json:"next_button"`
	Awards     []PotAward `json:"awards,omitempty"`
}

// Error reports a rejected input. Codes mirror the engine's recoverable
// error kinds.
type Error struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes carried in Error.Code
const (
	CodeOutOfTurn     = "out_of_turn"
	CodeInvalidAmount = "invalid_amount"
	CodeIllegalAction = "illegal_action"
	CodeRoundClosed   = "round_closed"
	CodeTableNotReady = "table_not_ready"
	CodeBadMessage    = "bad_message"
	CodeInternal      = "internal"
)
