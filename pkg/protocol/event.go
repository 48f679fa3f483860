package protocol

import (
	"blackjack-server/pkg/deck"
)

// outbound event types
const (
	EventJoined      = "JOINED"
	EventRenamed     = "RENAMED"
	EventInfo        = "INFO"
	EventBettingOpen = "BETTING_OPEN"
	EventBetPrompt   = "BET_PROMPT"
	EventBetAccepted = "BET_ACCEPTED"
	EventRoundStart  = "ROUND_STARTED"
	EventState       = "STATE"
	EventSettlement  = "SETTLEMENT"
	EventLeft        = "LEFT"
	EventError       = "ERROR"
)

// settlement outcomes
const (
	OutcomeWin  = "win"
	OutcomePush = "push"
	OutcomeLose = "lose"
)

// Card is the wire representation of a playing card
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// HiddenCard is the placeholder for a card the client may not see
var HiddenCard = Card{Rank: "?", Suit: "?"}

// NewCard converts a playing card to its wire representation
func NewCard(c *deck.Card) Card {
	return Card{
		Rank: c.RankLabel(),
		Suit: c.Suit.Symbol(),
	}
}

// NewCards converts a hand of cards to their wire representation
func NewCards(cards deck.Hand) []Card {
	wire := make([]Card, len(cards))
	for i, c := range cards {
		wire[i] = NewCard(c)
	}

	return wire
}

// Joined is broadcast when a participant takes a seat
type Joined struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// NewJoined returns a new Joined event
func NewJoined(name string) *Joined {
	return &Joined{Type: EventJoined, Name: name}
}

// Renamed is broadcast when a participant changes their display name
type Renamed struct {
	Type string `json:"type"`
	Old  string `json:"old"`
	New  string `json:"new"`
}

// NewRenamed returns a new Renamed event
func NewRenamed(oldName, newName string) *Renamed {
	return &Renamed{Type: EventRenamed, Old: oldName, New: newName}
}

// Info is a broadcast informational message
type Info struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewInfo returns a new Info event
func NewInfo(message string) *Info {
	return &Info{Type: EventInfo, Message: message}
}

// BettingOpen is broadcast when the betting phase opens
type BettingOpen struct {
	Type string `json:"type"`
}

// NewBettingOpen returns a new BettingOpen event
func NewBettingOpen() *BettingOpen {
	return &BettingOpen{Type: EventBettingOpen}
}

// BetPrompt is sent to a single participant asking for their bet decision
type BetPrompt struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// NewBetPrompt returns a new BetPrompt event
func NewBetPrompt(name string) *BetPrompt {
	return &BetPrompt{Type: EventBetPrompt, Name: name}
}

// BetAccepted is broadcast when a bet passes validation
type BetAccepted struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// NewBetAccepted returns a new BetAccepted event
func NewBetAccepted(name string, amount int) *BetAccepted {
	return &BetAccepted{Type: EventBetAccepted, Name: name, Amount: amount}
}

// RoundStarted is broadcast once the opening deal is complete
type RoundStarted struct {
	Type string `json:"type"`
}

// NewRoundStarted returns a new RoundStarted event
func NewRoundStarted() *RoundStarted {
	return &RoundStarted{Type: EventRoundStart}
}

// HandState is one hand inside a state snapshot
type HandState struct {
	Cards []Card `json:"cards"`
}

// ParticipantState is one participant inside a state snapshot
type ParticipantState struct {
	Name    string      `json:"name"`
	Balance int         `json:"balance"`
	Hands   []HandState `json:"hands"`
	Bets    []int       `json:"bets"`
}

// State is the full table snapshot broadcast after most mutations.
// While a round is active the dealer hand is masked to its first card.
// TurnName is empty when no participant holds the turn; ActiveHandIndex is
// only meaningful while TurnName is set.
type State struct {
	Type            string             `json:"type"`
	DealerHand      []Card             `json:"dealerHand"`
	Participants    []ParticipantState `json:"participants"`
	TurnName        string             `json:"turnName,omitempty"`
	ActiveHandIndex int                `json:"activeHandIndex"`
}

// Outcome is the settlement record for a single (participant, hand) pair
type Outcome struct {
	Name         string `json:"name"`
	HandIndex    int    `json:"handIndex"`
	Outcome      string `json:"outcome"`
	BalanceDelta int    `json:"balanceDelta"`
}

// Settlement is broadcast once per round after the dealer has drawn out
type Settlement struct {
	Type        string    `json:"type"`
	DealerHand  []Card    `json:"dealerHand"`
	DealerTotal int       `json:"dealerTotal"`
	Outcomes    []Outcome `json:"outcomes"`
}

// Left is broadcast when a participant leaves the table
type Left struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// NewLeft returns a new Left event
func NewLeft(name string) *Left {
	return &Left{Type: EventLeft, Name: name}
}

// Error is sent to the sender of a command that could not be applied
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewError returns a new Error event
func NewError(err error) *Error {
	return &Error{Type: EventError, Message: err.Error()}
}
