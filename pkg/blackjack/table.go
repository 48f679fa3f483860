package blackjack

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/protocol"
)

// MaxParticipants is the number of seats at the table
const MaxParticipants = 4

// Phase is the table's lifecycle phase
type Phase int

// table phases
const (
	PhaseIdle Phase = iota
	PhaseBetting
	PhaseRoundActive
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBetting:
		return "betting"
	case PhaseRoundActive:
		return "round-active"
	}

	panic("unknown phase")
}

// Table is the central state machine for one blackjack table.
// It owns the shoe, the dealer's hand, the seated participants, and the turn
// position, and it drives every phase transition. Table performs no I/O and
// holds no locks; each mutator returns the events the caller must deliver.
// It is not safe for concurrent use: callers serialize access.
type Table struct {
	log             logrus.FieldLogger
	shoe            *deck.Shoe
	dealer          deck.Hand
	phase           Phase
	participants    []*Participant
	startingBalance int

	// turnIndex/activeHandIndex are both -1 or both valid. When valid, the
	// indexed participant has a non-empty hand list.
	turnIndex       int
	activeHandIndex int
}

// New returns a new table with a freshly shuffled shoe and no seats taken
func New(log logrus.FieldLogger, startingBalance int) *Table {
	return &Table{
		log:             log,
		shoe:            deck.NewShoe(),
		phase:           PhaseIdle,
		startingBalance: startingBalance,
		turnIndex:       -1,
		activeHandIndex: -1,
	}
}

// Phase returns the table's current phase
func (t *Table) Phase() Phase {
	return t.phase
}

// Shoe returns the table's shoe
// This should only be used by tests to rig draws.
func (t *Table) Shoe() *deck.Shoe {
	return t.shoe
}

// Participant returns the seated participant with the given ID, or nil
func (t *Table) Participant(id string) *Participant {
	for _, p := range t.participants {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// Join seats a new participant.
// Returns ErrTableFull once all seats are taken; seat order is join order.
func (t *Table) Join(id, name string) ([]Envelope, error) {
	if len(t.participants) >= MaxParticipants {
		return nil, ErrTableFull
	}

	p := newParticipant(id, name, t.startingBalance)
	t.participants = append(t.participants, p)

	t.log.WithField("player", name).Info("player joined")
	return []Envelope{broadcast(protocol.NewJoined(name))}, nil
}

// Action applies one inbound command for the given participant and returns
// the events to deliver. A non-nil error is reported to the sender only and
// indicates no state was changed.
func (t *Table) Action(id string, cmd *protocol.Command) ([]Envelope, error) {
	if t.Participant(id) == nil {
		return nil, ErrNotSeated
	}

	switch cmd.Type {
	case protocol.CmdSetName:
		return t.SetName(id, cmd.Name)
	case protocol.CmdStart:
		return t.OpenBetting()
	case protocol.CmdBet:
		return t.PlaceBet(id, cmd.Amount)
	case protocol.CmdCancelBet:
		return t.CancelBet(id)
	case protocol.CmdHit:
		return t.Hit(id)
	case protocol.CmdStand:
		return t.Stand(id)
	case protocol.CmdDouble:
		return t.Double(id)
	case protocol.CmdSplit:
		return t.Split(id)
	}

	return nil, fmt.Errorf("unhandled command: %s", cmd.Type)
}

// SetName changes a participant's display name. Uniqueness is not enforced.
func (t *Table) SetName(id, name string) ([]Envelope, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	p := t.Participant(id)
	old := p.Name
	p.Name = name

	t.log.WithFields(logrus.Fields{"old": old, "new": name}).Info("player renamed")
	return []Envelope{broadcast(protocol.NewRenamed(old, name))}, nil
}

// OpenBetting transitions Idle -> Betting: clears the dealer hand and every
// participant's round state, then prompts everyone for a bet decision.
func (t *Table) OpenBetting() ([]Envelope, error) {
	if t.phase != PhaseIdle {
		return nil, ErrRoundInProgress
	}

	t.phase = PhaseBetting
	t.dealer = nil

	events := []Envelope{broadcast(protocol.NewBettingOpen())}
	for _, p := range t.participants {
		p.Hands = nil
		p.AwaitingBet = true
		events = append(events, targeted(p.ID, protocol.NewBetPrompt(p.Name)))
	}

	t.log.Info("betting open")
	return events, nil
}

// PlaceBet validates and records a participant's bet, debiting the balance
// immediately. A rejected bet leaves the awaiting flag set so the participant
// may retry. Re-betting refunds the previous debit first.
func (t *Table) PlaceBet(id string, amount int) ([]Envelope, error) {
	if t.phase != PhaseBetting {
		return nil, ErrBettingNotOpen
	}

	if amount <= 0 {
		return nil, ErrInvalidBetAmount
	}

	p := t.Participant(id)
	refund := 0
	for _, hand := range p.Hands {
		refund += hand.Bet
	}

	if p.Balance+refund < amount {
		return nil, ErrInsufficientBalance
	}

	p.Balance += refund - amount
	// cards are dealt when the round starts
	p.Hands = []*Hand{{Bet: amount}}
	p.AwaitingBet = false

	t.log.WithFields(logrus.Fields{
		"player":  p.Name,
		"amount":  amount,
		"balance": p.Balance,
	}).Info("bet placed")

	events := []Envelope{broadcast(protocol.NewBetAccepted(p.Name, amount))}
	return append(events, t.evaluateRoundStart()...), nil
}

// CancelBet withdraws a participant from the round, refunding any bet they
// already placed, and re-runs the round-start check.
func (t *Table) CancelBet(id string) ([]Envelope, error) {
	if t.phase != PhaseBetting {
		return nil, ErrBettingNotOpen
	}

	p := t.Participant(id)
	for _, hand := range p.Hands {
		p.Balance += hand.Bet
	}

	p.Hands = nil
	p.AwaitingBet = false

	t.log.WithField("player", p.Name).Info("bet cancelled")

	events := []Envelope{
		broadcast(protocol.NewInfo(fmt.Sprintf("%s cancelled their bet.", p.Name))),
		broadcast(t.StateSnapshot()),
	}

	return append(events, t.evaluateRoundStart()...), nil
}

// evaluateRoundStart checks whether the betting phase can resolve: every
// seated participant must have bet or declined. With at least one positive
// bet the opening hands are dealt and the round starts; with none the table
// falls back to Idle.
func (t *Table) evaluateRoundStart() []Envelope {
	if t.phase != PhaseBetting || len(t.participants) == 0 {
		return nil
	}

	hasBets := false
	for _, p := range t.participants {
		if p.AwaitingBet {
			return nil
		}

		if len(p.Hands) > 0 {
			hasBets = true
		}
	}

	if !hasBets {
		t.phase = PhaseIdle
		t.log.Info("nobody bet, betting cancelled")

		return []Envelope{
			broadcast(protocol.NewInfo("Nobody bet. Betting cancelled.")),
			broadcast(t.StateSnapshot()),
		}
	}

	t.phase = PhaseRoundActive
	t.dealer = deck.Hand{t.shoe.Draw(), t.shoe.Draw()}

	for _, p := range t.participants {
		for _, hand := range p.Hands {
			hand.Cards = deck.Hand{t.shoe.Draw(), t.shoe.Draw()}
		}
	}

	t.turnIndex = t.nextActiveIndexAt(0)
	t.activeHandIndex = 0

	t.log.Info("round started")
	return []Envelope{
		broadcast(protocol.NewRoundStarted()),
		broadcast(t.StateSnapshot()),
	}
}

// StateSnapshot builds the full table state for broadcast. While a round is
// active every dealer card past the first is masked.
func (t *Table) StateSnapshot() *protocol.State {
	state := &protocol.State{
		Type:            protocol.EventState,
		DealerHand:      t.dealerView(),
		Participants:    make([]protocol.ParticipantState, len(t.participants)),
		ActiveHandIndex: t.activeHandIndex,
	}

	if t.turnIndex >= 0 && t.turnIndex < len(t.participants) {
		state.TurnName = t.participants[t.turnIndex].Name
	}

	for i, p := range t.participants {
		hands := make([]protocol.HandState, len(p.Hands))
		for j, hand := range p.Hands {
			hands[j] = protocol.HandState{Cards: protocol.NewCards(hand.Cards)}
		}

		state.Participants[i] = protocol.ParticipantState{
			Name:    p.Name,
			Balance: p.Balance,
			Hands:   hands,
			Bets:    p.bets(),
		}
	}

	return state
}

func (t *Table) dealerView() []protocol.Card {
	if t.phase == PhaseRoundActive && len(t.dealer) >= 2 {
		return []protocol.Card{protocol.NewCard(t.dealer.FirstCard()), protocol.HiddenCard}
	}

	return protocol.NewCards(t.dealer)
}
