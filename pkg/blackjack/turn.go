package blackjack

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/protocol"
)

// dealerStandsAt is the total the dealer draws to. The threshold applies to
// the soft-adjusted value, so a soft 17 stands.
const dealerStandsAt = 17

// activeHand returns the turn participant and their acting hand if the sender
// holds the turn, or a targeted error otherwise.
func (t *Table) activeHand(id string) (*Participant, *Hand, error) {
	if t.phase != PhaseRoundActive || t.turnIndex < 0 {
		return nil, nil, ErrNotYourTurn
	}

	p := t.participants[t.turnIndex]
	if p.ID != id {
		return nil, nil, ErrNotYourTurn
	}

	if t.activeHandIndex < 0 || t.activeHandIndex >= len(p.Hands) {
		return nil, nil, ErrNoActiveHand
	}

	return p, p.Hands[t.activeHandIndex], nil
}

// Hit draws one card into the active hand. A bust ends the hand's turn.
func (t *Table) Hit(id string) ([]Envelope, error) {
	p, hand, err := t.activeHand(id)
	if err != nil {
		return nil, err
	}

	card := t.shoe.Draw()
	hand.Cards.AddCard(card)
	total := hand.Value()

	t.log.WithFields(logrus.Fields{"player": p.Name, "card": card, "total": total}).Info("hit")

	events := []Envelope{
		broadcast(protocol.NewInfo(fmt.Sprintf("%s hit: %s (total %d).", p.Name, card, total))),
	}

	if total > blackjackMax {
		events = append(events, t.advanceTurn()...)
	}

	if t.phase == PhaseRoundActive {
		events = append(events, broadcast(t.StateSnapshot()))
	}

	return events, nil
}

// Stand ends the active hand's turn with no card change
func (t *Table) Stand(id string) ([]Envelope, error) {
	p, _, err := t.activeHand(id)
	if err != nil {
		return nil, err
	}

	t.log.WithField("player", p.Name).Info("stand")

	events := []Envelope{
		broadcast(protocol.NewInfo(fmt.Sprintf("%s stands.", p.Name))),
	}

	events = append(events, t.advanceTurn()...)
	if t.phase == PhaseRoundActive {
		events = append(events, broadcast(t.StateSnapshot()))
	}

	return events, nil
}

// Double doubles the active hand's bet for exactly one more card, then ends
// the hand's turn regardless of the resulting total.
func (t *Table) Double(id string) ([]Envelope, error) {
	p, hand, err := t.activeHand(id)
	if err != nil {
		return nil, err
	}

	if len(hand.Cards) != 2 {
		return nil, ErrDoubleNeedsTwoCards
	}

	if p.Balance < hand.Bet {
		return nil, ErrInsufficientBalance
	}

	p.Balance -= hand.Bet
	hand.Bet *= 2

	card := t.shoe.Draw()
	hand.Cards.AddCard(card)
	total := hand.Value()

	t.log.WithFields(logrus.Fields{"player": p.Name, "card": card, "total": total}).Info("double down")

	events := []Envelope{
		broadcast(protocol.NewInfo(fmt.Sprintf("%s doubled; drew %s (total %d).", p.Name, card, total))),
	}

	events = append(events, t.advanceTurn()...)
	if t.phase == PhaseRoundActive {
		events = append(events, broadcast(t.StateSnapshot()))
	}

	return events, nil
}

// Split divides a matched two-card hand into two single-card hands, each
// completed with a fresh draw and carrying the original bet. The turn stays
// on the first of the two hands.
func (t *Table) Split(id string) ([]Envelope, error) {
	p, hand, err := t.activeHand(id)
	if err != nil {
		return nil, err
	}

	if len(p.Hands) != 1 || len(hand.Cards) != 2 || hand.Cards[0].Rank != hand.Cards[1].Rank {
		return nil, ErrCannotSplit
	}

	if p.Balance < hand.Bet {
		return nil, ErrInsufficientBalance
	}

	p.Balance -= hand.Bet

	first, second := hand.Cards[0], hand.Cards[1]
	p.Hands = []*Hand{
		{Cards: deck.Hand{first, t.shoe.Draw()}, Bet: hand.Bet},
		{Cards: deck.Hand{second, t.shoe.Draw()}, Bet: hand.Bet},
	}

	t.log.WithField("player", p.Name).Info("split")

	return []Envelope{
		broadcast(protocol.NewInfo(fmt.Sprintf("%s split their hand.", p.Name))),
		broadcast(t.StateSnapshot()),
	}, nil
}

// advanceTurn moves to the next active position: the same participant's next
// hand (after a split), else the next seated participant with live hands.
// Seats earlier than the current one are never revisited. When no position
// remains the dealer resolves the round.
func (t *Table) advanceTurn() []Envelope {
	if t.phase != PhaseRoundActive || t.turnIndex < 0 {
		return nil
	}

	current := t.participants[t.turnIndex]
	if t.activeHandIndex+1 < len(current.Hands) {
		t.activeHandIndex++
		return nil
	}

	return t.moveTurnTo(t.nextActiveIndexAt(t.turnIndex + 1))
}

// moveTurnTo points the turn at the given seat's first hand, or triggers
// dealer resolution if the seat is -1
func (t *Table) moveTurnTo(index int) []Envelope {
	if index < 0 {
		t.turnIndex = -1
		t.activeHandIndex = -1
		return t.resolveDealer()
	}

	t.turnIndex = index
	t.activeHandIndex = 0
	return nil
}

// nextActiveIndexAt returns the first seat at or after start whose
// participant has dealt hands this round, or -1
func (t *Table) nextActiveIndexAt(start int) int {
	for i := start; i < len(t.participants); i++ {
		if t.participants[i].inRound() {
			return i
		}
	}

	return -1
}

// resolveDealer draws out the dealer's hand, settles every live hand against
// it, and resets the table to Idle.
func (t *Table) resolveDealer() []Envelope {
	for HandValue(t.dealer) < dealerStandsAt {
		t.dealer.AddCard(t.shoe.Draw())
	}

	dealerTotal := HandValue(t.dealer)
	outcomes := make([]protocol.Outcome, 0)

	for _, p := range t.participants {
		for idx, hand := range p.Hands {
			bet := hand.Bet
			total := hand.Value()

			var outcome string
			var delta int
			switch {
			case total > blackjackMax:
				outcome, delta = protocol.OutcomeLose, -bet
			case dealerTotal > blackjackMax || total > dealerTotal:
				p.Balance += bet * 2
				outcome, delta = protocol.OutcomeWin, bet
			case total == dealerTotal:
				p.Balance += bet
				outcome, delta = protocol.OutcomePush, 0
			default:
				outcome, delta = protocol.OutcomeLose, -bet
			}

			outcomes = append(outcomes, protocol.Outcome{
				Name:         p.Name,
				HandIndex:    idx,
				Outcome:      outcome,
				BalanceDelta: delta,
			})
		}
	}

	t.log.WithFields(logrus.Fields{
		"dealerTotal": dealerTotal,
		"outcomes":    len(outcomes),
	}).Info("round settled")

	settlement := &protocol.Settlement{
		Type:        protocol.EventSettlement,
		DealerHand:  protocol.NewCards(t.dealer),
		DealerTotal: dealerTotal,
		Outcomes:    outcomes,
	}

	t.phase = PhaseIdle
	for _, p := range t.participants {
		p.clearRound()
	}

	return []Envelope{broadcast(settlement)}
}

// Leave unseats a participant. If they held the turn, the turn advances as if
// they had stood; if they sat before the turn holder, the turn index shifts
// down to keep pointing at the same participant. A departure during betting
// re-runs the round-start check so the round can't stall on their flag.
func (t *Table) Leave(id string) []Envelope {
	idx := -1
	for i, p := range t.participants {
		if p.ID == id {
			idx = i
			break
		}
	}

	if idx < 0 {
		return nil
	}

	p := t.participants[idx]
	t.participants = append(t.participants[:idx], t.participants[idx+1:]...)
	t.log.WithField("player", p.Name).Info("player left")

	events := []Envelope{broadcast(protocol.NewLeft(p.Name))}

	switch t.phase {
	case PhaseRoundActive:
		if t.turnIndex >= 0 {
			if idx == t.turnIndex {
				// the seat list shifted, so the scan starts at the same index
				events = append(events, t.moveTurnTo(t.nextActiveIndexAt(t.turnIndex))...)
			} else if idx < t.turnIndex {
				t.turnIndex--
			}
		}
	case PhaseBetting:
		events = append(events, t.evaluateRoundStart()...)
	}

	if len(t.participants) > 0 {
		events = append(events, broadcast(t.StateSnapshot()))
	}

	return events
}
