package blackjack

// Participant is the per-connection mutable state of a seated player
type Participant struct {
	ID          string
	Name        string
	Balance     int
	Hands       []*Hand
	AwaitingBet bool
}

func newParticipant(id, name string, balance int) *Participant {
	return &Participant{
		ID:      id,
		Name:    name,
		Balance: balance,
	}
}

// inRound returns true if the participant has a bet and dealt cards this round
func (p *Participant) inRound() bool {
	return len(p.Hands) > 0 && len(p.Hands[0].Cards) > 0
}

// bets returns the bet amounts parallel to the participant's hands
func (p *Participant) bets() []int {
	bets := make([]int, len(p.Hands))
	for i, hand := range p.Hands {
		bets[i] = hand.Bet
	}

	return bets
}

// clearRound drops the participant's hands, bets, and bet-decision flag
func (p *Participant) clearRound() {
	p.Hands = nil
	p.AwaitingBet = false
}
