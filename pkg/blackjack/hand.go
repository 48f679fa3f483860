package blackjack

import (
	"blackjack-server/pkg/deck"
)

// blackjackMax is the highest total a hand can hold without busting
const blackjackMax = 21

// Hand is one scored hand and the bet riding on it.
// Pairing the bet with the cards keeps the two structurally aligned.
type Hand struct {
	Cards deck.Hand
	Bet   int
}

// Value returns the hand's current blackjack total
func (h *Hand) Value() int {
	return HandValue(h.Cards)
}

// Busted returns true if the hand total exceeds the blackjack maximum
func (h *Hand) Busted() bool {
	return h.Value() > blackjackMax
}

// cardValue returns the blackjack value of a single card.
// An ace counts as 11 here; HandValue downgrades aces as needed.
func cardValue(c *deck.Card) int {
	switch {
	case c.Rank == deck.Ace:
		return 11
	case c.Rank >= deck.Jack:
		return 10
	default:
		return c.Rank
	}
}

// HandValue computes the blackjack total of the cards.
// While the total exceeds 21 and an ace still counts as 11, one ace is
// downgraded to 1. The value is computed fresh on every call since cards
// keep accumulating during play.
func HandValue(cards deck.Hand) int {
	total, aces := 0, 0
	for _, c := range cards {
		total += cardValue(c)
		if c.Rank == deck.Ace {
			aces++
		}
	}

	for total > blackjackMax && aces > 0 {
		total -= 10
		aces--
	}

	return total
}
