package deck

import (
	"blackjack-server/internal/rng"
)

// NumDecks is how many standard 52-card decks make up the shoe
const NumDecks = 6

// reshuffleThreshold is the low-water mark. A draw from a shoe holding fewer
// cards than this replaces the pool with a fresh shuffled one first, so the
// shoe is never drawn from while empty.
const reshuffleThreshold = 52

// Shoe is the drawable pool of cards for the table.
// The shoe persists across rounds and only reshuffles on the low-water rule.
type Shoe struct {
	cards []*Card
	rng   rng.Generator
}

// NewShoe returns a freshly shuffled multi-deck shoe
func NewShoe() *Shoe {
	s := &Shoe{
		rng: rng.Crypto{},
	}

	s.reshuffle()
	return s
}

func (s *Shoe) reshuffle() {
	cards := make([]*Card, 0, NumDecks*52)
	for i := 0; i < NumDecks; i++ {
		for _, suit := range []Suit{Clubs, Diamonds, Hearts, Spades} {
			for rank := 2; rank <= Ace; rank++ {
				cards = append(cards, &Card{
					Rank: rank,
					Suit: suit,
				})
			}
		}
	}

	for j := len(cards) - 1; j > 0; j-- {
		i := s.rng.Intn(j + 1)

		cards[i], cards[j] = cards[j], cards[i]
	}

	s.cards = cards
}

// Draw removes and returns the next card.
// If the shoe has fallen below the reshuffle threshold, it's replaced with a
// fresh shuffled pool first, so Draw never fails.
func (s *Shoe) Draw() *Card {
	if len(s.cards) < reshuffleThreshold {
		s.reshuffle()
	}

	n := len(s.cards)
	card := s.cards[n-1]
	s.cards = s.cards[:n-1]

	return card
}

// CardsLeft returns the number of cards left in the shoe
func (s *Shoe) CardsLeft() int {
	return len(s.cards)
}

// SetRand will set the random source used for shuffling
// This should only be used by tests.
func (s *Shoe) SetRand(r rng.Generator) {
	s.rng = r
}

// Stack arranges the shoe so the specified cards are drawn next, in order
// This should only be used by tests.
func (s *Shoe) Stack(cards ...*Card) {
	for i := len(cards) - 1; i >= 0; i-- {
		s.cards = append(s.cards, cards[i])
	}
}
