package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blackjack-server/pkg/deck"
)

func TestHandValue(t *testing.T) {
	testCases := []struct {
		cards string
		value int
	}{
		{"2c,3d", 5},
		{"13s,12h", 20},
		{"14s,13h", 21},
		{"14s,14h,9d", 21},
		{"14s,14h", 12},
		{"14s,5d", 16},
		{"14s,5d,9c", 15},
		{"10c,11d,3s", 23},
		{"14c,14d,14h,14s", 14},
		{"", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.cards, func(t *testing.T) {
			assert.Equal(t, tc.value, HandValue(deck.CardsFromString(tc.cards)))
		})
	}
}

func TestHand_Busted(t *testing.T) {
	hand := &Hand{Cards: deck.CardsFromString("10c,11d"), Bet: 50}
	assert.Equal(t, 20, hand.Value())
	assert.False(t, hand.Busted())

	hand.Cards.AddCard(deck.CardFromString("5s"))
	assert.Equal(t, 25, hand.Value())
	assert.True(t, hand.Busted())
}
