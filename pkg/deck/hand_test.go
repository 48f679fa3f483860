package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_AddCard(t *testing.T) {
	var hand Hand
	assert.Nil(t, hand.FirstCard())

	hand.AddCard(CardFromString("14s"))
	hand.AddCard(CardFromString("5d"))

	assert.Len(t, hand, 2)
	assert.Equal(t, Ace, hand.FirstCard().Rank)
	assert.Equal(t, "14s,5d", hand.String())
}

func TestHand_Clone(t *testing.T) {
	hand := Hand(CardsFromString("14s,5d"))
	clone := hand.Clone()
	clone[0] = CardFromString("2c")

	assert.Equal(t, Ace, hand[0].Rank)
	assert.Equal(t, 2, clone[0].Rank)
}
