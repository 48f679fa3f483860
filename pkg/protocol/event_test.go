package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"blackjack-server/pkg/deck"
)

func TestNewCards(t *testing.T) {
	cards := NewCards(deck.CardsFromString("14s,10h,2d"))
	assert.Equal(t, []Card{
		{Rank: "A", Suit: "♠"},
		{Rank: "10", Suit: "♥"},
		{Rank: "2", Suit: "♦"},
	}, cards)
}

func TestEventEncoding(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(NewBetAccepted("Tess", 50))
	a.NoError(err)
	a.JSONEq(`{"type":"BET_ACCEPTED","name":"Tess","amount":50}`, string(b))

	b, err = json.Marshal(NewError(errors.New("not your turn")))
	a.NoError(err)
	a.JSONEq(`{"type":"ERROR","message":"not your turn"}`, string(b))

	b, err = json.Marshal(NewRenamed("Waiving Lion", "Tess"))
	a.NoError(err)
	a.JSONEq(`{"type":"RENAMED","old":"Waiving Lion","new":"Tess"}`, string(b))
}

func TestState_masking(t *testing.T) {
	state := State{
		Type:       EventState,
		DealerHand: []Card{NewCard(deck.CardFromString("9c")), HiddenCard},
	}

	b, err := json.Marshal(state)
	assert.NoError(t, err)
	assert.Contains(t, string(b), `{"rank":"?","suit":"?"}`)
}
