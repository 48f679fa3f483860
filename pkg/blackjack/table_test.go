package blackjack

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/protocol"
)

func testTable(t *testing.T) *Table {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	return New(log, 500)
}

func seat(t *testing.T, table *Table, ids ...string) {
	t.Helper()

	for _, id := range ids {
		_, err := table.Join(id, id)
		require.NoError(t, err)
	}
}

func TestTable_Join(t *testing.T) {
	a := assert.New(t)
	table := testTable(t)

	events, err := table.Join("p1", "Waiving Lion")
	a.NoError(err)
	require.Len(t, events, 1)
	a.Equal("", events[0].To)
	a.Equal(protocol.NewJoined("Waiving Lion"), events[0].Msg)

	p := table.Participant("p1")
	require.NotNil(t, p)
	a.Equal(500, p.Balance)
	a.Empty(p.Hands)

	seat(t, table, "p2", "p3", "p4")

	_, err = table.Join("p5", "too late")
	a.Equal(ErrTableFull, err)
	a.Nil(table.Participant("p5"))
}

func TestTable_SetName(t *testing.T) {
	a := assert.New(t)
	table := testTable(t)
	seat(t, table, "p1")

	events, err := table.SetName("p1", "Tess")
	a.NoError(err)
	require.Len(t, events, 1)
	a.Equal(protocol.NewRenamed("p1", "Tess"), events[0].Msg)
	a.Equal("Tess", table.Participant("p1").Name)

	_, err = table.SetName("p1", "")
	a.Equal(ErrEmptyName, err)
	a.Equal("Tess", table.Participant("p1").Name)
}

func TestTable_OpenBetting(t *testing.T) {
	a := assert.New(t)
	table := testTable(t)
	seat(t, table, "p1", "p2")

	events, err := table.OpenBetting()
	a.NoError(err)
	a.Equal(PhaseBetting, table.Phase())

	// a broadcast plus one targeted prompt per seat
	require.Len(t, events, 3)
	a.Equal(protocol.NewBettingOpen(), events[0].Msg)
	a.Equal("p1", events[1].To)
	a.Equal(protocol.NewBetPrompt("p1"), events[1].Msg)
	a.Equal("p2", events[2].To)

	a.True(table.Participant("p1").AwaitingBet)
	a.True(table.Participant("p2").AwaitingBet)

	_, err = table.OpenBetting()
	a.Equal(ErrRoundInProgress, err)
}

func TestTable_PlaceBet_validation(t *testing.T) {
	a := assert.New(t)
	table := testTable(t)
	seat(t, table, "p1", "p2")

	_, err := table.PlaceBet("p1", 100)
	a.Equal(ErrBettingNotOpen, err)

	_, err = table.OpenBetting()
	require.NoError(t, err)

	_, err = table.PlaceBet("p1", 0)
	a.Equal(ErrInvalidBetAmount, err)

	_, err = table.PlaceBet("p1", -5)
	a.Equal(ErrInvalidBetAmount, err)

	_, err = table.PlaceBet("p1", 501)
	a.Equal(ErrInsufficientBalance, err)

	// failed bets leave the awaiting flag set so the participant can retry
	a.True(table.Participant("p1").AwaitingBet)
	a.Equal(500, table.Participant("p1").Balance)

	events, err := table.PlaceBet("p1", 100)
	a.NoError(err)
	require.Len(t, events, 1)
	a.Equal(protocol.NewBetAccepted("p1", 100), events[0].Msg)

	p1 := table.Participant("p1")
	a.Equal(400, p1.Balance)
	a.False(p1.AwaitingBet)
	require.Len(t, p1.Hands, 1)
	a.Equal(100, p1.Hands[0].Bet)
	a.Empty(p1.Hands[0].Cards)

	// still betting: p2 hasn't decided
	a.Equal(PhaseBetting, table.Phase())
}

func TestTable_PlaceBet_rebetRefunds(t *testing.T) {
	a := assert.New(t)
	table := testTable(t)
	seat(t, table, "p1", "p2")

	_, err := table.OpenBetting()
	require.NoError(t, err)

	_, err = table.PlaceBet("p1", 400)
	require.NoError(t, err)
	a.Equal(100, table.Participant("p1").Balance)

	// the first debit comes back before the new one is validated
	_, err = table.PlaceBet("p1", 450)
	a.NoError(err)
	a.Equal(50, table.Participant("p1").Balance)
	a.Equal(450, table.Participant("p1").Hands[0].Bet)
}

func TestTable_CancelBet(t *testing.T) {
	a := assert.New(t)
	table := testTable(t)
	seat(t, table, "p1", "p2")

	_, err := table.CancelBet("p1")
	a.Equal(ErrBettingNotOpen, err)

	_, err = table.OpenBetting()
	require.NoError(t, err)

	_, err = table.PlaceBet("p1", 200)
	require.NoError(t, err)
	a.Equal(300, table.Participant("p1").Balance)

	events, err := table.CancelBet("p1")
	a.NoError(err)
	a.Equal(500, table.Participant("p1").Balance)
	a.Empty(table.Participant("p1").Hands)
	a.False(table.Participant("p1").AwaitingBet)
	require.Len(t, events, 2)
	a.Equal(protocol.NewInfo("p1 cancelled their bet."), events[0].Msg)

	// p2 declines as well: betting collapses back to idle
	events, err = table.CancelBet("p2")
	a.NoError(err)
	a.Equal(PhaseIdle, table.Phase())
	require.Len(t, events, 4)
	a.Equal(protocol.NewInfo("Nobody bet. Betting cancelled."), events[2].Msg)
}

func TestTable_roundStart(t *testing.T) {
	a := assert.New(t)
	table := testTable(t)
	seat(t, table, "p1", "p2", "p3")

	_, err := table.OpenBetting()
	require.NoError(t, err)

	// dealer first, then each bettor in seat order
	table.Shoe().Stack(deck.CardsFromString("10s,9s,2c,3c,4d,5d")...)

	_, err = table.CancelBet("p1")
	require.NoError(t, err)
	_, err = table.PlaceBet("p2", 100)
	require.NoError(t, err)

	events, err := table.PlaceBet("p3", 50)
	a.NoError(err)
	a.Equal(PhaseRoundActive, table.Phase())

	require.Len(t, events, 3)
	a.Equal(protocol.NewBetAccepted("p3", 50), events[0].Msg)
	a.Equal(protocol.NewRoundStarted(), events[1].Msg)

	state, ok := events[2].Msg.(*protocol.State)
	require.True(t, ok)
	a.Equal("p2", state.TurnName)
	a.Equal(0, state.ActiveHandIndex)

	a.Equal("10s,9s", table.dealer.String())
	a.Empty(table.Participant("p1").Hands)
	a.Equal("2c,3c", table.Participant("p2").Hands[0].Cards.String())
	a.Equal("4d,5d", table.Participant("p3").Hands[0].Cards.String())

	// the participant who declined is skipped entirely
	a.Equal(1, table.turnIndex)
	a.Equal(0, table.activeHandIndex)
}

func TestTable_nobodyBets(t *testing.T) {
	a := assert.New(t)
	table := testTable(t)
	seat(t, table, "p1")

	_, err := table.OpenBetting()
	require.NoError(t, err)

	events, err := table.CancelBet("p1")
	a.NoError(err)
	a.Equal(PhaseIdle, table.Phase())

	require.Len(t, events, 4)
	a.Equal(protocol.NewInfo("Nobody bet. Betting cancelled."), events[2].Msg)

	// not an error: the table can immediately open betting again
	_, err = table.OpenBetting()
	a.NoError(err)
}

func TestTable_stateMasking(t *testing.T) {
	a := assert.New(t)
	table := testTable(t)
	seat(t, table, "p1")

	_, err := table.OpenBetting()
	require.NoError(t, err)

	table.Shoe().Stack(deck.CardsFromString("10s,9s,10c,7c")...)
	_, err = table.PlaceBet("p1", 100)
	require.NoError(t, err)

	state := table.StateSnapshot()
	require.Len(t, state.DealerHand, 2)
	a.Equal(protocol.Card{Rank: "10", Suit: "♠"}, state.DealerHand[0])
	a.Equal(protocol.HiddenCard, state.DealerHand[1])

	require.Len(t, state.Participants, 1)
	a.Equal([]int{100}, state.Participants[0].Bets)

	// dealer already has 19: standing ends the round and unmasks the hand
	_, err = table.Stand("p1")
	require.NoError(t, err)

	state = table.StateSnapshot()
	require.Len(t, state.DealerHand, 2)
	a.Equal(protocol.Card{Rank: "9", Suit: "♠"}, state.DealerHand[1])
	a.Equal("", state.TurnName)
}

func TestTable_Action_unknownSender(t *testing.T) {
	table := testTable(t)
	seat(t, table, "p1")

	_, err := table.Action("ghost", &protocol.Command{Type: protocol.CmdStand})
	assert.Equal(t, ErrNotSeated, err)
}
