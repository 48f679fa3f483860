package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	a := assert.New(t)

	cmd, err := ParseCommand([]byte(`{"type":"BET","amount":50}`))
	a.NoError(err)
	a.Equal(CmdBet, cmd.Type)
	a.Equal(50, cmd.Amount)

	cmd, err = ParseCommand([]byte(`{"type":"SET_NAME","name":"Tess"}`))
	a.NoError(err)
	a.Equal(CmdSetName, cmd.Type)
	a.Equal("Tess", cmd.Name)

	cmd, err = ParseCommand([]byte(`{"type":"STAND"}`))
	a.NoError(err)
	a.Equal(CmdStand, cmd.Type)

	cmd, err = ParseCommand([]byte(`not json`))
	a.Equal(ErrMalformedCommand, err)
	a.Nil(cmd)

	cmd, err = ParseCommand([]byte(`{"type":"SHOUT"}`))
	a.EqualError(err, `unknown command: "SHOUT"`)
	a.Nil(cmd)
}
