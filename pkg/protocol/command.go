package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedCommand is an error when an inbound record cannot be decoded
var ErrMalformedCommand = errors.New("malformed command")

// inbound command types
const (
	CmdSetName   = "SET_NAME"
	CmdStart     = "START"
	CmdBet       = "BET"
	CmdCancelBet = "CANCEL_BET"
	CmdHit       = "HIT"
	CmdStand     = "STAND"
	CmdDouble    = "DOUBLE"
	CmdSplit     = "SPLIT"
	CmdLeave     = "LEAVE"
)

// Command is a single inbound record from a client.
// Type discriminates the kind; only the fields for that kind are meaningful.
type Command struct {
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
	Amount int    `json:"amount,omitempty"`
}

var knownCommands = map[string]bool{
	CmdSetName:   true,
	CmdStart:     true,
	CmdBet:       true,
	CmdCancelBet: true,
	CmdHit:       true,
	CmdStand:     true,
	CmdDouble:    true,
	CmdSplit:     true,
	CmdLeave:     true,
}

// ParseCommand decodes one line-delimited record into a Command
func ParseCommand(data []byte) (*Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, ErrMalformedCommand
	}

	if !knownCommands[cmd.Type] {
		return nil, fmt.Errorf("unknown command: %q", cmd.Type)
	}

	return &cmd, nil
}
