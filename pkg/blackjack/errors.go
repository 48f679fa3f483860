package blackjack

import "errors"

// ErrTableFull is an error when a fifth participant tries to take a seat
var ErrTableFull = errors.New("table is full (max 4)")

// ErrRoundInProgress is an error when betting is opened while a round or betting phase is already open
var ErrRoundInProgress = errors.New("a round or betting is already open")

// ErrBettingNotOpen is an error when a bet arrives outside the betting phase
var ErrBettingNotOpen = errors.New("betting is not open")

// ErrInvalidBetAmount is an error when a bet is not a positive amount
var ErrInvalidBetAmount = errors.New("bet must be a positive amount")

// ErrInsufficientBalance is an error when a debit would take a balance negative
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrNotYourTurn is an error when a turn action arrives from anyone but the turn holder
var ErrNotYourTurn = errors.New("it's not your turn")

// ErrNoActiveHand is an error when the active hand index points at nothing
var ErrNoActiveHand = errors.New("no active hand")

// ErrDoubleNeedsTwoCards is an error when a double-down is attempted off a two-card hand
var ErrDoubleNeedsTwoCards = errors.New("you can only double with exactly 2 cards")

// ErrCannotSplit is an error when a split is attempted on an ineligible hand
var ErrCannotSplit = errors.New("this hand cannot be split")

// ErrNotSeated is an error when a command arrives for an unknown participant
var ErrNotSeated = errors.New("you are not seated at this table")

// ErrEmptyName is an error when a rename has no name
var ErrEmptyName = errors.New("name cannot be empty")
