package econ

import "errors"

// Purchase and prestige failures. None of these are fatal: they are
// surfaced to the UI as feedback messages and leave state untouched.
var (
	ErrInsufficientFunds = errors.New("econ: insufficient funds")
	ErrParticleLocked    = errors.New("econ: particle is locked")
	ErrAlreadyPurchased  = errors.New("econ: upgrade already purchased")
	ErrUnknownID         = errors.New("econ: unknown particle or upgrade id")
)
