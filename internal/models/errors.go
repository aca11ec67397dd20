package models

import "errors"

var (
	ErrUnknownVariant = errors.New("unknown timer variant")
	ErrUnknownStage   = errors.New("unknown stage")
	ErrInvalidAction  = errors.New("invalid keypad action")
	ErrInvalidState   = errors.New("invalid run state")
	ErrInvalidValue   = errors.New("invalid stage value")
	ErrMissingKey     = errors.New("missing snapshot key")
)
