package service

import "errors"

var (
	ErrNotAuthorized       = errors.New("not authorized")
	ErrRoleAlreadyAssigned = errors.New("role already assigned")
	ErrNotFound            = errors.New("not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidTransition   = errors.New("invalid order transition")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidIdentity     = errors.New("invalid identity")
	ErrInvalidName         = errors.New("invalid name")
	ErrDuplicateRequest    = errors.New("duplicate request")
	ErrClosed              = errors.New("service closed")
	ErrJournalBacklog      = errors.New("journal backlog full")
	ErrCorruptJournal      = errors.New("corrupt journal")
)
