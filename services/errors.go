package services

import "aasaasi/store"

// InputError is a request the caller has to fix.
type InputError struct {
	Detail string
}

func (e *InputError) Error() string { return e.Detail }

func invalid(detail string) error { return &InputError{Detail: detail} }

// NotFoundError carries the message shown for a missing resource.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string { return e.Detail }

func (e *NotFoundError) Unwrap() error { return store.ErrNotFound }

func notFound(detail string) error { return &NotFoundError{Detail: detail} }
