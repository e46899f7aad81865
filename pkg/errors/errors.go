package errors

import (
	stdErrors "errors"
	"fmt"
)

// Code is the stable, machine-readable identifier carried by every failure
// the wallet raises. Callers and scripts match on codes, never on messages.
type Code string

const (
	CodeInvalidAmount          Code = "invalid_amount"
	CodeInvalidGamertag        Code = "invalid_gamertag"
	CodeUnsupportedDestination Code = "unsupported_destination"
	CodeAcceptTermsRequired    Code = "accept_terms_required"
	CodeInvalidAPIKey          Code = "invalid_api_key"
	CodeRegisterUnreachable    Code = "register_unreachable"
	CodeRegisterFailed         Code = "register_failed"
	CodeWalletRequestFailed    Code = "wallet_request_failed"
	CodeWalletResponseInvalid  Code = "wallet_response_invalid"
	CodeUpstreamRequestFailed  Code = "upstream_request_failed"
	CodeResponseInvalid        Code = "response_invalid"
	CodeLedgerIO               Code = "ledger_io"
	CodeConfig                 Code = "config_error"
	CodeInternal               Code = "internal_error"
)

// Metadata describes how a code behaves at the process boundary.
type Metadata struct {
	ExitCode  int
	Retryable bool
}

const (
	exitInternal   = 1
	exitValidation = 2
	exitAuth       = 3
	exitUpstream   = 4
	exitLocal      = 5
)

var metadataByCode = map[Code]Metadata{
	CodeInvalidAmount:          {ExitCode: exitValidation},
	CodeInvalidGamertag:        {ExitCode: exitValidation},
	CodeUnsupportedDestination: {ExitCode: exitValidation},
	CodeAcceptTermsRequired:    {ExitCode: exitValidation},
	CodeConfig:                 {ExitCode: exitValidation},
	CodeInvalidAPIKey:          {ExitCode: exitAuth},
	CodeRegisterUnreachable:    {ExitCode: exitUpstream, Retryable: true},
	CodeRegisterFailed:         {ExitCode: exitUpstream},
	CodeWalletRequestFailed:    {ExitCode: exitUpstream, Retryable: true},
	CodeWalletResponseInvalid:  {ExitCode: exitUpstream},
	CodeUpstreamRequestFailed:  {ExitCode: exitUpstream, Retryable: true},
	CodeResponseInvalid:        {ExitCode: exitUpstream},
	CodeLedgerIO:               {ExitCode: exitLocal, Retryable: true},
	CodeInternal:               {ExitCode: exitInternal},
}

// MetadataFor resolves metadata for a code, defaulting to internal.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// Error is the only error type raised by wallet code paths. It carries a
// code, a human message, an optional structured detail bag, and the cause.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts a typed *Error from any error chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf returns the code of an error, CodeInternal for untyped errors and
// the zero Code for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// UpstreamDetail is the structured detail attached to categorized upstream
// HTTP failures.
type UpstreamDetail struct {
	Status   int    `json:"status"`
	Path     string `json:"path"`
	Response string `json:"response"`
}
