package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// Business-rule failures. None are fatal: each is detected at the boundary of
// the operation that triggered it and the operation is a full no-op.
var (
	// ErrInsufficientFunds: the account cannot cover a debit or advance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientCash: the vault holds less than the requested withdrawal.
	ErrInsufficientCash = errors.New("insufficient cash in vault")

	// ErrUnsatisfiableDenomination: the amount is covered in total value but
	// cannot be represented with the bills on hand, or is not a multiple of 5.
	ErrUnsatisfiableDenomination = errors.New("amount cannot be dispensed with available denominations")

	// ErrUnsupportedOperation: the account category forbids the operation,
	// e.g. transfer-out or bill payment from a credit card.
	ErrUnsupportedOperation = errors.New("operation not supported for this account category")

	// ErrJointLimitExceeded: an account already has two owners.
	ErrJointLimitExceeded = errors.New("account already has the maximum of two owners")

	// ErrNothingToUndo: the account's ledger is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrCounterpartyNotFound: a transfer undo could not locate the other leg
	// among the user's accounts.
	ErrCounterpartyNotFound = errors.New("transfer counterparty not found among user accounts")
)
