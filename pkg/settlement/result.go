package settlement

// Outcome is the terminal result of processing one payment callback. Every
// rejection is a value here rather than an error so the response mapping
// stays a total function.
type Outcome string

const (
	// OutcomeSettled means the order is paid and the buyer fulfilled. It is
	// also returned for a duplicate delivery of an already-settled order so
	// the processor stops retrying.
	OutcomeSettled Outcome = "SETTLED"

	// OutcomeMissingHeaders covers absent mandatory headers and structurally
	// invalid payloads. Nothing beyond the request itself was inspected.
	OutcomeMissingHeaders Outcome = "MISSING_HEADERS"

	// OutcomeInvalidSignature means the HMAC did not verify. No store access
	// happened.
	OutcomeInvalidSignature Outcome = "INVALID_SIGNATURE"

	// OutcomeTransactionNotFound means no order exists for the callback's
	// transaction id.
	OutcomeTransactionNotFound Outcome = "TRANSACTION_NOT_FOUND"

	// OutcomeAmountMismatch means the paid amount is not exactly the order's
	// total.
	OutcomeAmountMismatch Outcome = "AMOUNT_MISMATCH"

	// OutcomeInternalError signals the processor to retry later.
	OutcomeInternalError Outcome = "INTERNAL_ERROR"
)
