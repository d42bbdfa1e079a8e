package apperrors

const (
	// ErrUnsupportedEvent marks event kinds this gateway does not handle.
	// Recoverable: the delivery is acknowledged without side effects.
	ErrUnsupportedEvent = "UNSUPPORTED_EVENT"

	// ErrERPRequestFailed marks a non-success response from a Fortnox call.
	ErrERPRequestFailed = "ERP_REQUEST_FAILED"

	// ErrCustomerNotFound marks an exhausted customer resolution chain.
	ErrCustomerNotFound = "CUSTOMER_NOT_FOUND"

	// ErrTransportFailure marks a network or timeout error on an outbound call.
	ErrTransportFailure = "TRANSPORT_FAILURE"

	// ErrInvalidPayload marks an event body that could not be decoded.
	ErrInvalidPayload = "INVALID_PAYLOAD"

	ErrInternal = "INTERNAL"
)
