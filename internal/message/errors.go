package message

import "fmt"

var (
	// ErrUnknownMethod is reported for methods outside the classification table
	ErrUnknownMethod = fmt.Errorf("unknown method")

	// ErrMalformedPayload is reported when params do not have the expected shape
	ErrMalformedPayload = fmt.Errorf("malformed payload")

	// ErrNoContentChanges is reported for a didChange without any change entry
	ErrNoContentChanges = fmt.Errorf("no content changes")
)
