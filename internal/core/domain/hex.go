package domain

import "eth_rpc_proxy/internal/utils"

// DefaultFieldLabel is used in validation messages when no label is given.
const DefaultFieldLabel = "Block Number"

// Field labels used by the routes.
const (
	FieldLabelBlockNumber = "Block Number"
	FieldLabelIndex       = "Index"
)

// ValidateHex checks that value, after an optional "0x" prefix, is a non-empty
// run of hexadecimal digits. The value itself is never modified.
func ValidateHex(value, label string) error {
	if label == "" {
		label = DefaultFieldLabel
	}
	if !utils.IsHexDigits(utils.StripHexPrefix(value)) {
		return NewValidationError(label, value)
	}
	return nil
}
