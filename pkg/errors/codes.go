package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeTimeout            ErrorCode = "COMMON_004"
	ErrCodeSerialization      ErrorCode = "COMMON_005"
	ErrCodeCacheError         ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_007"
	ErrCodeConfigInvalid      ErrorCode = "COMMON_008"
)

// Extraction error codes.  Only genuinely unusable input earns a code;
// low-yield pages are a NO_DATA record, not an error.
const (
	ErrCodeEmptyInput        ErrorCode = "EXT_001"
	ErrCodeContentTooShort   ErrorCode = "EXT_002"
	ErrCodeMarkupParseFailed ErrorCode = "EXT_003"
)

// Registrar lookup error codes.
const (
	ErrCodeRDAPUnavailable  ErrorCode = "REG_001"
	ErrCodeWhoisUnavailable ErrorCode = "REG_002"
	ErrCodeLookupTimeout    ErrorCode = "REG_003"
	ErrCodeWhoisParseFailed ErrorCode = "REG_004"
	ErrCodeDomainInvalid    ErrorCode = "REG_005"
)

// Sentinel aliases used across layers.
const (
	CodeOK       = ErrorCode("OK")
	CodeUnknown  = ErrorCode("UNKNOWN")
	CodeInternal = ErrCodeInternal
	CodeNotFound = ErrCodeNotFound
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTimeout:            "operation timed out",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeConfigInvalid:      "invalid configuration",

	ErrCodeEmptyInput:        "empty page input",
	ErrCodeContentTooShort:   "page content too short",
	ErrCodeMarkupParseFailed: "failed to parse page markup",

	ErrCodeRDAPUnavailable:  "rdap source unavailable",
	ErrCodeWhoisUnavailable: "whois source unavailable",
	ErrCodeLookupTimeout:    "registrar lookup timed out",
	ErrCodeWhoisParseFailed: "failed to parse whois response",
	ErrCodeDomainInvalid:    "invalid domain name",
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// ModuleForCode returns the module prefix of an ErrorCode ("COMMON", "EXT",
// "REG"), used as a metric label.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
