package core

// error_messages.go maps technical errors to user-facing messages with
// support codes. Patterns are matched case-insensitively with
// strings.Contains, first match wins, so specific patterns come before
// general ones.
//
// Code ranges:
//
//	SCH001        missing required column (schema error)
//	FILE001-003   unreadable, oversized, or empty uploads
//	CMP001        selection matched no rows on either side
//	SES001-002    session evicted / session store full
//	RATE001       request throttled
//	ERR000        fallback

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable
// guidance and a code for support reference.
type UserMessage struct {
	Message string // what happened
	Action  string // what to do about it
	Code    string // support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "The file is missing a required column",
			Action:  "Export the report again with all standard columns included",
			Code:    "SCH001",
		},
	},
	{
		pattern: "could not read file",
		msg: UserMessage{
			Message: "Could not read file",
			Action:  "Upload the original .xls or .xlsx export, not a renamed or converted file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The upload exceeds the size limit",
			Action:  "Export a single store or a narrower date range and retry",
			Code:    "FILE002",
		},
	},
	{
		pattern: "limit is",
		msg: UserMessage{
			Message: "The file has more rows than this tool accepts",
			Action:  "Export a single store or a narrower date range and retry",
			Code:    "FILE002",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Check the export completed before uploading",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no matching data",
		msg: UserMessage{
			Message: "No inventory matches the selected store and type",
			Action:  "Pick a different store or inventory type, or check the uploaded files",
			Code:    "CMP001",
		},
	},
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "This comparison session has expired",
			Action:  "Upload both files again to start a new comparison",
			Code:    "SES001",
		},
	},
	{
		pattern: "too many active sessions",
		msg: UserMessage{
			Message: "The server is at its session limit",
			Action:  "Wait a minute and try again",
			Code:    "SES002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// MapError converts a technical error to a user-friendly message.
// Typed domain errors keep their specifics (the missing column name,
// the empty selection); everything else goes through the pattern table.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{Message: "Success", Code: "OK"}
	}

	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return UserMessage{
			Message: fmt.Sprintf("The %s file is missing required column %q", schemaErr.Source, schemaErr.Column),
			Action:  "Export the report again with all standard columns included",
			Code:    "SCH001",
		}
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return UserMessage{
			Message: fmt.Sprintf("No %s inventory matches store %q in either file", valErr.InventoryType, valErr.Store),
			Action:  "Pick a different store or inventory type, or check the uploaded files",
			Code:    "CMP001",
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support",
		Code:    "ERR000",
	}
}
