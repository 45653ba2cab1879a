package diag

import (
	"errors"
	"fmt"

	"pystub/internal/syntax"
)

type Kind string

const (
	KindUnrecognizedOption       Kind = "UNRECOGNIZED_OPTION"
	KindDuplicateOption          Kind = "DUPLICATE_OPTION"
	KindDuplicateParam           Kind = "SIGNATURE_DUPLICATE_NAME"
	KindOrderingViolation        Kind = "SIGNATURE_ORDERING_VIOLATION"
	KindDefaultOrderingViolation Kind = "SIGNATURE_DEFAULT_ORDERING_VIOLATION"
	KindMemberMissingType        Kind = "MEMBER_MISSING_TYPE"
	KindEnumPayloadVariant       Kind = "ENUM_PAYLOAD_VARIANT"
	KindSetterWithoutGetter      Kind = "METHOD_SETTER_WITHOUT_GETTER"
	KindPropertyTypeMismatch     Kind = "METHOD_PROPERTY_TYPE_MISMATCH"
)

// Diagnostic is the single structured error value every compiler returns.
// It names the failure kind, the offending identifier, and where it was
// declared. It is never logged here; surfacing is the caller's job.
type Diagnostic struct {
	Kind     Kind
	Ident    string
	Message  string
	Location syntax.Location
}

func (d *Diagnostic) Error() string {
	msg := fmt.Sprintf("[%s] %s", d.Kind, d.Message)
	if d.Ident != "" {
		msg = fmt.Sprintf("%s (%s)", msg, d.Ident)
	}
	if d.Location.File != "" {
		msg = fmt.Sprintf("%s at %s:%d:%d", msg, d.Location.File, d.Location.Line, d.Location.Column)
	}
	return msg
}

func New(kind Kind, ident, msg string) *Diagnostic {
	return &Diagnostic{Kind: kind, Ident: ident, Message: msg}
}

// At returns the diagnostic with its source location set.
func (d *Diagnostic) At(loc syntax.Location) *Diagnostic {
	d.Location = loc
	return d
}

func IsKind(err error, kind Kind) bool {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Kind == kind
	}
	return false
}

// IdentOf returns the offending identifier carried by err, if any.
func IdentOf(err error) string {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Ident
	}
	return ""
}
