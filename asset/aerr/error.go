// Package aerr holds the error kinds shared by every asset decoder.
package aerr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindBadMagic          = Kind("bad_magic")
	KindTruncatedRead     = Kind("truncated_read")
	KindUnresolvedName    = Kind("unresolved_name")
	KindUnexpectedPadding = Kind("unexpected_padding")
	KindStringOutOfRange  = Kind("string_out_of_range")
	KindInvalidLayout     = Kind("invalid_layout")
)

type (
	// FormatError reports a malformed or unsupported file. Offset is relative to the start of
	// the structure being decoded, or -1 when unknown.
	FormatError struct {
		Kind   Kind
		Caller string
		Entry  string
		Offset int64
		Detail string
	}
)

func (r *FormatError) Error() string {
	parts := []string{r.Caller, string(r.Kind)}
	if r.Entry != "" {
		parts = append(parts, fmt.Sprintf(`entry "%s"`, r.Entry))
	}
	if r.Offset >= 0 {
		parts = append(parts, fmt.Sprintf("offset 0x%X", r.Offset))
	}
	msg := strings.Join(parts, ": ")
	if r.Detail != "" {
		msg += ": " + r.Detail
	}
	return msg
}

func BadMagic(caller string, offset int64, expected uint32, actual uint32) error {
	return &FormatError{
		Kind:   KindBadMagic,
		Caller: caller,
		Offset: offset,
		Detail: fmt.Sprintf("expected 0x%08X, got 0x%08X", expected, actual),
	}
}

func TruncatedRead(caller string, offset int64, want int, got int) error {
	return &FormatError{
		Kind:   KindTruncatedRead,
		Caller: caller,
		Offset: offset,
		Detail: fmt.Sprintf("wanted %d bytes, got %d", want, got),
	}
}

func UnresolvedName(caller string, name string) error {
	return &FormatError{
		Kind:   KindUnresolvedName,
		Caller: caller,
		Offset: -1,
		Detail: fmt.Sprintf(`no entry named "%s"`, name),
	}
}

func UnexpectedPadding(caller string, offset int64, value uint64) error {
	return &FormatError{
		Kind:   KindUnexpectedPadding,
		Caller: caller,
		Offset: offset,
		Detail: fmt.Sprintf("reserved field holds 0x%X; unrecognized format variant", value),
	}
}

func StringOutOfRange(caller string, offset int64, size int64) error {
	return &FormatError{
		Kind:   KindStringOutOfRange,
		Caller: caller,
		Offset: offset,
		Detail: fmt.Sprintf("string offset outside of %d bytes", size),
	}
}

func InvalidLayout(caller string, offset int64, format string, args ...any) error {
	return &FormatError{
		Kind:   KindInvalidLayout,
		Caller: caller,
		Offset: offset,
		Detail: fmt.Sprintf(format, args...),
	}
}

func IsKind(err error, kind Kind) bool {
	var formatErr *FormatError
	if errors.As(err, &formatErr) {
		return formatErr.Kind == kind
	}
	return false
}

// IsFatal reports whether err must abort the whole run instead of only the current entry.
func IsFatal(err error) bool {
	return IsKind(err, KindUnexpectedPadding)
}

// WithEntry records the archive entry name on the FormatError inside err, if there is one.
func WithEntry(err error, entry string) error {
	var formatErr *FormatError
	if errors.As(err, &formatErr) && formatErr.Entry == "" {
		formatErr.Entry = entry
	}
	return err
}
