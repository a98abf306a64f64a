package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const (
	malformedManifestPrefix  = "malformed manifest"
	noApplicableTargetPrefix = "no applicable target"
)

// MalformedManifest reports a located manifest that lacks required structure.
// An optional cause is attached when decoding failed underneath.
func MalformedManifest(source string, detail string, cause ...error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s %s: %s", malformedManifestPrefix, source, detail))
	if len(cause) > 0 && cause[0] != nil {
		return builder.WithCause(cause[0])
	}
	return builder
}

// NoApplicableTarget reports an application manifest without a target section
// the selection policy could choose.
func NoApplicableTarget(source string, desired string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s %q in %s", noApplicableTargetPrefix, desired, source))
}

func IsMalformedManifest(err error) bool {
	return errbuilder.CodeOf(err) == errbuilder.CodeInvalidArgument &&
		strings.HasPrefix(ErrorMessage(err), malformedManifestPrefix)
}

func IsNoApplicableTarget(err error) bool {
	return errbuilder.CodeOf(err) == errbuilder.CodeFailedPrecondition &&
		strings.HasPrefix(ErrorMessage(err), noApplicableTargetPrefix)
}

// ErrorMessage returns the builder message of a coded error, or the plain
// error text otherwise.
func ErrorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
