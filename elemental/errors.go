package elemental

import "github.com/pkg/errors"

// Sentinel errors of generator construction and invocation. Both abort the
// surrounding compilation cleanly; errors.Is tells them apart.
var (
	// ErrUnimplemented reports an opcode/dtype combination this package has no
	// lowering for. The operation descriptor itself may be perfectly valid.
	ErrUnimplemented = errors.New("unimplemented")

	// ErrInvalidArgument reports an operation descriptor violating a
	// precondition cheap enough to check during generator construction.
	ErrInvalidArgument = errors.New("invalid argument")
)

func unimplementedf(format string, args ...any) error {
	return errors.Wrapf(ErrUnimplemented, format, args...)
}

func invalidArgf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
