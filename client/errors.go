package client

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Sentinel errors surfaced by all client methods. Match with errors.Is.
var (
	// ErrAuthentication marks rejected credentials, at construction or on a
	// re-login after expiry.
	ErrAuthentication = errors.New("authentication failed")
	// ErrConnection marks an unreachable server or transport failure.
	ErrConnection = errors.New("server unreachable")
	// ErrPermission marks an authenticated session that lacks rights for the
	// operation.
	ErrPermission = errors.New("permission denied")
	// ErrValidation marks a create/update payload the server rejected.
	ErrValidation = errors.New("invalid request")
	// ErrNotFound marks an operation on a nonexistent identifier, including a
	// missing parent reference on create.
	ErrNotFound = errors.New("not found")
)

// wrapError maps a gRPC status to the client's error taxonomy, keeping the
// operation name and the server's detail text. Errors outside the taxonomy
// pass through wrapped with the operation name only.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}

	var kind error
	switch st.Code() {
	case codes.Unauthenticated:
		kind = ErrAuthentication
	case codes.PermissionDenied:
		kind = ErrPermission
	case codes.NotFound:
		kind = ErrNotFound
	case codes.InvalidArgument, codes.AlreadyExists, codes.FailedPrecondition:
		kind = ErrValidation
	case codes.Unavailable, codes.DeadlineExceeded:
		kind = ErrConnection
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %s", op, kind, st.Message())
}
