package errors

import (
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// ErrConfig indicates bad or missing desired-state inputs. Fatal to the
// current reconciliation pass; re-delivering the event will not help until
// the configuration changes.
var ErrConfig = errors.New("invalid configuration")

// ErrAuth indicates insufficient cluster privileges. The event adapter is
// expected to surface a blocked status and re-deliver the triggering event
// once access has been granted.
var ErrAuth = errors.New("insufficient cluster privileges")

// ErrAPI indicates a cluster API failure other than authorization. The
// underlying status code is preserved and can be recovered with StatusCode.
var ErrAPI = errors.New("cluster API request failed")

// ErrIO indicates a file push failure. It aborts the current push batch
// only; the failing file's identity is carried in the message.
var ErrIO = errors.New("file push failed")

// WrapConfig wraps an error as a configuration error.
func WrapConfig(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrConfig, err)
}

// WrapAuth wraps an error as an authorization error.
func WrapAuth(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrAuth, err)
}

// WrapAPI wraps an error as a cluster API error. Authorization failures are
// classified as ErrAuth instead so that callers can branch on a single
// sentinel.
func WrapAPI(err error) error {
	if err == nil {
		return nil
	}
	if apierrors.IsForbidden(err) {
		return WrapAuth(err)
	}
	return fmt.Errorf("%w: %w", ErrAPI, err)
}

// WrapIO wraps an error as a file push error, naming the failing file.
func WrapIO(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: file %q: %w", ErrIO, name, err)
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	return errors.Is(err, ErrConfig)
}

// IsAuth reports whether err is an authorization error.
func IsAuth(err error) bool {
	return errors.Is(err, ErrAuth) || apierrors.IsForbidden(err)
}

// IsAPI reports whether err is a cluster API error.
func IsAPI(err error) bool {
	return errors.Is(err, ErrAPI)
}

// IsIO reports whether err is a file push error.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// StatusCode extracts the HTTP status code from a wrapped Kubernetes API
// error. Returns 0 when no status is attached.
func StatusCode(err error) int32 {
	var status apierrors.APIStatus
	if errors.As(err, &status) {
		return status.Status().Code
	}
	return 0
}
