package metrics

import (
	"context"
	"errors"
	"net"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Error type constants for metrics labels.
const (
	ErrorTypeAuth      = "auth"
	ErrorTypeForbidden = "forbidden"
	ErrorTypeNotFound  = "not_found"
	ErrorTypeExpired   = "expired"
	ErrorTypeTimeout   = "timeout"
	ErrorTypeTooMany   = "too_many_requests"
	ErrorTypeServer    = "server_error"
	ErrorTypeNetwork   = "network"
	ErrorTypeUnknown   = "unknown"
)

// ClassifyWatchError classifies an error from the watch stream or the API
// server for metrics labeling. Returns an empty string for nil errors.
func ClassifyWatchError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case apierrors.IsUnauthorized(err):
		return ErrorTypeAuth
	case apierrors.IsForbidden(err):
		return ErrorTypeForbidden
	case apierrors.IsNotFound(err):
		return ErrorTypeNotFound
	case apierrors.IsResourceExpired(err) || apierrors.IsGone(err):
		return ErrorTypeExpired
	case apierrors.IsTimeout(err) || apierrors.IsServerTimeout(err) || errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeTimeout
	case apierrors.IsTooManyRequests(err):
		return ErrorTypeTooMany
	case apierrors.IsInternalError(err) || apierrors.IsServiceUnavailable(err):
		return ErrorTypeServer
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrorTypeTimeout
		}

		return ErrorTypeNetwork
	}

	return classifyByErrorMessage(err.Error())
}

// ClassifyStatus classifies a watch Error event payload for metrics labeling.
// Watch error events carry a metav1.Status rather than a Go error.
func ClassifyStatus(status *metav1.Status) string {
	if status == nil {
		return ErrorTypeUnknown
	}

	return ClassifyWatchError(&apierrors.StatusError{ErrStatus: *status})
}

func classifyByErrorMessage(msg string) string {
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "connection refused"),
		strings.Contains(lower, "connection reset"),
		strings.Contains(lower, "no such host"):
		return ErrorTypeNetwork
	case strings.Contains(lower, "timeout"), strings.Contains(lower, "deadline"):
		return ErrorTypeTimeout
	}

	return ErrorTypeUnknown
}
