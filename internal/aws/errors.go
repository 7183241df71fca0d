package aws

import (
	"errors"
	"strings"

	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"
	"github.com/aws/smithy-go"

	"github.com/vietdv277/nimbus/internal/retry"
	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

// ClassifyError maps an update invocation error onto the outcome
// failure taxonomy. The detail is the platform's message, suitable for
// the notification body.
func ClassifyError(err error) (pkgtypes.FailureKind, string) {
	if err == nil {
		return pkgtypes.FailureUnknown, ""
	}

	var (
		invalidParam *ekstypes.InvalidParameterException
		invalidReq   *ekstypes.InvalidRequestException
		notFound     *ekstypes.ResourceNotFoundException
		inUse        *ekstypes.ResourceInUseException
		server       *ekstypes.ServerException
		unavailable  *ekstypes.ServiceUnavailableException
		accessDenied *ekstypes.AccessDeniedException
	)

	switch {
	case errors.As(err, &invalidParam), errors.As(err, &invalidReq), errors.As(err, &notFound):
		return pkgtypes.FailureValidation, err.Error()
	case errors.As(err, &accessDenied):
		return pkgtypes.FailurePermission, err.Error()
	case errors.As(err, &inUse):
		// another update is already in progress on this resource
		return pkgtypes.FailureConflict, err.Error()
	case errors.As(err, &server), errors.As(err, &unavailable), retry.IsThrottle(err):
		return pkgtypes.FailureTransient, err.Error()
	}

	var ae smithy.APIError
	if errors.As(err, &ae) {
		switch ae.ErrorCode() {
		case "AccessDeniedException", "UnauthorizedException", "UnauthorizedOperation":
			return pkgtypes.FailurePermission, err.Error()
		case "ValidationException", "ValidationError":
			return pkgtypes.FailureValidation, err.Error()
		}
	}

	return pkgtypes.FailureUnknown, err.Error()
}

// IsDisruptionBlocked reports whether an update was rejected because
// pods could not be evicted within their disruption budgets
func IsDisruptionBlocked(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "PodEvictionFailure") || strings.Contains(msg, "PDB")
}
