package aws

import (
	"errors"
	"fmt"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want pkgtypes.FailureKind
	}{
		{
			name: "invalid parameter",
			err:  &ekstypes.InvalidParameterException{Message: awssdk.String("bad version")},
			want: pkgtypes.FailureValidation,
		},
		{
			name: "invalid request",
			err:  &ekstypes.InvalidRequestException{Message: awssdk.String("cluster not active")},
			want: pkgtypes.FailureValidation,
		},
		{
			name: "resource not found",
			err:  &ekstypes.ResourceNotFoundException{Message: awssdk.String("no such addon")},
			want: pkgtypes.FailureValidation,
		},
		{
			name: "access denied",
			err:  &ekstypes.AccessDeniedException{Message: awssdk.String("not allowed")},
			want: pkgtypes.FailurePermission,
		},
		{
			name: "concurrent update in progress",
			err:  &ekstypes.ResourceInUseException{Message: awssdk.String("update in progress")},
			want: pkgtypes.FailureConflict,
		},
		{
			name: "server error",
			err:  &ekstypes.ServerException{Message: awssdk.String("internal")},
			want: pkgtypes.FailureTransient,
		},
		{
			name: "throttling",
			err:  &smithy.GenericAPIError{Code: "ThrottlingException"},
			want: pkgtypes.FailureTransient,
		},
		{
			name: "generic access denied code",
			err:  &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "nope"},
			want: pkgtypes.FailurePermission,
		},
		{
			name: "wrapped typed error",
			err:  fmt.Errorf("updating: %w", &ekstypes.ResourceInUseException{Message: awssdk.String("busy")}),
			want: pkgtypes.FailureConflict,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: pkgtypes.FailureUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, detail := ClassifyError(tt.err)
			assert.Equal(t, tt.want, kind)
			assert.NotEmpty(t, detail)
		})
	}
}

func TestIsDisruptionBlocked(t *testing.T) {
	assert.True(t, IsDisruptionBlocked(errors.New("PodEvictionFailure: unable to evict pods")))
	assert.True(t, IsDisruptionBlocked(errors.New("update blocked by PDB kube-system/coredns")))
	assert.False(t, IsDisruptionBlocked(errors.New("access denied")))
	assert.False(t, IsDisruptionBlocked(nil))
}
