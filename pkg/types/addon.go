package types

// AuthMode describes how an addon authenticates to AWS
type AuthMode string

const (
	AuthPodIdentity AuthMode = "pod-identity"
	AuthIRSA        AuthMode = "irsa"
	AuthNone        AuthMode = "none"
)

// PodIdentityAssociation links a Kubernetes service account to an IAM role
type PodIdentityAssociation struct {
	ServiceAccount string
	RoleARN        string
}

// Addon represents an installed EKS addon and the authentication
// configuration that must survive an update untouched
type Addon struct {
	Name                  string
	Version               string
	AuthMode              AuthMode
	ServiceAccountRoleARN string                   // set for IRSA
	PodIdentities         []PodIdentityAssociation // set for pod identity
	ConfigurationValues   string                   // opaque, carried through updates
}

// DisplayAuth returns the human-readable form used in notifications
func (a Addon) DisplayAuth() string {
	switch a.AuthMode {
	case AuthPodIdentity:
		return "Pod Identity"
	case AuthIRSA:
		return "IRSA"
	default:
		return "None"
	}
}
