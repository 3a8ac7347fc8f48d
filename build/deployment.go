package build

// DeploymentType tells development builds, which may carry test hooks, from
// production builds.
type DeploymentType byte

const (
	// Development builds log to the console before logging is set up and
	// allow test hooks.
	Development DeploymentType = iota

	// Production builds disable logging until the CLI configures it.
	Production
)

// String returns a human readable name for a build type.
func (b DeploymentType) String() string {
	switch b {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}

// IsProdBuild returns true if this is a production build.
func IsProdBuild() bool {
	return Deployment == Production
}
