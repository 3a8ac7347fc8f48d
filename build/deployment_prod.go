//go:build !dev

package build

// Deployment specifies a production build.
const Deployment = Production
