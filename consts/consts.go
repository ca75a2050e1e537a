// Package consts defines cross-module constants used throughout the application.
package consts

// ServiceName is the application service name
const ServiceName = "verdanta"

// Project information constants
const (
	// ProjectName is the display name of the project
	ProjectName = "Verdanta"

	// ProjectURL is the GitHub repository URL
	ProjectURL = "https://github.com/verdanta/verdanta"
)

// Build information - set via ldflags during build
var (
	// Version is the application version
	Version = "dev"

	// BuildTime is the build timestamp
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)
