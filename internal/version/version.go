// ABOUTME: Version information for NeuroSonic
// ABOUTME: Reported by the remote API, mDNS records and the CLI banner
package version

const (
	// Version is the current release
	Version = "0.3.0"

	// Product is the name shown to remote clients
	Product = "NeuroSonic Engine"

	// Manufacturer is the vendor string in mDNS records
	Manufacturer = "NeuroSonic"
)
