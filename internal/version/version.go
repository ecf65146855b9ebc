package version

// AppVersion is the version reported by the server and the CLI.
// Release builds overwrite it via:
//
//	-ldflags "-X github.com/open-cli-collective/opencli-mcp/internal/version.AppVersion=vX.Y.Z"
var AppVersion = "v0.4.0"
