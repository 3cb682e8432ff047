// Provides platform-appropriate default paths for tripd.
//
// Paths follow XDG conventions on Linux and platform-native conventions on
// macOS and Windows, with "tripd" as the subdirectory under each base path.
// Explicit configuration (for example the LOG_FILE environment variable set
// by the container image) always takes precedence over these defaults.
package paths
