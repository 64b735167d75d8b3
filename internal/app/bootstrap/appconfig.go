// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, timeouts). AppConfig is everything specific to LessonHub:
// the MongoDB connection, session cookies, and the asset storage backend
// that serves images and files referenced by course pages.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: lessonhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Asset storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads/assets")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files/assets")

	// S3-compatible storage (only used if StorageType is "s3")
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3Prefix    string // Key prefix (e.g., "assets/")
	StorageS3Endpoint  string // Custom endpoint for S3-compatible backends (blank for AWS)
	StorageS3AccessKey string // Static access key (blank uses the default credential chain)
	StorageS3SecretKey string // Static secret key
	StoragePublicURL   string // Public base URL for stored assets (CDN or bucket URL)
}
