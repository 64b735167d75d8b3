// Command lessonsync publishes a directory of Markdown lessons into
// LessonHub: it uploads referenced images and files to the configured
// storage backend, rewrites their links, and upserts one course page per
// document keyed by slug. Re-running it is safe.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lessonhub-app/lessonhub/internal/app/contentsync"
	pagestore "github.com/lessonhub-app/lessonhub/internal/app/store/coursepages"
	"github.com/lessonhub-app/lessonhub/internal/app/system/blobstore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

func main() {
	var (
		root        = flag.String("root", ".", "content root directory holding the Markdown lessons")
		mongoURI    = flag.String("mongo-uri", "", "MongoDB connection URI (default: LESSONHUB_MONGO_URI)")
		mongoDB     = flag.String("mongo-database", "", "MongoDB database name (default: LESSONHUB_MONGO_DATABASE or lessonhub)")
		storageType = flag.String("storage", "local", "storage backend: 'local' or 's3'")
		localPath   = flag.String("local-path", "./uploads/assets", "local storage path (storage=local)")
		localURL    = flag.String("local-url", "/files/assets", "public URL prefix for local assets (storage=local)")
		s3Region    = flag.String("s3-region", "", "AWS region (storage=s3)")
		s3Bucket    = flag.String("s3-bucket", "", "S3 bucket name (storage=s3)")
		s3Prefix    = flag.String("s3-prefix", "assets/", "S3 key prefix (storage=s3)")
		s3Endpoint  = flag.String("s3-endpoint", "", "custom endpoint for S3-compatible backends (storage=s3)")
		publicURL   = flag.String("public-url", "", "public base URL for stored assets (storage=s3)")
		envFile     = flag.String("env", ".env", "env file with credentials (missing file is ignored)")
		dev         = flag.Bool("dev", false, "human-readable log output")
	)
	flag.Parse()

	// Credentials come from the env file or the process environment, never
	// from flags, so they stay out of shell history.
	_ = godotenv.Load(*envFile)

	logger, err := buildLogger(*dev)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	uri := firstNonEmpty(*mongoURI, os.Getenv("LESSONHUB_MONGO_URI"), "mongodb://localhost:27017")
	dbName := firstNonEmpty(*mongoDB, os.Getenv("LESSONHUB_MONGO_DATABASE"), "lessonhub")

	ctx := context.Background()

	client, err := connect(ctx, uri)
	if err != nil {
		logger.Error("mongo connect failed", zap.Error(err))
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	blobs, err := buildStore(ctx, *storageType, storeSettings{
		localPath:  *localPath,
		localURL:   *localURL,
		s3Region:   *s3Region,
		s3Bucket:   *s3Bucket,
		s3Prefix:   *s3Prefix,
		s3Endpoint: *s3Endpoint,
		publicURL:  *publicURL,
	})
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		os.Exit(1)
	}

	runner := &contentsync.Runner{
		Pages: pagestore.New(client.Database(dbName)),
		Blobs: blobs,
		Log:   logger,
	}

	res, err := runner.Run(ctx, *root)
	if err != nil {
		logger.Error("sync aborted", zap.Error(err))
		os.Exit(1)
	}
	if res.Failed > 0 {
		os.Exit(1)
	}
}

type storeSettings struct {
	localPath  string
	localURL   string
	s3Region   string
	s3Bucket   string
	s3Prefix   string
	s3Endpoint string
	publicURL  string
}

func buildStore(ctx context.Context, kind string, s storeSettings) (blobstore.Store, error) {
	switch kind {
	case "local":
		return blobstore.NewLocal(s.localPath, s.localURL), nil
	case "s3":
		return blobstore.NewS3(ctx, blobstore.S3Options{
			Region:    s.s3Region,
			Bucket:    s.s3Bucket,
			Prefix:    s.s3Prefix,
			PublicURL: s.publicURL,
			Endpoint:  s.s3Endpoint,
			AccessKey: os.Getenv("LESSONHUB_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("LESSONHUB_S3_SECRET_KEY"),
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want 'local' or 's3')", kind)
	}
}

func connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return client, nil
}

func buildLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
