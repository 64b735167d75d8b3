// Command lessonimport creates accounts in bulk from a line-oriented file
// of "username password" pairs. Existing usernames are skipped, so the file
// can be re-run after fixing rejected lines.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lessonhub-app/lessonhub/internal/app/accountimport"
	"github.com/lessonhub-app/lessonhub/internal/app/system/accountfile"
	"github.com/lessonhub-app/lessonhub/internal/app/system/identity"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

func main() {
	var (
		file    = flag.String("file", "", "account file: one 'username password' pair per line")
		mongoDB = flag.String("mongo-database", "", "MongoDB database name (default: LESSONHUB_MONGO_DATABASE or lessonhub)")
		envFile = flag.String("env", ".env", "env file with credentials (missing file is ignored)")
		dev     = flag.Bool("dev", false, "human-readable log output")
	)
	flag.Parse()

	_ = godotenv.Load(*envFile)

	logger, err := buildLogger(*dev)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *file == "" {
		logger.Error("missing -file: provide the account file to import")
		os.Exit(2)
	}

	// The connection string carries credentials, so it is only accepted
	// from the environment, never as a flag.
	uri := os.Getenv("LESSONHUB_MONGO_URI")
	if uri == "" {
		logger.Error("LESSONHUB_MONGO_URI is not set; refusing to guess a database")
		os.Exit(2)
	}
	dbName := firstNonEmpty(*mongoDB, os.Getenv("LESSONHUB_MONGO_DATABASE"), "lessonhub")

	f, err := os.Open(*file)
	if err != nil {
		logger.Error("account file open failed", zap.Error(err))
		os.Exit(1)
	}
	defer f.Close()

	parsed, err := accountfile.Parse(f)
	if err != nil {
		logger.Error("account file read failed", zap.Error(err))
		os.Exit(1)
	}
	for _, le := range parsed.Errors {
		logger.Warn("line rejected",
			zap.Int("line", le.Line),
			zap.String("reason", le.Reason))
	}

	ctx := context.Background()
	client, err := connect(ctx, uri)
	if err != nil {
		logger.Error("mongo connect failed", zap.Error(err))
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	gateway := identity.NewMongoGateway(client.Database(dbName))
	res := accountimport.Run(ctx, gateway, parsed.Accounts, logger)

	logger.Info("import finished",
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
		zap.Int("rejected_lines", len(parsed.Errors)))

	if res.Failed > 0 {
		os.Exit(1)
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
