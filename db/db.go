package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"aasaasi/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// extractDBName parses the database name from the URI, returning "" when
// the URI has no path.
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:]
	}
	return ""
}

// ResolveDBName prefers the configured name over one embedded in the URI.
func ResolveDBName(cfg config.DataSourceConfig) string {
	if cfg.MongoDB != "" {
		return cfg.MongoDB
	}
	if name := extractDBName(cfg.MongoURI); name != "" {
		return name
	}
	return "aasaasi_db"
}

// ConnectMongoDB connects and pings, returning the client and the selected
// database.
func ConnectMongoDB(ctx context.Context, cfg config.DataSourceConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, client.Database(ResolveDBName(cfg)), nil
}
