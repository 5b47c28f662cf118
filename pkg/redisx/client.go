package redisx

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/danghamo/zoo/pkg/logger"
)

// Client wraps redis.Client with connection logging
type Client struct {
	*redis.Client
	logger *logger.Logger
}

// ClientOption represents an option for creating a new Redis client
type ClientOption func(*clientOptions)

// clientOptions holds configuration options for the Redis client
type clientOptions struct {
	usePrivateDB bool
	dialTimeout  time.Duration
}

// WithPrivate enables private DB isolation for development environments
// This will automatically assign a unique DB number based on hostname
func WithPrivate() ClientOption {
	return func(opts *clientOptions) {
		opts.usePrivateDB = true
	}
}

// WithPingTimeout bounds the connection check performed by NewClient
func WithPingTimeout(timeout time.Duration) ClientOption {
	return func(opts *clientOptions) {
		opts.dialTimeout = timeout
	}
}

// NewClient creates a new Redis client from URL with options
func NewClient(ctx context.Context, redisURL string, log *logger.Logger, opts ...ClientOption) (*Client, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL cannot be empty")
	}

	if log == nil {
		log = logger.GetGlobalLogger()
	}

	options := &clientOptions{dialTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(options)
	}

	finalURL := redisURL
	if options.usePrivateDB {
		var err error
		finalURL, err = PrivateUrl(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to get private URL: %w", err)
		}
	}

	redisOptions, err := redis.ParseURL(finalURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := &Client{
		Client: redis.NewClient(redisOptions),
		logger: log.WithComponent("redisx"),
	}

	pingCtx, cancel := context.WithTimeout(ctx, options.dialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logFields := []zap.Field{
		zap.String("addr", redisOptions.Addr),
		zap.Int("db", redisOptions.DB),
		zap.Int("pool_size", redisOptions.PoolSize),
	}

	if options.usePrivateDB {
		logFields = append(logFields, zap.Bool("private_db", true))
	}

	client.logger.Info("Redis client connected successfully", logFields...)

	return client, nil
}

// Close closes the Redis client connection
func (c *Client) Close() error {
	c.logger.Info("Closing Redis connection")
	return c.Client.Close()
}

// PrivateUrl provides development isolation by assigning unique DB numbers based on hostname
// It uses Redis DB 0 to store hostname->DB mappings and auto-increments DB numbers
func PrivateUrl(redisURL string) (string, error) {
	if redisURL == "" {
		return "", fmt.Errorf("redis URL cannot be empty")
	}

	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to get hostname: %w", err)
	}

	return privateUrlWithHostname(redisURL, hostname)
}

// privateUrlWithHostname is a testable version that accepts hostname as parameter
func privateUrlWithHostname(redisURL, hostname string) (string, error) {
	if redisURL == "" {
		return "", fmt.Errorf("redis URL cannot be empty")
	}

	if hostname == "" {
		return "", fmt.Errorf("hostname cannot be empty")
	}

	parsedURL, err := url.Parse(redisURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connect to Redis DB 0 to manage private DB assignments
	db0URL := *parsedURL
	db0URL.Path = "/0"

	options, err := redis.ParseURL(db0URL.String())
	if err != nil {
		return "", fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(options)
	defer rdb.Close()

	ctx := context.Background()

	dbNumber, err := rdb.HGet(ctx, "private_db", hostname).Result()
	if err == redis.Nil {
		// DB 0 is reserved for management, so numbering starts from 1
		nextDB, err := rdb.HIncrBy(ctx, "private_db:counter", "next", 1).Result()
		if err != nil {
			return "", fmt.Errorf("failed to get next DB number: %w", err)
		}

		err = rdb.HSet(ctx, "private_db", hostname, nextDB).Err()
		if err != nil {
			return "", fmt.Errorf("failed to assign DB to hostname: %w", err)
		}

		dbNumber = strconv.FormatInt(nextDB, 10)
	} else if err != nil {
		return "", fmt.Errorf("failed to check existing DB assignment: %w", err)
	}

	newURL := *parsedURL
	newURL.Path = "/" + dbNumber

	return newURL.String(), nil
}
