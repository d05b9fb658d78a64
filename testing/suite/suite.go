package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"

	// redisAddrEnv points the suite at an already running Redis instead of a container.
	redisAddrEnv = "TEST_REDIS_ADDR"
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage   *redis.Client
	RedisAddr string
}

// New - gives the test a clean Redis database, started in docker unless TEST_REDIS_ADDR is set.
// The test is skipped when docker is not reachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	redisAddr := os.Getenv(redisAddrEnv)
	if redisAddr == "" {
		redisAddr = startRedis(t)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	t.Cleanup(func() {
		_ = redisClient.Close()
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("could not connect to redis at %s: %v", redisAddr, err)
	}

	if err := redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	return ctx, &Suite{
		T:         t,
		Logger:    logger,
		Storage:   redisClient,
		RedisAddr: redisAddr,
	}
}

func startRedis(t *testing.T) string {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not construct docker pool: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}

	// pulls an image, creates a container based on it and runs it
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		// set AutoRemove to true so that stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge resource: %v", err)
		}
	})

	// never returns error
	_ = resource.Expire(expireDuration) // Tell docker to hard kill the container in 120 seconds

	redisAddr := resource.GetHostPort(redisPort)

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	pool.MaxWait = maxWaitDuration

	if err = pool.Retry(func() error {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer client.Close()

		return client.Ping(context.Background()).Err()
	}); err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}

	return redisAddr
}
