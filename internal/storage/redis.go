package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"github.com/fable-engine/fable/internal/loader"
	"github.com/fable-engine/fable/pkg/state"
	"github.com/fable-engine/fable/pkg/world"
)

const snapshotKeyPrefix = "save:"

// RedisStorage implements Storage using Redis for gamestate snapshots and
// the filesystem for game content. Saves carry no TTL; a session outlives
// process restarts until explicitly deleted.
type RedisStorage struct {
	client   *redis.Client
	logger   *slog.Logger
	gamesDir string
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance.
func NewRedisStorage(redisURL string, gamesDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})
	if gamesDir == "" {
		gamesDir = "./games"
	}
	return &RedisStorage{
		client:   rdb,
		logger:   logger,
		gamesDir: gamesDir,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

// WaitForConnection waits for Redis to become available during startup.
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	const maxRetries = 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}
		r.logger.Info("Redis connection established")
		return nil
	}
	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Snapshot operations (Redis-backed)

func (r *RedisStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	data, err := gs.Snapshot()
	if err != nil {
		r.logger.Error("Failed to marshal gamestate", "uuid", id, "error", err)
		return err
	}

	key := snapshotKeyPrefix + id.String()
	if err := r.client.Set(ctx, key, string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	key := snapshotKeyPrefix + id.String()
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to load gamestate", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}

	gs, err := state.RestoreSnapshot([]byte(data))
	if err != nil {
		r.logger.Error("Failed to restore gamestate snapshot", "uuid", id, "error", err)
		return nil, err
	}
	return gs, nil
}

func (r *RedisStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	key := snapshotKeyPrefix + id.String()
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}

// Game content operations (filesystem-backed)

// ListGames maps game titles to their directory names under the games dir.
func (r *RedisStorage) ListGames(ctx context.Context) (map[string]string, error) {
	entries, err := os.ReadDir(r.gamesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read games directory: %w", err)
	}

	games := make(map[string]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		metaPath := filepath.Join(r.gamesDir, entry.Name(), "game.yaml")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var meta struct {
			Title string `yaml:"title"`
		}
		if err := yaml.Unmarshal(data, &meta); err != nil {
			r.logger.Warn("Failed to parse game metadata", "path", metaPath, "error", err)
			continue
		}
		if meta.Title == "" {
			meta.Title = entry.Name()
		}
		games[meta.Title] = entry.Name()
	}
	return games, nil
}

// LoadWorld loads and validates one game directory.
func (r *RedisStorage) LoadWorld(ctx context.Context, name string) (*world.World, error) {
	dir := filepath.Join(r.gamesDir, name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("game %q: %w", name, ErrNotFound)
	}
	return loader.Load(dir)
}
