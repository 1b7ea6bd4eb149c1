package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shrimpsizemoose/schoolcli/internal/models"
	"github.com/shrimpsizemoose/schoolcli/internal/store"
)

const (
	documentKeyTpl = "%s:%s" // ${prefix}:${document}
	lockKeyTpl     = "%s:lock"
	lockPoll       = 50 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisStore struct {
	redis   *redis.Client
	prefix  string
	lockTTL time.Duration
}

func NewRedisStore(url, prefix string, lockTTL time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{redis: client, prefix: prefix, lockTTL: lockTTL}, nil
}

func (s *RedisStore) LoadTrainees(ctx context.Context) ([]models.Trainee, error) {
	data, err := s.get(ctx, store.TraineesDocument)
	if err != nil {
		return nil, err
	}
	return store.DecodeCollection[models.Trainee](data)
}

func (s *RedisStore) SaveTrainees(ctx context.Context, trainees []models.Trainee) error {
	data, err := store.EncodeCollection(trainees)
	if err != nil {
		return err
	}
	return s.set(ctx, store.TraineesDocument, data)
}

func (s *RedisStore) LoadCourses(ctx context.Context) ([]models.Course, error) {
	data, err := s.get(ctx, store.CoursesDocument)
	if err != nil {
		return nil, err
	}
	return store.DecodeCollection[models.Course](data)
}

func (s *RedisStore) SaveCourses(ctx context.Context, courses []models.Course) error {
	data, err := store.EncodeCollection(courses)
	if err != nil {
		return err
	}
	return s.set(ctx, store.CoursesDocument, data)
}

// Lock polls SET NX until it wins or ctx ends. The TTL frees the lock if the
// holder dies mid-command.
func (s *RedisStore) Lock(ctx context.Context) (func() error, error) {
	key := fmt.Sprintf(lockKeyTpl, s.prefix)
	token := uuid.NewString()

	for {
		ok, err := s.redis.SetNX(ctx, key, token, s.lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to take lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to take lock: %w", ctx.Err())
		case <-time.After(lockPoll):
		}
	}

	return func() error {
		if err := releaseScript.Run(context.Background(), s.redis, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release lock: %w", err)
		}
		return nil
	}, nil
}

func (s *RedisStore) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, name string) ([]byte, error) {
	key := fmt.Sprintf(documentKeyTpl, s.prefix, name)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return data, nil
}

func (s *RedisStore) set(ctx context.Context, name string, data []byte) error {
	key := fmt.Sprintf(documentKeyTpl, s.prefix, name)
	if err := s.redis.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}
