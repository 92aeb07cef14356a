package repository

import (
	"context"
	"fmt"
	"strconv"

	"task_manager_api/internal/domain"

	redis "github.com/redis/go-redis/v9"
)

// Each mutation runs as one Lua script so the owner check and the write
// happen atomically, the same way a single SQL statement would. Scripts only
// touch keys passed in KEYS.
var (
	createTaskScript = redis.NewScript(`
redis.call('HSET', KEYS[1], 'id', ARGV[1], 'title', ARGV[2], 'description', ARGV[3], 'completed', '0', 'user_id', ARGV[4])
redis.call('ZADD', KEYS[2], ARGV[1], ARGV[1])
return 1
`)

	updateTaskScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'user_id') ~= ARGV[1] then
  return 0
end
redis.call('HSET', KEYS[1], 'title', ARGV[2], 'description', ARGV[3])
return 1
`)

	deleteTaskScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'user_id') ~= ARGV[1] then
  return 0
end
redis.call('DEL', KEYS[1])
redis.call('ZREM', KEYS[2], ARGV[2])
return 1
`)
)

// The braces are a Redis Cluster hash tag: every key of one repository maps
// to the same slot, so multi-key scripts are allowed.
const defaultRedisPrefix = "{tasks}"

// RedisTaskRepository stores each task as a hash and keeps a per-owner
// sorted set of task ids scored by id. On Redis Cluster the prefix must
// carry a hash tag.
type RedisTaskRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisTaskRepository(client *redis.Client, prefix string) *RedisTaskRepository {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisTaskRepository{client: client, prefix: prefix}
}

func (r *RedisTaskRepository) seqKey() string {
	return r.prefix + ":seq"
}

func (r *RedisTaskRepository) taskKey(taskID int64) string {
	return r.taskKeyString(strconv.FormatInt(taskID, 10))
}

func (r *RedisTaskRepository) taskKeyString(taskID string) string {
	return r.prefix + ":task:" + taskID
}

func (r *RedisTaskRepository) ownerKey(userID int64) string {
	return r.prefix + ":user:" + strconv.FormatInt(userID, 10)
}

func (r *RedisTaskRepository) Create(ctx context.Context, userID int64, nt domain.NewTask) (*domain.Task, error) {
	// An id taken by a failed write is never reused; ids may have gaps.
	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return nil, storeErr(opCreate, err)
	}

	err = createTaskScript.Run(ctx, r.client,
		[]string{r.taskKey(id), r.ownerKey(userID)},
		id, nt.Title, nt.Description, strconv.FormatInt(userID, 10),
	).Err()
	if err != nil {
		return nil, storeErr(opCreate, err)
	}

	return &domain.Task{
		ID:          id,
		Title:       nt.Title,
		Description: nt.Description,
		Completed:   false,
		UserID:      userID,
	}, nil
}

func (r *RedisTaskRepository) List(ctx context.Context, userID int64) ([]*domain.Task, error) {
	ids, err := r.client.ZRange(ctx, r.ownerKey(userID), 0, -1).Result()
	if err != nil {
		return nil, storeErr(opList, err)
	}

	res := make([]*domain.Task, 0, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	cmds := make([]*redis.MapStringStringCmd, 0, len(ids))
	_, err = r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, id := range ids {
			cmds = append(cmds, p.HGetAll(ctx, r.taskKeyString(id)))
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(opList, err)
	}

	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			// deleted between ZRANGE and HGETALL
			continue
		}
		t, err := taskFromHash(fields)
		if err != nil {
			return nil, storeErr(opList, err)
		}
		if t.UserID == userID {
			res = append(res, t)
		}
	}
	return res, nil
}

func (r *RedisTaskRepository) Get(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	fields, err := r.client.HGetAll(ctx, r.taskKey(taskID)).Result()
	if err != nil {
		return nil, storeErr(opGet, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	t, err := taskFromHash(fields)
	if err != nil {
		return nil, storeErr(opGet, err)
	}
	if t.UserID != userID {
		return nil, nil
	}
	return t, nil
}

func (r *RedisTaskRepository) Update(ctx context.Context, userID, taskID int64, nt domain.NewTask) (bool, error) {
	n, err := updateTaskScript.Run(ctx, r.client,
		[]string{r.taskKey(taskID)},
		strconv.FormatInt(userID, 10), nt.Title, nt.Description,
	).Int64()
	if err != nil {
		return false, storeErr(opUpdate, err)
	}
	return n == 1, nil
}

func (r *RedisTaskRepository) Delete(ctx context.Context, userID, taskID int64) (bool, error) {
	n, err := deleteTaskScript.Run(ctx, r.client,
		[]string{r.taskKey(taskID), r.ownerKey(userID)},
		strconv.FormatInt(userID, 10), strconv.FormatInt(taskID, 10),
	).Int64()
	if err != nil {
		return false, storeErr(opDelete, err)
	}
	return n == 1, nil
}

func (r *RedisTaskRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisTaskRepository) Close() {
	_ = r.client.Close()
}

func taskFromHash(fields map[string]string) (*domain.Task, error) {
	id, err := strconv.ParseInt(fields["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	userID, err := strconv.ParseInt(fields["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse user_id: %w", err)
	}

	return &domain.Task{
		ID:          id,
		Title:       fields["title"],
		Description: fields["description"],
		Completed:   fields["completed"] == "1",
		UserID:      userID,
	}, nil
}
