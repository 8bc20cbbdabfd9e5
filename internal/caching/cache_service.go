package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"staffhub/internal/models"
)

type CacheService interface {
	// Employee caching
	GetEmployee(ctx context.Context, id int64) (*models.Employee, error)
	SetEmployee(ctx context.Context, employee *models.Employee, ttl time.Duration) error
	DeleteEmployee(ctx context.Context, id int64) error

	// Headcount metric, refreshed by the background job
	GetHeadcount(ctx context.Context) (int64, bool, error)
	SetHeadcount(ctx context.Context, count int64, ttl time.Duration) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, addr)
	}

	return &redisCacheService{client: client}
}

func employeeKey(id int64) string {
	return fmt.Sprintf("staffhub:employee:%d", id)
}

const headcountKey = "staffhub:employee:headcount"

func (r *redisCacheService) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	data, err := r.client.Get(ctx, employeeKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var employee models.Employee
	if err := json.Unmarshal(data, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *redisCacheService) SetEmployee(ctx context.Context, employee *models.Employee, ttl time.Duration) error {
	data, err := json.Marshal(employee)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, employeeKey(employee.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteEmployee(ctx context.Context, id int64) error {
	return r.client.Del(ctx, employeeKey(id)).Err()
}

func (r *redisCacheService) GetHeadcount(ctx context.Context) (int64, bool, error) {
	val, err := r.client.Get(ctx, headcountKey).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, err
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

func (r *redisCacheService) SetHeadcount(ctx context.Context, count int64, ttl time.Duration) error {
	return r.client.Set(ctx, headcountKey, strconv.FormatInt(count, 10), ttl).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
