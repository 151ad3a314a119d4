package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
)

type CacheService interface {
	// Payable summary caching
	GetPayableSummary(ctx context.Context, workspaceID uuid.UUID) (*models.PayableSummary, error)
	SetPayableSummary(ctx context.Context, workspaceID uuid.UUID, summary *models.PayableSummary, ttl time.Duration) error

	// Contract summary caching
	GetContractSummary(ctx context.Context, workspaceID uuid.UUID) (*models.ContractSummary, error)
	SetContractSummary(ctx context.Context, workspaceID uuid.UUID, summary *models.ContractSummary, ttl time.Duration) error

	// Cache invalidation
	InvalidateWorkspace(ctx context.Context, workspaceID uuid.UUID) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
		parsedAddr = hostPort
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetPayableSummary(ctx context.Context, workspaceID uuid.UUID) (*models.PayableSummary, error) {
	key := fmt.Sprintf("erp:payable-summary:%s", workspaceID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var summary models.PayableSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *redisCacheService) SetPayableSummary(ctx context.Context, workspaceID uuid.UUID, summary *models.PayableSummary, ttl time.Duration) error {
	key := fmt.Sprintf("erp:payable-summary:%s", workspaceID.String())
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) GetContractSummary(ctx context.Context, workspaceID uuid.UUID) (*models.ContractSummary, error) {
	key := fmt.Sprintf("erp:contract-summary:%s", workspaceID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var summary models.ContractSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *redisCacheService) SetContractSummary(ctx context.Context, workspaceID uuid.UUID, summary *models.ContractSummary, ttl time.Duration) error {
	key := fmt.Sprintf("erp:contract-summary:%s", workspaceID.String())
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) InvalidateWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	pattern := fmt.Sprintf("erp:*:%s", workspaceID.String())
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
