package draftstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-compras/internal/application/purchasing"
	"github.com/jhoicas/inventario-compras/internal/domain"
)

var _ purchasing.DraftStore = (*RedisStore)(nil)

const keyPrefix = "compras:borrador:"

// RedisStore borradores serializados en JSON con vencimiento por inactividad.
// Permite varias instancias del servicio detrás de un balanceador.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore crea el store sobre un cliente ya conectado.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Connect abre el cliente desde una URL redis:// y verifica la conexión.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("draftstore: REDIS_URL inválida: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("draftstore: ping redis: %w", err)
	}
	return client, nil
}

func key(id string) string { return keyPrefix + id }

func (s *RedisStore) Get(ctx context.Context, id string) (*purchasing.Draft, error) {
	payload, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("draftstore: borrador %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("draftstore: leer %s: %w", id, err)
	}
	var d purchasing.Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("draftstore: decodificar %s: %w", id, err)
	}
	return &d, nil
}

func (s *RedisStore) Save(ctx context.Context, d *purchasing.Draft) error {
	if d == nil || d.ID == "" {
		return fmt.Errorf("draftstore: %w: borrador sin id", domain.ErrInvalidInput)
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draftstore: codificar %s: %w", d.ID, err)
	}
	if err := s.client.Set(ctx, key(d.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("draftstore: guardar %s: %w", d.ID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("draftstore: borrar %s: %w", id, err)
	}
	return nil
}
