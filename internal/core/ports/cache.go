// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"
	"time"

	"github.com/HenriqueMV/quotagate/internal/core/domain"
)

// Cache é o conjunto mínimo de primitivas exigido do serviço de cache
// compartilhado. Add e Increment precisam ser atômicos por chave entre
// processos; é a única coordenação entre avaliações concorrentes.
type Cache interface {
	// Add cria a chave com o valor inicial e o TTL apenas se ela não existir.
	// Devolve true quando esta chamada criou a chave.
	Add(ctx context.Context, key string, value int64, ttl time.Duration) (bool, error)
	// Increment soma 1 ao contador e devolve o novo valor. Devolve
	// domain.ErrCorruptCounter quando o valor armazenado não é numérico.
	Increment(ctx context.Context, key string) (int64, error)
	// GetCount lê o contador; o segundo retorno indica se a chave existia.
	GetCount(ctx context.Context, key string) (int64, bool, error)
	// GetLock lê a entrada de bloqueio; nil sem erro significa ausente.
	GetLock(ctx context.Context, key string) (*domain.LockEntry, error)
	// SetLock grava a entrada de bloqueio; nil remove a entrada.
	SetLock(ctx context.Context, key string, entry *domain.LockEntry) error
}
