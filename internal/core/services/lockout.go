package services

import (
	"context"
	"time"

	"github.com/HenriqueMV/quotagate/internal/core/domain"
)

// lockKey deriva a chave de bloqueio: igual à do contador, mas sem a janela,
// para que o bloqueio sobreviva aos rollovers do contador.
func (e *Engine) lockKey(group, value string, spec domain.RateSpec, methods []string) string {
	return cacheKey(e.cfg.Prefix, group, spec, value, 0, false, methods)
}

// locked informa se existe bloqueio ativo. Falhas de leitura contam como "sem
// bloqueio"; se o backend estiver fora, o caminho do contador aplica a política
// de fail-open em seguida.
func (e *Engine) locked(ctx context.Context, key string, now time.Time) bool {
	entry, err := e.cache.GetLock(ctx, key)
	if err != nil {
		return false
	}
	return entry.Active(now)
}

// armLock registra a violação. lockFor zero grava a entrada sem BlockUntil, ou
// seja, sem expiração automática por este mecanismo. Escritas que falham são
// descartadas: a próxima avaliação re-deriva a decisão a partir do contador.
func (e *Engine) armLock(ctx context.Context, key string, lockFor int64, now time.Time) {
	entry := &domain.LockEntry{Blocked: true}
	if lockFor > 0 {
		until := now.Add(time.Duration(lockFor) * time.Second)
		entry.BlockUntil = &until
	}
	_ = e.cache.SetLock(ctx, key, entry)
}

// clearLock remove a entrada para que um bloqueio antigo não persista depois de
// uma avaliação dentro da cota.
func (e *Engine) clearLock(ctx context.Context, key string) {
	_ = e.cache.SetLock(ctx, key, nil)
}
