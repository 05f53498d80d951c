package services

import (
	"context"
	"errors"
	"time"

	"github.com/HenriqueMV/quotagate/internal/core/domain"
)

// expirationFudge estende o TTL do contador para que o registro sobreviva um
// pouco além da janela lógica e nunca expire antes dela por folga de relógio.
const expirationFudge = 5 * time.Second

// usageCount executa o protocolo de contagem contra o cache: create-if-absent
// com TTL, depois incremento ou leitura conforme increment. O Usage devolvido
// traz Limit e TimeLeft mesmo quando o erro impede a contagem.
func (e *Engine) usageCount(ctx context.Context, group, value string, spec domain.RateSpec, methods []string, increment bool) (domain.Usage, error) {
	now := e.clock().Unix()
	window := windowFor(value, spec.Period, now)
	key := cacheKey(e.cfg.Prefix, group, spec, value, window, true, methods)

	usage := domain.Usage{
		Limit:    spec.Count,
		TimeLeft: time.Duration(window-now) * time.Second,
	}

	var initial int64
	if increment {
		initial = 1
	}

	ttl := time.Duration(spec.Period)*time.Second + expirationFudge
	added, err := e.cache.Add(ctx, key, initial, ttl)
	if err != nil {
		return usage, err
	}
	if added {
		usage.Count = initial
		return usage, nil
	}

	if increment {
		count, err := e.cache.Increment(ctx, key)
		if errors.Is(err, domain.ErrCorruptCounter) {
			count = initial
		} else if err != nil {
			return usage, err
		}
		usage.Count = count
		return usage, nil
	}

	count, ok, err := e.cache.GetCount(ctx, key)
	if err != nil {
		return usage, err
	}
	if !ok {
		count = initial
	}
	usage.Count = count
	return usage, nil
}
