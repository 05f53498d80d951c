package ports

import (
	"context"

	"github.com/HenriqueMV/quotagate/internal/core/domain"
)

// Limiter é o ponto de entrada do motor de decisão. O parâmetro limited carrega
// a flag acumulada de avaliações anteriores da mesma requisição.
type Limiter interface {
	Evaluate(ctx context.Context, req Request, check Check, limited bool) (domain.Decision, error)
}

// UsageReader expõe a leitura de consumo sem tocar no estado de bloqueio; útil
// para diagnóstico e cabeçalhos informativos.
type UsageReader interface {
	Usage(ctx context.Context, req Request, check Check) (domain.Usage, error)
}

// MetricsRecorder recebe o desfecho de cada avaliação concluída.
type MetricsRecorder interface {
	RecordEvaluation(group string, state domain.State)
}
