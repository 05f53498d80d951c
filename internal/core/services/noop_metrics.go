package services

import "github.com/HenriqueMV/quotagate/internal/core/domain"

// NoOpRecorder é o recorder padrão; garante que o caminho quente nunca precise
// checar nil antes de registrar.
type NoOpRecorder struct{}

func (NoOpRecorder) RecordEvaluation(group string, state domain.State) {}
