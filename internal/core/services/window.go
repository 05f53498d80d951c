// Package services implementa a lógica central de decisão de rate limiting.
package services

import "github.com/cespare/xxhash/v2"

// windowFor calcula o limite da janela corrente para o par (identificador,
// período), em segundos unix. A fase é deslocada por um checksum do
// identificador para que identificadores independentes não rolem de janela
// todos no mesmo instante.
func windowFor(value string, period, now int64) int64 {
	if period == 1 {
		return now
	}
	phase := int64(xxhash.Sum64String(value) % uint64(period))
	w := now - now%period + phase
	if w < now {
		w += period
	}
	return w
}
