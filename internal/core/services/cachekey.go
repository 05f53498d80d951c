package services

import (
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/HenriqueMV/quotagate/internal/core/domain"
)

// Sementes dos dois somatórios xxhash que compõem o digest de 128 bits.
const (
	keySeedLow  uint64 = 0
	keySeedHigh uint64 = 0x9e3779b97f4a7c15
)

// cacheKey deriva a chave do cache a partir do grupo, do rate canônico, do
// identificador, da janela (omitida nas chaves de bloqueio) e do conjunto de
// métodos. Os campos entram no digest separados por bytes nulos para que
// fronteiras diferentes nunca colidam.
func cacheKey(prefix, group string, spec domain.RateSpec, value string, window int64, withWindow bool, methods []string) string {
	parts := []string{group + spec.String(), value}
	if withWindow {
		parts = append(parts, strconv.FormatInt(window, 10))
	}
	parts = append(parts, methodsToken(methods))
	return prefix + hex.EncodeToString(digest128(parts))
}

// methodsToken canoniza o filtro de métodos: "" cobre todos; caso contrário os
// nomes em maiúsculas, ordenados e concatenados, para que a ordem de declaração
// nunca afete a chave.
func methodsToken(methods []string) string {
	if len(methods) == 0 {
		return ""
	}
	upper := make([]string, len(methods))
	for i, m := range methods {
		upper[i] = strings.ToUpper(m)
	}
	sort.Strings(upper)
	return strings.Join(upper, "")
}

func digest128(parts []string) []byte {
	out := make([]byte, 0, 16)
	for _, seed := range [2]uint64{keySeedLow, keySeedHigh} {
		d := xxhash.NewWithSeed(seed)
		for _, p := range parts {
			_, _ = d.WriteString(p)
			_, _ = d.Write([]byte{0})
		}
		out = d.Sum(out)
	}
	return out
}
