// Package domain concentra entidades e estruturas centrais do motor de decisão.
package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

var periods = map[string]int64{
	"s": 1,
	"m": 60,
	"h": 60 * 60,
	"d": 24 * 60 * 60,
}

var (
	rateRe         = regexp.MustCompile(`^(\d+)/(\d*)([smhd])?$`)
	lockDurationRe = regexp.MustCompile(`^(\d*)([smhd])?$`)
)

// RateSpec representa um limite canônico: Count operações a cada Period segundos.
type RateSpec struct {
	Count  int64
	Period int64
}

// String devolve a forma canônica usada na derivação de chaves. Specs equivalentes
// produzem sempre a mesma string.
func (r RateSpec) String() string {
	return fmt.Sprintf("%d/%ds", r.Count, r.Period)
}

// ParseRate converte uma expressão "<count>/<multiplier><unit>" em RateSpec.
// A unidade pertence a {s, m, h, d}; multiplicador omitido vale 1 e unidade
// omitida vale segundos.
func ParseRate(raw string) (RateSpec, error) {
	m := rateRe.FindStringSubmatch(raw)
	if m == nil {
		return RateSpec{}, NewConfigurationError("invalid rate expression: %q", raw)
	}
	count, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return RateSpec{}, NewConfigurationError("invalid rate count in %q: %v", raw, err)
	}
	period, err := expandPeriod(m[2], m[3])
	if err != nil {
		return RateSpec{}, NewConfigurationError("invalid rate period in %q: %v", raw, err)
	}
	if period <= 0 {
		return RateSpec{}, NewConfigurationError("rate period must be positive: %q", raw)
	}
	return RateSpec{Count: count, Period: period}, nil
}

// ParseLockDuration converte uma expressão "<multiplier><unit>" em segundos.
// Responde quanto tempo um bloqueio deve durar, independente do período do rate.
func ParseLockDuration(raw string) (int64, error) {
	if raw == "" {
		return 0, NewConfigurationError("lock duration must be provided")
	}
	m := lockDurationRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, NewConfigurationError("invalid lock duration: %q", raw)
	}
	seconds, err := expandPeriod(m[1], m[2])
	if err != nil {
		return 0, NewConfigurationError("invalid lock duration %q: %v", raw, err)
	}
	return seconds, nil
}

func expandPeriod(multi, unit string) (int64, error) {
	if unit == "" {
		unit = "s"
	}
	seconds := periods[unit]
	if multi != "" {
		n, err := strconv.ParseInt(multi, 10, 64)
		if err != nil {
			return 0, err
		}
		seconds *= n
	}
	return seconds, nil
}
