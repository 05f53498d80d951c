package services

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/HenriqueMV/quotagate/internal/core/domain"
	"github.com/HenriqueMV/quotagate/internal/core/ports"
)

const defaultPrefix = "rl:"

// Config agrega a política imutável do motor, fixada na construção.
type Config struct {
	// Enabled desliga todas as avaliações quando falso.
	Enabled bool
	// FailOpen permite a operação quando o cache está indisponível; quando
	// falso, indisponibilidade conta como limitado.
	FailOpen bool
	// Prefix é o namespace das chaves no cache.
	Prefix string
}

// Engine implementa a lógica central de decisão de rate limiting.
type Engine struct {
	cache    ports.Cache
	cfg      Config
	recorder ports.MetricsRecorder
	clock    func() time.Time
}

var (
	_ ports.Limiter     = (*Engine)(nil)
	_ ports.UsageReader = (*Engine)(nil)
)

// Option customiza a construção do Engine.
type Option func(*Engine)

// WithRecorder injeta um backend de métricas.
func WithRecorder(r ports.MetricsRecorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithClock substitui a fonte de tempo; usado em testes.
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.clock = fn }
}

// NewEngine cria uma nova instância do motor.
func NewEngine(cache ports.Cache, cfg Config, opts ...Option) (*Engine, error) {
	if cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = defaultPrefix
	}
	e := &Engine{
		cache:    cache,
		cfg:      cfg,
		recorder: NoOpRecorder{},
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate decide se a operação descrita por check deve ser limitada. O
// parâmetro limited carrega a flag acumulada de avaliações anteriores da mesma
// requisição; a versão combinada volta em Decision.RequestLimited e só é
// atualizada quando check.Increment está ligado.
func (e *Engine) Evaluate(ctx context.Context, req ports.Request, check ports.Check, limited bool) (domain.Decision, error) {
	if !e.cfg.Enabled {
		return domain.Decision{State: domain.StateNotLimited}, nil
	}

	group, err := resolveGroup(check)
	if err != nil {
		return domain.Decision{}, err
	}

	if !methodMatch(req.Method(), check.Methods) {
		return domain.Decision{State: domain.StateNotLimited, RequestLimited: limited}, nil
	}

	expr := check.Rate.Resolve(group, req)
	if expr == "" {
		return domain.Decision{State: domain.StateNotLimited, RequestLimited: limited}, nil
	}
	spec, err := domain.ParseRate(expr)
	if err != nil {
		return domain.Decision{}, err
	}

	lockFor, err := domain.ParseLockDuration(check.LockFor)
	if err != nil {
		return domain.Decision{}, err
	}

	value, err := check.Key.Value(group, req)
	if err != nil {
		return domain.Decision{}, err
	}

	now := e.clock()
	lockKey := e.lockKey(group, value, spec, check.Methods)
	if e.locked(ctx, lockKey, now) {
		e.recorder.RecordEvaluation(group, domain.StateLocked)
		return domain.Decision{State: domain.StateLocked, Limited: true, RequestLimited: limited}, nil
	}

	usage, usageErr := e.usageCount(ctx, group, value, spec, check.Methods, check.Increment)

	var verdict bool
	if usageErr != nil {
		verdict = !e.cfg.FailOpen
	} else {
		verdict = usage.Count > usage.Limit
		if verdict {
			e.armLock(ctx, lockKey, lockFor, now)
		} else {
			e.clearLock(ctx, lockKey)
		}
	}

	decision := domain.Decision{Limited: verdict, RequestLimited: limited}
	if verdict {
		decision.State = domain.StateLimited
	}
	if usageErr == nil {
		decision.Usage = &usage
	}
	if check.Increment {
		decision.RequestLimited = limited || verdict
	}
	e.recorder.RecordEvaluation(group, decision.State)
	return decision, nil
}

// Usage devolve o consumo corrente sem tocar no estado de bloqueio.
func (e *Engine) Usage(ctx context.Context, req ports.Request, check ports.Check) (domain.Usage, error) {
	group, err := resolveGroup(check)
	if err != nil {
		return domain.Usage{}, err
	}
	spec, err := domain.ParseRate(check.Rate.Resolve(group, req))
	if err != nil {
		return domain.Usage{}, err
	}
	value, err := check.Key.Value(group, req)
	if err != nil {
		return domain.Usage{}, err
	}
	return e.usageCount(ctx, group, value, spec, check.Methods, check.Increment)
}

// resolveGroup deriva o grupo do nome da função protegida quando não informado.
func resolveGroup(check ports.Check) (string, error) {
	if check.Group != "" {
		return check.Group, nil
	}
	if check.Fn != nil {
		v := reflect.ValueOf(check.Fn)
		if v.Kind() == reflect.Func {
			if fn := runtime.FuncForPC(v.Pointer()); fn != nil {
				return fn.Name(), nil
			}
		}
	}
	return "", domain.NewConfigurationError("group or protected function must be provided")
}

func methodMatch(method string, methods []string) bool {
	if len(methods) == 0 {
		return true
	}
	for _, m := range methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
