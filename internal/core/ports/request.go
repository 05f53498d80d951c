package ports

import "github.com/HenriqueMV/quotagate/internal/core/domain"

// Request expõe os acessores da requisição consumidos pelo motor.
type Request interface {
	Method() string
	// Identity devolve o token de identidade autenticada, ou "" para anônimos.
	Identity() string
	// RemoteAddr devolve o endereço de origem da requisição.
	RemoteAddr() string
	Parameter(name string) string
	Header(name string) string
}

// KeyFunc resolve o valor identificador a partir do grupo e da requisição.
type KeyFunc func(group string, req Request) string

type keyKind int

const (
	keyUnset keyKind = iota
	keyIdentity
	keyAddress
	keyIdentityOrAddress
	keyParameter
	keyHeader
	keyCustom
)

// KeySpec seleciona a estratégia usada para extrair o identificador que
// particiona contadores e bloqueios. O zero value é inválido e rejeitado
// com ConfigurationError.
type KeySpec struct {
	kind keyKind
	name string
	fn   KeyFunc
}

// KeyByIdentity particiona pelo token de identidade autenticada.
func KeyByIdentity() KeySpec { return KeySpec{kind: keyIdentity} }

// KeyByAddress particiona pelo endereço de origem.
func KeyByAddress() KeySpec { return KeySpec{kind: keyAddress} }

// KeyByIdentityOrAddress usa a identidade autenticada quando presente e cai
// para o endereço de origem em requisições anônimas.
func KeyByIdentityOrAddress() KeySpec { return KeySpec{kind: keyIdentityOrAddress} }

// KeyByParameter particiona pelo valor de um parâmetro nomeado da requisição.
func KeyByParameter(name string) KeySpec { return KeySpec{kind: keyParameter, name: name} }

// KeyByHeader particiona pelo valor de um cabeçalho nomeado.
func KeyByHeader(name string) KeySpec { return KeySpec{kind: keyHeader, name: name} }

// KeyByCustom delega a extração a uma função do chamador.
func KeyByCustom(fn KeyFunc) KeySpec { return KeySpec{kind: keyCustom, fn: fn} }

// Value aplica a estratégia sobre a requisição e devolve o identificador.
func (k KeySpec) Value(group string, req Request) (string, error) {
	switch k.kind {
	case keyIdentity:
		return req.Identity(), nil
	case keyAddress:
		return req.RemoteAddr(), nil
	case keyIdentityOrAddress:
		if id := req.Identity(); id != "" {
			return id, nil
		}
		return req.RemoteAddr(), nil
	case keyParameter:
		if k.name == "" {
			return "", domain.NewConfigurationError("parameter key requires a name")
		}
		return req.Parameter(k.name), nil
	case keyHeader:
		if k.name == "" {
			return "", domain.NewConfigurationError("header key requires a name")
		}
		return req.Header(k.name), nil
	case keyCustom:
		if k.fn == nil {
			return "", domain.NewConfigurationError("custom key requires a function")
		}
		return k.fn(group, req), nil
	default:
		return "", domain.NewConfigurationError("rate limit key must be specified")
	}
}

// RateResolver devolve a expressão de rate para o grupo, ou "" quando a
// operação não deve ser limitada.
type RateResolver func(group string, req Request) string

// Rate é um rate estático ou resolvido dinamicamente a cada avaliação.
type Rate struct {
	expr     string
	resolver RateResolver
}

// StaticRate fixa a expressão de rate em tempo de configuração.
func StaticRate(expr string) Rate { return Rate{expr: expr} }

// DynamicRate resolve a expressão por avaliação, a partir do grupo e da
// requisição.
func DynamicRate(fn RateResolver) Rate { return Rate{resolver: fn} }

// Resolve devolve a expressão efetiva; "" significa "sem limite".
func (r Rate) Resolve(group string, req Request) string {
	if r.resolver != nil {
		return r.resolver(group, req)
	}
	return r.expr
}

// Check agrupa os parâmetros de uma avaliação do motor.
type Check struct {
	// Group identifica a operação protegida (ex.: "login", "search"). Quando
	// vazio, é derivado do nome de Fn.
	Group string
	// Fn é a função protegida; usada apenas para derivar Group quando vazio.
	Fn any
	// Key define como extrair o identificador por ator.
	Key KeySpec
	// Rate define o limite, estático ou dinâmico.
	Rate Rate
	// Methods filtra os métodos avaliados; vazio avalia todos.
	Methods []string
	// Increment indica se esta avaliação consome uma unidade da cota.
	Increment bool
	// LockFor é a duração do bloqueio secundário ("10s", "5m"); obrigatório.
	LockFor string
}
