package domain

import "time"

// Usage descreve o consumo corrente de um contador de janela.
type Usage struct {
	Count    int64
	Limit    int64
	TimeLeft time.Duration
}

// LockEntry guarda o estado de bloqueio secundário, independente da janela de
// contagem. BlockUntil nulo marca uma violação registrada sem expiração
// automática por este mecanismo.
type LockEntry struct {
	Blocked    bool       `json:"blocked"`
	BlockUntil *time.Time `json:"block_until,omitempty"`
}

// Active informa se o bloqueio ainda vale no instante informado. A validade é
// sempre decidida por esta comparação, nunca pela expiração física do cache.
func (l *LockEntry) Active(now time.Time) bool {
	return l != nil && l.Blocked && l.BlockUntil != nil && now.Before(*l.BlockUntil)
}

// State é o desfecho de uma avaliação.
type State int

const (
	StateNotLimited State = iota
	StateLimited
	StateLocked
)

func (s State) String() string {
	switch s {
	case StateLimited:
		return "limited"
	case StateLocked:
		return "locked"
	default:
		return "not_limited"
	}
}

// Decision é o resultado de uma avaliação do motor.
type Decision struct {
	State State
	// Limited é o veredito desta avaliação: true bloqueia a operação.
	Limited bool
	// RequestLimited acumula o veredito com a flag de avaliações anteriores da
	// mesma requisição, combinada pelo chamador.
	RequestLimited bool
	// Usage é preenchido quando o contador chegou a ser consultado.
	Usage *Usage
}
