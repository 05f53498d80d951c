package domain

import (
	"errors"
	"fmt"
)

// ConfigurationError indica uso incorreto da API pelo chamador: gramática de
// rate ou de lock inválida, estratégia de chave ausente ou grupo não informado.
// É fatal e nunca re-tentado.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string { return e.msg }

func NewConfigurationError(format string, args ...any) error {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// ErrCorruptCounter sinaliza um incremento sobre um valor armazenado que não é
// numérico; o protocolo de contagem se recupera recomeçando do valor inicial.
var ErrCorruptCounter = errors.New("stored counter value is not numeric")
