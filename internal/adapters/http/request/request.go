// Package request adapta *http.Request ao contrato consumido pelo motor.
package request

import (
	"net"
	"net/http"
	"strings"

	"github.com/HenriqueMV/quotagate/internal/core/ports"
)

// identityHeader transporta o token de identidade do chamador.
const identityHeader = "API_KEY"

type Request struct {
	req *http.Request
}

var _ ports.Request = (*Request)(nil)

func New(r *http.Request) *Request {
	return &Request{req: r}
}

func (r *Request) Method() string {
	return r.req.Method
}

func (r *Request) Identity() string {
	return strings.TrimSpace(r.req.Header.Get(identityHeader))
}

// RemoteAddr devolve o IP do cliente, respeitando proxies intermediários.
func (r *Request) RemoteAddr() string {
	xForwardedFor := strings.TrimSpace(r.req.Header.Get("X-Forwarded-For"))
	if xForwardedFor != "" {
		parts := strings.Split(xForwardedFor, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	xRealIP := strings.TrimSpace(r.req.Header.Get("X-Real-IP"))
	if xRealIP != "" {
		return xRealIP
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.req.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(r.req.RemoteAddr)
	}

	return host
}

// Parameter consulta primeiro a query string e depois o corpo do formulário.
func (r *Request) Parameter(name string) string {
	if v := r.req.URL.Query().Get(name); v != "" {
		return v
	}
	return r.req.PostFormValue(name)
}

func (r *Request) Header(name string) string {
	return r.req.Header.Get(name)
}
