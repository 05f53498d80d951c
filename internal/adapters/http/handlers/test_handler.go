// Package handlers agrupa handlers HTTP utilizados para testes e exemplo.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/HenriqueMV/quotagate/internal/adapters/http/request"
	"github.com/HenriqueMV/quotagate/internal/core/ports"
)

// TestHandler responde com uma mensagem simples para verificar o limiter.
func TestHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Request successful"})
}

// NewUsageHandler expõe o consumo corrente do chamador sem consumir cota nem
// alterar o estado de bloqueio.
func NewUsageHandler(reader ports.UsageReader, check ports.Check) http.HandlerFunc {
	check.Increment = false
	return func(w http.ResponseWriter, r *http.Request) {
		usage, err := reader.Usage(r.Context(), request.New(r), check)
		if err != nil {
			log.Printf("usage lookup failed: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]int64{
			"count":     usage.Count,
			"limit":     usage.Limit,
			"time_left": int64(usage.TimeLeft.Seconds()),
		})
	}
}
