package handler

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/budget-planner-api/internal/scheduler"
	"github.com/vfg2006/budget-planner-api/pkg/apiErrors"
	"github.com/vfg2006/budget-planner-api/pkg/utils"
)

// RunRecomputeSync dispara manualmente o recálculo noturno dos cenários
// ativos. O job roda em segundo plano; a resposta só confirma o disparo.
func RunRecomputeSync(service *scheduler.RecomputeSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recálculo não disponível", nil)
			return
		}

		logrus.Info("Recálculo de cenários disparado manualmente")

		// Desvinculado do contexto da requisição: o job continua após a
		// resposta.
		go service.RunNow(context.Background())

		utils.WriteJSON(w, http.StatusAccepted, map[string]any{
			"message": "Recálculo de cenários iniciado",
		})
	}
}

// GetRecomputeSyncStatus devolve o estado do job de recálculo.
func GetRecomputeSyncStatus(service *scheduler.RecomputeSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recálculo não disponível", nil)
			return
		}

		utils.WriteJSON(w, http.StatusOK, service.Status())
	}
}
