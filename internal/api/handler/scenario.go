package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/budget-planner-api/internal/usecases/reporting"
	"github.com/vfg2006/budget-planner-api/pkg/apiErrors"
)

// ScenarioQueryService é o contrato de leitura consumido pelos handlers de
// cenário.
type ScenarioQueryService = reporting.Reporter

func GetScenario(service ScenarioQueryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenarioID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		scenario, err := service.GetScenario(r.Context(), scenarioID)
		if err != nil {
			handleScenarioQueryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scenario)
	}
}

func ListScenarioCosts(service ScenarioQueryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenarioID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		year, err := optionalIntParam(r, "year")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro year inválido", nil)
			return
		}
		month, err := optionalIntParam(r, "month")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro month inválido", nil)
			return
		}

		rows, err := service.ListCosts(r.Context(), scenarioID, year, month)
		if err != nil {
			handleScenarioQueryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}

func GetScenarioCostSummary(service ScenarioQueryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenarioID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		summary, err := service.CostSummary(r.Context(), scenarioID)
		if err != nil {
			handleScenarioQueryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

func handleScenarioQueryError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	if errors.Is(err, reporting.ErrScenarioNotFound) {
		apiErrors.WriteError(w, apiErrors.ErrScenarioNotFound, "Cenário não encontrado", nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar cenário", nil)
}

// optionalIntParam lê um parâmetro inteiro opcional da query string.
func optionalIntParam(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
