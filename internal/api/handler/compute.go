package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/budget-planner-api/internal/usecases/allocating"
	"github.com/vfg2006/budget-planner-api/internal/usecases/costing"
	"github.com/vfg2006/budget-planner-api/internal/usecases/planning"
	"github.com/vfg2006/budget-planner-api/internal/usecases/spanning"
	"github.com/vfg2006/budget-planner-api/pkg/apiErrors"
	"github.com/vfg2006/budget-planner-api/pkg/utils"
)

type ResolveSpansRequest struct {
	HeadcountID *string `json:"headcount_id,omitempty"`
	FunctionID  *string `json:"function_id,omitempty"`
	SectionID   *string `json:"section_id,omitempty"`
}

type ResolveSpansResponse struct {
	Resolved int `json:"resolved"`
}

type ApplyAllocationsRequest struct {
	GroupID *string `json:"group_id,omitempty"`
}

// RecomputeCosts dispara o recálculo do razão de custos do cenário. O
// parâmetro opcional year restringe o recálculo a um ano do horizonte.
func RecomputeCosts(service costing.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenarioID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		year, err := optionalIntParam(r, "year")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro year inválido", nil)
			return
		}

		result, err := service.RecomputeScenarioCosts(r.Context(), scenarioID, year)
		if err != nil {
			handleComputeError(w, err)
			return
		}

		utils.WriteJSON(w, http.StatusOK, result)
	}
}

// ResolveSpans recalcula quadros SPAN: um quadro específico por headcount_id,
// ou todos os afetados por uma função base via function_id.
func ResolveSpans(service spanning.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenarioID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req ResolveSpansRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		switch {
		case req.HeadcountID != nil:
			if err := service.ResolveOne(r.Context(), scenarioID, *req.HeadcountID); err != nil {
				handleComputeError(w, err)
				return
			}
			utils.WriteJSON(w, http.StatusOK, ResolveSpansResponse{Resolved: 1})

		case req.FunctionID != nil:
			resolved, err := service.ResolveAffected(r.Context(), scenarioID, *req.FunctionID, req.SectionID)
			if err != nil {
				handleComputeError(w, err)
				return
			}
			utils.WriteJSON(w, http.StatusOK, ResolveSpansResponse{Resolved: resolved})

		default:
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe headcount_id ou function_id", nil)
		}
	}
}

func ApplyAllocations(service allocating.Solver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenarioID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req ApplyAllocationsRequest
		if r.ContentLength > 0 {
			if err := utils.DecodeJSON(r, &req); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
				return
			}
		}

		result, err := service.ApplyAllocations(r.Context(), scenarioID, req.GroupID)
		if err != nil {
			handleComputeError(w, err)
			return
		}

		utils.WriteJSON(w, http.StatusOK, result)
	}
}

func GetOverheadReport(service planning.Planner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenarioID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		year, err := optionalIntParam(r, "year")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro year inválido", nil)
			return
		}

		report, err := service.OverheadReport(r.Context(), scenarioID, year)
		if err != nil {
			handleComputeError(w, err)
			return
		}

		utils.WriteJSON(w, http.StatusOK, report)
	}
}

// handleComputeError mapeia os erros do motor de cálculo para os códigos da
// API.
func handleComputeError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		apiErrors.WriteError(w, apiErrors.ErrComputeCancelled, "Cálculo cancelado pelo chamador", nil)

	case errors.Is(err, spanning.ErrSpanCycle):
		apiErrors.WriteError(w, apiErrors.ErrSpanCycle, err.Error(), nil)

	case errors.Is(err, spanning.ErrScenarioLocked),
		errors.Is(err, costing.ErrScenarioLocked),
		errors.Is(err, allocating.ErrScenarioLocked):
		apiErrors.WriteError(w, apiErrors.ErrScenarioLocked, "Cenário em cálculo por outra requisição", nil)

	case errors.Is(err, spanning.ErrScenarioNotFound),
		errors.Is(err, spanning.ErrEntryNotFound),
		errors.Is(err, costing.ErrScenarioNotFound),
		errors.Is(err, allocating.ErrScenarioNotFound),
		errors.Is(err, allocating.ErrGroupNotFound),
		errors.Is(err, planning.ErrScenarioNotFound):
		apiErrors.WriteError(w, apiErrors.ErrScenarioNotFound, err.Error(), nil)

	case errors.Is(err, spanning.ErrNotSpanEntry),
		errors.Is(err, allocating.ErrInvalidManualWeights),
		errors.Is(err, allocating.ErrNegativeWeights):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno durante o cálculo", nil)
	}
}
