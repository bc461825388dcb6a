package handler

import (
	"net/http"

	"github.com/vfg2006/budget-planner-api/internal/api/handler/router"
	"github.com/vfg2006/budget-planner-api/internal/scheduler"
	"github.com/vfg2006/budget-planner-api/internal/usecases/allocating"
	"github.com/vfg2006/budget-planner-api/internal/usecases/authenticating"
	"github.com/vfg2006/budget-planner-api/internal/usecases/costing"
	"github.com/vfg2006/budget-planner-api/internal/usecases/planning"
	"github.com/vfg2006/budget-planner-api/internal/usecases/spanning"
	"github.com/vfg2006/budget-planner-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

// Scenarios expõe as consultas sobre cenários e seu razão de custos.
func Scenarios(service ScenarioQueryService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/scenarios/:id",
			Method:      http.MethodGet,
			Handler:     GetScenario(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/scenarios/:id/costs",
			Method:      http.MethodGet,
			Handler:     ListScenarioCosts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/scenarios/:id/costs/summary",
			Method:      http.MethodGet,
			Handler:     GetScenarioCostSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Compute expõe as operações de cálculo: recálculo do razão, resolução de
// spans, aplicação de rateio e relatório de overhead. Escritas exigem perfil
// de planejamento.
func Compute(
	costEngine costing.Engine,
	spanResolver spanning.Resolver,
	allocSolver allocating.Solver,
	overheadPlanner planning.Planner,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/scenarios/:id/costs/recompute",
			Method:      http.MethodPost,
			Handler:     RecomputeCosts(costEngine),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrPlanner()},
		},
		{
			Path:        "/v1/scenarios/:id/spans/resolve",
			Method:      http.MethodPost,
			Handler:     ResolveSpans(spanResolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrPlanner()},
		},
		{
			Path:        "/v1/scenarios/:id/allocations/apply",
			Method:      http.MethodPost,
			Handler:     ApplyAllocations(allocSolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrPlanner()},
		},
		{
			Path:        "/v1/scenarios/:id/overhead",
			Method:      http.MethodGet,
			Handler:     GetOverheadReport(overheadPlanner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// CronJobs expõe o disparo manual e o status do recálculo agendado.
func CronJobs(recomputeSync *scheduler.RecomputeSyncService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/recompute/run",
			Method:      http.MethodPost,
			Handler:     RunRecomputeSync(recomputeSync),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/recompute/status",
			Method:      http.MethodGet,
			Handler:     GetRecomputeSyncStatus(recomputeSync),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
