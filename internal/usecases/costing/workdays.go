package costing

import (
	"time"

	"github.com/vfg2006/budget-planner-api/internal/domain"
	"github.com/vfg2006/budget-planner-api/pkg/utils"
)

// WorkingDays conta os dias úteis do mês segundo a política de trabalho da
// seção: dias-calendário, menos fins de semana não trabalhados, menos
// feriados das abrangências aplicáveis. Feriados recorrentes (sem ano)
// projetam em todos os anos do horizonte.
//
// A lista de feriados já vem filtrada pela localidade da seção.
func WorkingDays(year, month int, policy domain.WorkdayPolicy, holidays []*domain.Holiday) int {
	totalDays := utils.DaysInMonth(year, month)

	working := make(map[int]bool, totalDays)
	for day := 1; day <= totalDays; day++ {
		weekday := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()

		if weekday == time.Saturday && !policy.Saturday {
			continue
		}
		if weekday == time.Sunday && !policy.Sunday {
			continue
		}

		working[day] = true
	}

	for _, holiday := range holidays {
		if holiday.Month != month {
			continue
		}
		if holiday.Year != nil && *holiday.Year != year {
			continue
		}
		// Feriado caindo em dia já descontado não desconta de novo.
		if !working[holiday.Day] {
			continue
		}

		switch holiday.Scope {
		case domain.HolidayNational:
			if !policy.NationalHolidays {
				delete(working, holiday.Day)
			}
		case domain.HolidayState:
			if !policy.StateHolidays {
				delete(working, holiday.Day)
			}
		case domain.HolidayMunicipal:
			if !policy.MunicipalHolidays {
				delete(working, holiday.Day)
			}
		}
	}

	return len(working)
}

// FixedBenefitDays devolve a contagem legada de dias de benefício por
// escala, usada quando BENEFIT_DAYS_MODE=fixed.
func FixedBenefitDays(schedule domain.WorkSchedule) int {
	switch schedule {
	case domain.Schedule6x1:
		return 26
	case domain.Schedule12x36:
		return 15
	default:
		return 22
	}
}
