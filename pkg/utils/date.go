package utils

import "time"

// DaysInMonth devolve o número de dias-calendário do mês.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
