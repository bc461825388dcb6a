package domain

import (
	"fmt"
	"sort"
)

// MonthKey identifica um mês de competência dentro do horizonte de um cenário.
type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func NewMonthKey(year, month int) MonthKey {
	return MonthKey{Year: year, Month: month}
}

func (mk MonthKey) String() string {
	return fmt.Sprintf("%02d-%04d", mk.Month, mk.Year)
}

// Before retorna verdadeiro se mk antecede other na linha do tempo.
func (mk MonthKey) Before(other MonthKey) bool {
	if mk.Year != other.Year {
		return mk.Year < other.Year
	}
	return mk.Month < other.Month
}

// Next retorna o mês de competência seguinte.
func (mk MonthKey) Next() MonthKey {
	if mk.Month == 12 {
		return MonthKey{Year: mk.Year + 1, Month: 1}
	}
	return MonthKey{Year: mk.Year, Month: mk.Month + 1}
}

// SortMonthKeys ordena as chaves em ordem cronológica.
func SortMonthKeys(keys []MonthKey) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})
}
