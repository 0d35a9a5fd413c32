package utils

import "time"

// ParseDateParam lê uma data YYYY-MM-DD vinda da query string. Vazio retorna nil.
func ParseDateParam(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}
