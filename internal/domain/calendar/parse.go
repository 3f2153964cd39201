package calendar

import (
	"fmt"
	"strings"
	"time"
)

// ParseFestivos parses a comma-separated list of YYYY-MM-DD dates.
func ParseFestivos(raw string) ([]time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []time.Time
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parsed, err := time.Parse("2006-01-02", part)
		if err != nil {
			return nil, fmt.Errorf("festivo %q: %w", part, err)
		}
		out = append(out, parsed)
	}
	return out, nil
}

// ParseVacaciones parses semicolon-separated YYYY-MM-DD:YYYY-MM-DD ranges.
func ParseVacaciones(raw string) ([]Periodo, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []Periodo
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.Split(part, ":")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("periodo de vacaciones %q: expected inicio:fin", part)
		}
		inicio, err := time.Parse("2006-01-02", strings.TrimSpace(bounds[0]))
		if err != nil {
			return nil, fmt.Errorf("periodo de vacaciones %q: %w", part, err)
		}
		fin, err := time.Parse("2006-01-02", strings.TrimSpace(bounds[1]))
		if err != nil {
			return nil, fmt.Errorf("periodo de vacaciones %q: %w", part, err)
		}
		if fin.Before(inicio) {
			return nil, fmt.Errorf("periodo de vacaciones %q: fin before inicio", part)
		}
		out = append(out, Periodo{Inicio: inicio, Fin: fin})
	}
	return out, nil
}
