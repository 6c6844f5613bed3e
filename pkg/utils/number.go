package utils

import (
	"strconv"
	"strings"
)

// ParseInt converte os contadores que o Meta devolve como texto. Vazio vale 0.
func ParseInt(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		return n, nil
	}

	// alguns contadores chegam como "12.0"
	f, ferr := strconv.ParseFloat(value, 64)
	if ferr != nil {
		return 0, err
	}
	return int64(f), nil
}

// ParseFloat converte taxas e médias devolvidas como texto. Vazio vale 0.
func ParseFloat(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}

// NormalizeDecimal valida um decimal em texto sem alterar sua precisão
func NormalizeDecimal(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "0", nil
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return "0", err
	}
	return value, nil
}
