package domain

import "time"

// DatePreset é o período pedido ao Meta no formato date_preset
type DatePreset string

const (
	PresetLast7Days  DatePreset = "last_7_days"
	PresetLast14Days DatePreset = "last_14_days"
	PresetLast30Days DatePreset = "last_30_days"
	PresetLast90Days DatePreset = "last_90_days"

	DefaultDatePreset = PresetLast30Days
	defaultWindowDays = 30
)

var presetWindowDays = map[DatePreset]int{
	PresetLast7Days:  7,
	PresetLast14Days: 14,
	PresetLast30Days: 30,
	PresetLast90Days: 90,
}

// WindowDays retorna quantos dias o preset cobre. Presets desconhecidos valem 30.
func (p DatePreset) WindowDays() int {
	if days, ok := presetWindowDays[p]; ok {
		return days
	}
	return defaultWindowDays
}

// Normalize troca presets desconhecidos pelo padrão
func (p DatePreset) Normalize() DatePreset {
	if _, ok := presetWindowDays[p]; ok {
		return p
	}
	return DefaultDatePreset
}

// WindowDates lista as datas do período começando por hoje e voltando um dia
// por vez, sempre com exatamente days elementos.
func WindowDates(today time.Time, days int) []string {
	if days <= 0 {
		return []string{}
	}

	y, m, d := today.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	dates := make([]string, days)
	for i := 0; i < days; i++ {
		dates[i] = base.AddDate(0, 0, -i).Format(time.DateOnly)
	}
	return dates
}
