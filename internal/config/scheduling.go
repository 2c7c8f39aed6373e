package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/validator"
)

// SchedulingConfig holds the business rule settings of the scheduling
// engine.
type SchedulingConfig struct {
	Location   *time.Location
	Hours      validator.Hours
	MaxRetries int
}

// schedulingFile mirrors the YAML layout:
//
//	timezone: Europe/Warsaw
//	open_hours: {from: "08:00", to: "22:00"}
//	premiere_hours: {from: "18:00", to: "22:00"}
//	max_retries: 2
type schedulingFile struct {
	Timezone      string     `yaml:"timezone"`
	OpenHours     hoursRange `yaml:"open_hours"`
	PremiereHours hoursRange `yaml:"premiere_hours"`
	MaxRetries    *int       `yaml:"max_retries"`
}

type hoursRange struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LoadScheduling builds the scheduling settings from defaults, then the
// YAML file at path (skipped when path is empty), then environment
// variables.  Later sources override earlier ones.
func LoadScheduling(path string) (SchedulingConfig, error) {
	raw := schedulingFile{
		Timezone:      "UTC",
		OpenHours:     hoursRange{From: "08:00", To: "22:00"},
		PremiereHours: hoursRange{From: "18:00", To: "22:00"},
	}
	retries := 2
	raw.MaxRetries = &retries

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return SchedulingConfig{}, fmt.Errorf("read scheduling config: %w", err)
		}
		if err := yaml.Unmarshal(b, &raw); err != nil {
			return SchedulingConfig{}, fmt.Errorf("parse scheduling config %s: %w", path, err)
		}
	}

	raw.Timezone = envStr("FACILITY_TIMEZONE", raw.Timezone)
	raw.OpenHours.From = envStr("OPEN_HOURS_FROM", raw.OpenHours.From)
	raw.OpenHours.To = envStr("OPEN_HOURS_TO", raw.OpenHours.To)
	raw.PremiereHours.From = envStr("PREMIERE_HOURS_FROM", raw.PremiereHours.From)
	raw.PremiereHours.To = envStr("PREMIERE_HOURS_TO", raw.PremiereHours.To)
	if raw.MaxRetries == nil {
		raw.MaxRetries = &retries
	}
	maxRetries := envInt("SCHEDULE_MAX_RETRIES", *raw.MaxRetries)

	loc, err := time.LoadLocation(raw.Timezone)
	if err != nil {
		return SchedulingConfig{}, fmt.Errorf("invalid timezone %q: %w", raw.Timezone, err)
	}
	openFrom, openTo, err := parseRange("open_hours", raw.OpenHours)
	if err != nil {
		return SchedulingConfig{}, err
	}
	premFrom, premTo, err := parseRange("premiere_hours", raw.PremiereHours)
	if err != nil {
		return SchedulingConfig{}, err
	}
	if maxRetries < 0 {
		return SchedulingConfig{}, fmt.Errorf("max_retries must not be negative, got %d", maxRetries)
	}

	return SchedulingConfig{
		Location: loc,
		Hours: validator.Hours{
			OpenFrom:     openFrom,
			OpenTo:       openTo,
			PremiereFrom: premFrom,
			PremiereTo:   premTo,
		},
		MaxRetries: maxRetries,
	}, nil
}

func parseRange(name string, r hoursRange) (model.ClockTime, model.ClockTime, error) {
	from, err := model.ParseClockTime(r.From)
	if err != nil {
		return model.ClockTime{}, model.ClockTime{}, fmt.Errorf("%s.from: %w", name, err)
	}
	to, err := model.ParseClockTime(r.To)
	if err != nil {
		return model.ClockTime{}, model.ClockTime{}, fmt.Errorf("%s.to: %w", name, err)
	}
	if !from.Before(to) {
		return model.ClockTime{}, model.ClockTime{}, fmt.Errorf("%s: from %s must be before to %s", name, from, to)
	}
	return from, to, nil
}
