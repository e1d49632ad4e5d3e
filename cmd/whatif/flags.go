package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/whatif/internal/datatable"
	"github.com/san-kum/whatif/internal/whatif"
)

// parseAssignments turns name=value pairs into params.
func parseAssignments(pairs []string) (whatif.Params, error) {
	p := make(whatif.Params, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q: want name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid assignment %q: %w", pair, err)
		}
		p[name] = v
	}
	return p, nil
}

// parseInput accepts name=start:stop:step (half-open range),
// name=start:stop:num# (inclusive, num points) or name=v1,v2,...
func parseInput(s string) (datatable.Input, error) {
	name, spec, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || spec == "" {
		return datatable.Input{}, fmt.Errorf("invalid input %q: want name=start:stop:step or name=v1,v2", s)
	}

	if strings.Contains(spec, ":") {
		parts := strings.Split(spec, ":")
		if len(parts) != 3 {
			return datatable.Input{}, fmt.Errorf("invalid range %q: want start:stop:step", spec)
		}
		nums := make([]float64, 2)
		for i := 0; i < 2; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
			if err != nil {
				return datatable.Input{}, fmt.Errorf("invalid range %q: %w", spec, err)
			}
			nums[i] = v
		}

		last := strings.TrimSpace(parts[2])
		if count, isCount := strings.CutSuffix(last, "#"); isCount {
			n, err := strconv.Atoi(count)
			if err != nil {
				return datatable.Input{}, fmt.Errorf("invalid range %q: %w", spec, err)
			}
			vals, err := datatable.Linspace(nums[0], nums[1], n)
			if err != nil {
				return datatable.Input{}, err
			}
			return datatable.Input{Name: name, Values: vals}, nil
		}

		step, err := strconv.ParseFloat(last, 64)
		if err != nil {
			return datatable.Input{}, fmt.Errorf("invalid range %q: %w", spec, err)
		}
		vals, err := datatable.Arange(nums[0], nums[1], step)
		if err != nil {
			return datatable.Input{}, err
		}
		return datatable.Input{Name: name, Values: vals}, nil
	}

	fields := strings.Split(spec, ",")
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return datatable.Input{}, fmt.Errorf("invalid value list %q: %w", spec, err)
		}
		vals = append(vals, v)
	}
	return datatable.Input{Name: name, Values: vals}, nil
}

// splitPreset accepts "model/preset" or a preset of the default model.
func splitPreset(s, defaultModel string) (model, name string) {
	if m, p, ok := strings.Cut(s, "/"); ok {
		return m, p
	}
	return defaultModel, s
}
