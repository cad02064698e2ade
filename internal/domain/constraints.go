package domain

// SchedulingConstraints carries the knobs recognized by the engine.
// Callers build it from config; the engine never reads ambient state.
type SchedulingConstraints struct {
	MaxHoursPerWeek       float64 `json:"maxHoursPerWeek"`
	MaxShiftLengthHours   float64 `json:"maxShiftLengthHours"`
	MinRestHours          float64 `json:"minRestHours"`
	FairnessWeight        float64 `json:"fairnessWeight"`
	PreferConsistentStart bool    `json:"preferConsistentStart"`
	OptionCount           int     `json:"optionCount"`
}

// DefaultConstraints mirrors the documented defaults: 40h weekly cap,
// 8h single-shift cap, 10h rest, five options.
func DefaultConstraints() SchedulingConstraints {
	return SchedulingConstraints{
		MaxHoursPerWeek:       40,
		MaxShiftLengthHours:   8,
		MinRestHours:          10,
		FairnessWeight:        1.0,
		PreferConsistentStart: true,
		OptionCount:           5,
	}
}

// Normalize clamps the option count to the supported 1-5 range and
// backfills zero values with defaults.
func (c SchedulingConstraints) Normalize() SchedulingConstraints {
	def := DefaultConstraints()
	if c.MaxHoursPerWeek <= 0 {
		c.MaxHoursPerWeek = def.MaxHoursPerWeek
	}
	if c.MaxShiftLengthHours <= 0 {
		c.MaxShiftLengthHours = def.MaxShiftLengthHours
	}
	if c.MinRestHours <= 0 {
		c.MinRestHours = def.MinRestHours
	}
	if c.FairnessWeight <= 0 {
		c.FairnessWeight = def.FairnessWeight
	}
	if c.OptionCount < 1 {
		c.OptionCount = def.OptionCount
	}
	if c.OptionCount > 5 {
		c.OptionCount = 5
	}
	return c
}
