package tui

import (
	"fmt"
	"math"
	"strings"
)

// Slider is an adjustable numeric parameter. When Choices is set the value
// indexes into it and the slider acts as a selector.
type Slider struct {
	Label   string
	Value   float64
	Min     float64
	Max     float64
	Step    float64
	Unit    string
	Format  string
	Choices []string
	Width   int
	Default float64
}

// NewSlider creates a slider starting at value.
func NewSlider(label string, value, lo, hi, step float64) *Slider {
	s := &Slider{
		Label:  label,
		Min:    lo,
		Max:    hi,
		Step:   step,
		Format: "%.0f",
		Width:  30,
	}
	s.SetValue(value)
	s.Default = s.Value
	return s
}

// NewChoice creates a selector over the given labels.
func NewChoice(label string, selected int, choices ...string) *Slider {
	s := NewSlider(label, float64(selected), 0, float64(len(choices)-1), 1)
	s.Choices = choices
	return s
}

// WithUnit sets the unit suffix
func (s *Slider) WithUnit(unit string) *Slider {
	s.Unit = unit
	return s
}

// WithFormat sets the value format string
func (s *Slider) WithFormat(format string) *Slider {
	s.Format = format
	return s
}

// Increment increases the value by one step, stopping at Max.
func (s *Slider) Increment() { s.SetValue(s.Value + s.Step) }

// Decrement decreases the value by one step, stopping at Min.
func (s *Slider) Decrement() { s.SetValue(s.Value - s.Step) }

// SetValue sets the value, clamped to [Min, Max] and snapped to the step grid.
func (s *Slider) SetValue(v float64) {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	s.Value = math.Max(s.Min, math.Min(s.Max, v))
}

// Reset restores the initial value.
func (s *Slider) Reset() { s.Value = s.Default }

// Index returns the value as an integer, e.g. a selected choice.
func (s *Slider) Index() int { return int(math.Round(s.Value)) }

// On reports whether a two-way selector points at its second choice.
func (s *Slider) On() bool { return s.Index() == 1 }

// Percentage returns the position within the range.
func (s *Slider) Percentage() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// DisplayValue renders the value with its unit or choice label.
func (s *Slider) DisplayValue() string {
	if len(s.Choices) > 0 {
		i := s.Index()
		if i >= 0 && i < len(s.Choices) {
			return s.Choices[i]
		}
	}
	return fmt.Sprintf(s.Format, s.Value) + s.Unit
}

// Render draws label, value and bar on one line.
func (s *Slider) Render(focused bool) string {
	label := ParameterLabelStyle
	value := ParameterValueStyle
	thumb := SliderThumbStyle
	marker := "  "
	if focused {
		label = label.Foreground(ColorPrimary)
		value = value.Foreground(ColorAccent)
		thumb = thumb.Foreground(ColorAccent)
		marker = "▸ "
	}

	filled := int(math.Round(float64(s.Width) * s.Percentage()))
	filled = max(0, min(s.Width, filled))

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumb.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumb.Render("●"))
	if rest := s.Width - max(filled, 1); rest > 0 {
		bar.WriteString(SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	bar.WriteString("]")

	return fmt.Sprintf("%s%-28s %s %s", marker, label.Render(s.Label), bar.String(), value.Render(s.DisplayValue()))
}
