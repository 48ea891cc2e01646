// Package easing maps linear keyframe progress onto eased progress using a
// fixed, integer-coded set of curves. The integer codes are persisted with
// keyframes, so the order of the constants must never change.
package easing

import (
	"fmt"
	"strings"

	"github.com/fogleman/ease"
)

// Function identifies an easing curve.
type Function int

// Easing functions in storage order.
const (
	Linear Function = iota
	InQuad
	OutQuad
	InOutQuad
	InCubic
	OutCubic
	InOutCubic
	InQuart
	OutQuart
	InOutQuart
	InQuint
	OutQuint
	InOutQuint
	InSine
	OutSine
	InOutSine
	InCirc
	OutCirc
	InOutCirc
	InExpo
	OutExpo
	InOutExpo
	InElastic
	OutElastic
	InOutElastic
	InBack
	OutBack
	InOutBack
	InBounce
	OutBounce
	InOutBounce

	count
)

var curves = [count]func(float64) float64{
	Linear:       ease.Linear,
	InQuad:       ease.InQuad,
	OutQuad:      ease.OutQuad,
	InOutQuad:    ease.InOutQuad,
	InCubic:      ease.InCubic,
	OutCubic:     ease.OutCubic,
	InOutCubic:   ease.InOutCubic,
	InQuart:      ease.InQuart,
	OutQuart:     ease.OutQuart,
	InOutQuart:   ease.InOutQuart,
	InQuint:      ease.InQuint,
	OutQuint:     ease.OutQuint,
	InOutQuint:   ease.InOutQuint,
	InSine:       ease.InSine,
	OutSine:      ease.OutSine,
	InOutSine:    ease.InOutSine,
	InCirc:       ease.InCirc,
	OutCirc:      ease.OutCirc,
	InOutCirc:    ease.InOutCirc,
	InExpo:       ease.InExpo,
	OutExpo:      ease.OutExpo,
	InOutExpo:    ease.InOutExpo,
	InElastic:    ease.InElastic,
	OutElastic:   ease.OutElastic,
	InOutElastic: ease.InOutElastic,
	InBack:       ease.InBack,
	OutBack:      ease.OutBack,
	InOutBack:    ease.InOutBack,
	InBounce:     ease.InBounce,
	OutBounce:    ease.OutBounce,
	InOutBounce:  ease.InOutBounce,
}

var names = [count]string{
	Linear:       "Linear",
	InQuad:       "InQuad",
	OutQuad:      "OutQuad",
	InOutQuad:    "InOutQuad",
	InCubic:      "InCubic",
	OutCubic:     "OutCubic",
	InOutCubic:   "InOutCubic",
	InQuart:      "InQuart",
	OutQuart:     "OutQuart",
	InOutQuart:   "InOutQuart",
	InQuint:      "InQuint",
	OutQuint:     "OutQuint",
	InOutQuint:   "InOutQuint",
	InSine:       "InSine",
	OutSine:      "OutSine",
	InOutSine:    "InOutSine",
	InCirc:       "InCirc",
	OutCirc:      "OutCirc",
	InOutCirc:    "InOutCirc",
	InExpo:       "InExpo",
	OutExpo:      "OutExpo",
	InOutExpo:    "InOutExpo",
	InElastic:    "InElastic",
	OutElastic:   "OutElastic",
	InOutElastic: "InOutElastic",
	InBack:       "InBack",
	OutBack:      "OutBack",
	InOutBack:    "InOutBack",
	InBounce:     "InBounce",
	OutBounce:    "OutBounce",
	InOutBounce:  "InOutBounce",
}

// Interpolate eases progress with the given function. Progress is clamped to
// [0,1] and the endpoints are fixed, so every curve starts at 0 and ends at 1.
// Unknown functions behave like Linear.
func Interpolate(progress float64, fn Function) float64 {
	if progress <= 0 {
		return 0
	}
	if progress >= 1 {
		return 1
	}
	if !fn.Valid() {
		return progress
	}
	return curves[fn](progress)
}

// Sample builds a look-up table of n eased samples spread evenly over [0,1].
func Sample(fn Function, n int) []float64 {
	if n <= 0 {
		return nil
	}
	lut := make([]float64, n)
	if n == 1 {
		lut[0] = Interpolate(1, fn)
		return lut
	}
	increment := 1.0 / float64(n-1)
	for i := range lut {
		lut[i] = Interpolate(float64(i)*increment, fn)
	}
	return lut
}

// Functions returns every known easing function in storage order.
func Functions() []Function {
	fns := make([]Function, count)
	for i := range fns {
		fns[i] = Function(i)
	}
	return fns
}

// Valid reports whether fn is a known easing function.
func (fn Function) Valid() bool {
	return fn >= 0 && fn < count
}

func (fn Function) String() string {
	if !fn.Valid() {
		return fmt.Sprintf("Function(%d)", int(fn))
	}
	return names[fn]
}

// Parse resolves an easing function by name, ignoring case.
func Parse(name string) (Function, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Function(i), nil
		}
	}
	return Linear, fmt.Errorf("unknown easing function %q", name)
}

// MarshalYAML writes the function by name.
func (fn Function) MarshalYAML() (interface{}, error) {
	return fn.String(), nil
}

// UnmarshalYAML accepts either a name or the integer code.
func (fn *Function) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var code int
	if err := unmarshal(&code); err == nil {
		if !Function(code).Valid() {
			return fmt.Errorf("unknown easing function %d", code)
		}
		*fn = Function(code)
		return nil
	}

	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := Parse(name)
	if err != nil {
		return err
	}
	*fn = parsed
	return nil
}
