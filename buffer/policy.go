package buffer

import (
	"fmt"
	"math"
)

// Default policy values.
const (
	DefaultGrowthFactor    = 1.5
	DefaultInitialCapacity = 256
)

// maxCapacity is the largest capacity Grow will hand out: half the int range,
// leaving head room for the terminator and size arithmetic.
const maxCapacity = (math.MaxInt - 2) >> 1

// Policy controls how buffers grow. The zero value behaves like
// DefaultPolicy with no ceilings.
type Policy struct {
	// GrowthFactor multiplies every non-forced growth request before it is
	// rounded up to a power of two. Must be greater than 1.
	GrowthFactor float64

	// DefaultCapacity is used when a buffer is created without an explicit
	// capacity by a caller that wants eager allocation.
	DefaultCapacity int

	// MaxSingleExpansion caps the capacity of any single allocation.
	// Zero disables the check.
	MaxSingleExpansion int

	// MaxTotalExpansion caps the old plus new capacity during a growth step.
	// Zero disables the check.
	MaxTotalExpansion int
}

// DefaultPolicy returns the policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{
		GrowthFactor:    DefaultGrowthFactor,
		DefaultCapacity: DefaultInitialCapacity,
	}
}

// Validate checks that the policy is usable.
func (p Policy) Validate() error {
	if p.GrowthFactor != 0 && !(p.GrowthFactor > 1) {
		return argError("policy", fmt.Sprintf("growth factor must be greater than 1, got %g", p.GrowthFactor))
	}
	if p.DefaultCapacity < 0 || p.MaxSingleExpansion < 0 || p.MaxTotalExpansion < 0 {
		return argError("policy", "sizes must not be negative")
	}
	if p.MaxSingleExpansion > 0 && p.MaxTotalExpansion > 0 && p.MaxTotalExpansion <= p.MaxSingleExpansion {
		return argError("policy", "total expansion limit must be greater than the single expansion limit")
	}
	if p.MaxSingleExpansion > 0 && p.DefaultCapacity > p.MaxSingleExpansion {
		return argError("policy", "default capacity exceeds the single expansion limit")
	}
	return nil
}

// ClampGrowthFactor limits a runtime-supplied growth factor to [1.5, 4].
func ClampGrowthFactor(f float64) float64 {
	return math.Min(math.Max(f, 1.5), 4.0)
}

// NormalizeDefaultCapacity rounds a runtime-supplied default capacity up to a
// power of two and clamps it to [128, 4096].
func NormalizeDefaultCapacity(n int) int {
	return min(max(nextPow2(n), 128), 4096)
}

func (p Policy) factor() float64 {
	if p.GrowthFactor > 1 {
		return p.GrowthFactor
	}
	return DefaultGrowthFactor
}

func (p Policy) defaultCapacity() int {
	if p.DefaultCapacity > 0 {
		return p.DefaultCapacity
	}
	return DefaultInitialCapacity
}

// checkLimits enforces the expansion ceilings before any allocation.
func (p Policy) checkLimits(cur, newCap, add int) error {
	if single := p.MaxSingleExpansion; single > 0 {
		if newCap > single || add > single {
			return &Error{Value: newCap + add, Bound: single, Msg: "requesting too much memory at once", Err: ErrLimitExceeded}
		}
	}
	if total := p.MaxTotalExpansion; total > 0 {
		if newCap+cur > total {
			return &Error{Value: newCap + cur, Bound: total, Msg: "requesting too much total memory", Err: ErrLimitExceeded}
		}
		if cur+add > total {
			return &Error{Value: cur + add, Bound: total, Msg: "requesting too much total memory", Err: ErrLimitExceeded}
		}
	}
	return nil
}

// Grow computes the capacity for a request. With force the request is used
// as is. Otherwise a request larger than current is multiplied by factor and
// rounded up to the next power of two, and a request that fits is answered
// with current.
func Grow(current, requested int, force bool, factor float64) (int, error) {
	if requested < 0 {
		return 0, argError("", "capacity must not be negative")
	}
	if !(factor > 1) {
		return 0, argError("", fmt.Sprintf("growth factor must be greater than 1, got %g", factor))
	}
	newCap := requested
	if !force {
		if requested <= current {
			return current, nil
		}
		f := float64(requested) * factor
		if f >= maxCapacity {
			return 0, &Error{Value: requested, Err: ErrAllocationTooLarge}
		}
		newCap = nextPow2(int(f))
	}
	if newCap >= maxCapacity {
		return 0, &Error{Value: newCap, Err: ErrAllocationTooLarge}
	}
	return newCap, nil
}

func nextPow2(v int) int {
	if v <= 1 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v + 1
}
