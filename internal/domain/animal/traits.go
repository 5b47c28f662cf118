package animal

import (
	"strconv"
	"strings"

	"github.com/danghamo/zoo/internal/domain/shared"
)

// Traits is the variant-specific part of an animal. The set of
// implementations is closed to this package.
type Traits interface {
	Kind() Kind
	describe(sb *strings.Builder)
}

// Fish traits
type Fish struct {
	deepWater bool
}

// Kind returns KindFish
func (f *Fish) Kind() Kind { return KindFish }

// IsDeepWater reports whether the fish lives in deep water
func (f *Fish) IsDeepWater() bool { return f.deepWater }

// SetDeepWater changes the water depth of the fish
func (f *Fish) SetDeepWater(deep bool) { f.deepWater = deep }

func (f *Fish) describe(sb *strings.Builder) {
	if f.deepWater {
		sb.WriteString("Deep water fish\n")
	} else {
		sb.WriteString("Shallow water fish\n")
	}
}

// Bird traits
type Bird struct {
	flightSpeed float64
}

// Kind returns KindBird
func (b *Bird) Kind() Kind { return KindBird }

// FlightSpeed returns the flight speed in km/h
func (b *Bird) FlightSpeed() float64 { return b.flightSpeed }

// SetFlightSpeed changes the flight speed; negative speeds are rejected
func (b *Bird) SetFlightSpeed(speed float64) error {
	if err := validateFlightSpeed(speed); err != nil {
		return err
	}
	b.flightSpeed = speed
	return nil
}

// describe prints the speed with six significant digits
func (b *Bird) describe(sb *strings.Builder) {
	sb.WriteString("Flight speed: ")
	sb.WriteString(strconv.FormatFloat(b.flightSpeed, 'g', 6, 64))
	sb.WriteString(" km/h\n")
}

// Mammal traits
type Mammal struct {
	habitat string
}

// Kind returns KindMammal
func (m *Mammal) Kind() Kind { return KindMammal }

// Habitat returns the natural habitat of the mammal
func (m *Mammal) Habitat() string { return m.habitat }

// SetHabitat changes the habitat
func (m *Mammal) SetHabitat(habitat string) { m.habitat = habitat }

func (m *Mammal) describe(sb *strings.Builder) {
	sb.WriteString("Habitat: ")
	sb.WriteString(m.habitat)
	sb.WriteString("\n")
}

func validateFlightSpeed(speed float64) error {
	if speed < 0 {
		return shared.NewDomainErrorf(shared.ErrCodeInvalidSpeed, "Flight speed cannot be negative: %g", speed)
	}
	return nil
}

// Describe renders the animal: the shared line first, then the variant line.
func (a *Animal) Describe() string {
	var sb strings.Builder
	sb.WriteString("Animal: ")
	sb.WriteString(a.name)
	if a.predator {
		sb.WriteString(" (Predator)")
	}
	sb.WriteString("\n")

	if a.traits != nil {
		a.traits.describe(&sb)
	}

	return sb.String()
}
