package animal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/zoo/internal/domain/shared"
)

func TestNewAnimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		predator bool
		wantErr  error
	}{
		{name: "predator", input: "Lion", predator: true},
		{name: "non-predator", input: "Zebra", predator: false},
		{name: "single character", input: "X"},
		{name: "unicode name", input: "Löwe", predator: true},
		{name: "empty name rejected", input: "", wantErr: shared.ErrNameMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAnimal(tt.input, tt.predator)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, a)
				assert.Equal(t, "Error: create animal - name is missing.", shared.MessageOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input, a.Name())
			assert.Equal(t, tt.predator, a.IsPredator())
			assert.Equal(t, KindAnimal, a.Kind())
			assert.NotEmpty(t, a.ID)
		})
	}
}

func TestVariantConstructorsRejectEmptyName(t *testing.T) {
	_, err := NewFish("", false, true)
	assert.ErrorIs(t, err, shared.ErrNameMissing)

	_, err = NewBird("", true, 40)
	assert.ErrorIs(t, err, shared.ErrNameMissing)

	_, err = NewMammal("", false, "Savanna")
	assert.ErrorIs(t, err, shared.ErrNameMissing)
}

func TestNewBird_NegativeSpeed(t *testing.T) {
	b, err := NewBird("Eagle", true, -1)

	require.Error(t, err)
	assert.Nil(t, b)
	assert.Equal(t, shared.ErrCodeInvalidSpeed, shared.ErrorCode(err))
}

func TestAnimal_SetName(t *testing.T) {
	a, err := NewAnimal("Lion", true)
	require.NoError(t, err)

	require.NoError(t, a.SetName("King"))
	assert.Equal(t, "King", a.Name())

	err = a.SetName("")
	assert.ErrorIs(t, err, shared.ErrNameMissing)
	assert.Equal(t, "King", a.Name(), "name must not change on error")
}

func TestAnimal_SetPredator(t *testing.T) {
	a, err := NewAnimal("Dog", false)
	require.NoError(t, err)

	a.SetPredator(true)
	assert.True(t, a.IsPredator())

	a.SetPredator(false)
	assert.False(t, a.IsPredator())
}

func TestAnimal_Describe(t *testing.T) {
	plain, _ := NewAnimal("Lion", true)
	deep, _ := NewFish("Anglerfish", true, true)
	shallow, _ := NewFish("Guppy", false, false)
	bird, _ := NewBird("Falcon", true, 320)
	slowBird, _ := NewBird("Sparrow", false, 24.5)
	preciseBird, _ := NewBird("Swift", false, 12.3456789)
	fastBird, _ := NewBird("Jet", false, 1234567)
	mammal, _ := NewMammal("Zebra", false, "Savanna")

	tests := []struct {
		name   string
		animal *Animal
		want   string
	}{
		{"plain predator", plain, "Animal: Lion (Predator)\n"},
		{"deep water fish", deep, "Animal: Anglerfish (Predator)\nDeep water fish\n"},
		{"shallow water fish", shallow, "Animal: Guppy\nShallow water fish\n"},
		{"bird", bird, "Animal: Falcon (Predator)\nFlight speed: 320 km/h\n"},
		{"bird fractional speed", slowBird, "Animal: Sparrow\nFlight speed: 24.5 km/h\n"},
		{"bird speed rounded to six digits", preciseBird, "Animal: Swift\nFlight speed: 12.3457 km/h\n"},
		{"bird speed in exponent form", fastBird, "Animal: Jet\nFlight speed: 1.23457e+06 km/h\n"},
		{"mammal", mammal, "Animal: Zebra\nHabitat: Savanna\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.animal.Describe())
		})
	}
}

func TestAnimal_VariantAccessors(t *testing.T) {
	fish, _ := NewFish("Trout", false, false)
	f, ok := fish.Fish()
	require.True(t, ok)
	f.SetDeepWater(true)
	assert.True(t, f.IsDeepWater())
	assert.Contains(t, fish.Describe(), "Deep water fish")

	_, ok = fish.Bird()
	assert.False(t, ok)

	bird, _ := NewBird("Owl", true, 60)
	b, ok := bird.Bird()
	require.True(t, ok)
	assert.Error(t, b.SetFlightSpeed(-5))
	assert.Equal(t, 60.0, b.FlightSpeed())
	require.NoError(t, b.SetFlightSpeed(65))
	assert.Equal(t, 65.0, b.FlightSpeed())

	mammal, _ := NewMammal("Bear", true, "Forest")
	m, ok := mammal.Mammal()
	require.True(t, ok)
	m.SetHabitat("Tundra")
	assert.Equal(t, "Tundra", m.Habitat())
	assert.Equal(t, KindMammal, mammal.Kind())

	plain, _ := NewAnimal("Goat", false)
	assert.Nil(t, plain.Traits())
	_, ok = plain.Mammal()
	assert.False(t, ok)
}

func TestAnimal_JSONPreservesVariant(t *testing.T) {
	falcon, err := NewBird("Falcon", true, 320)
	require.NoError(t, err)

	data, err := json.Marshal(falcon)
	require.NoError(t, err)

	var decoded Animal
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, falcon.ID, decoded.ID)
	assert.Equal(t, falcon.Describe(), decoded.Describe())
	assert.True(t, falcon.CreatedAt.Value().Equal(decoded.CreatedAt.Value()))
}

func TestRestore_Invalid(t *testing.T) {
	_, err := Restore(Snapshot{Kind: "dragon", Name: "Smaug"})
	assert.Equal(t, shared.ErrCodeInvalidAnimalKind, shared.ErrorCode(err))

	_, err = Restore(Snapshot{Kind: KindAnimal, Name: ""})
	assert.ErrorIs(t, err, shared.ErrNameMissing)
}
