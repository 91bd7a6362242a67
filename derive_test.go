package cvscaler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-cv-scaler/internal/testutil"
)

func TestDryWetRemap_FixedPoints(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		preClamp float64
		want     float32
	}{
		{"midpoint", 0.5, 0.5, 0.5},
		{"bottom", 0, -0.025, 0},
		{"top", 1, 1.025, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.preClamp, dryWetPreClamp(tt.input), 1e-9)
			assert.Equal(t, tt.want, remapDryWet(tt.input))
		})
	}
}

func TestMeterTaper(t *testing.T) {
	assert.Equal(t, float32(1), meterTaper(0))
	assert.Equal(t, float32(0), meterTaper(1))
	assert.InDelta(t, 0.25, meterTaper(0.5), 1e-7)
	assert.Equal(t, float32(1), meterTaper(-0.2), "input is clamped first")
}

// TestDerive_PotPlusTwiceCV checks each pair combines as pot + 2*cv, clamped.
func TestDerive_PotPlusTwiceCV(t *testing.T) {
	r := newRig(t, noFlip)

	r.set(PotPosition, 0.2)
	r.set(CVPosition, 0.1)
	r.set(PotTexture, 0.6)
	r.set(CVTexture, 0.4)
	r.set(PotSize, 0.3)
	r.run(3000)

	assert.InDelta(t, 0.4, r.p.Position, testutil.SettledTolerance)
	assert.Equal(t, float32(1), r.p.Texture, "0.6 + 0.8 clamps to 1")
	assert.InDelta(t, 0.3, r.p.Size, testutil.SettledTolerance)
	assert.Zero(t, r.p.Density)
}

func TestDerive_DryWetThroughScaler(t *testing.T) {
	r := newRig(t, noFlip)
	r.set(PotDryWet, 0.5)
	r.run(3000)

	assert.InDelta(t, 0.5, r.p.DryWet, testutil.SettledTolerance)
}
