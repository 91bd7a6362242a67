package cvscaler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_Banks(t *testing.T) {
	assert.Equal(t, 10, NumCVChannels)
	assert.Equal(t, 10, NumPotChannels)

	for ch := range NumChannels {
		assert.True(t, ch.Valid())
		if int(ch) < NumCVChannels {
			assert.True(t, ch.IsCV(), "%s", ch)
			assert.Equal(t, int(ch), ch.bankIndex())
		} else {
			assert.False(t, ch.IsCV(), "%s", ch)
			assert.Equal(t, int(ch)-NumCVChannels, ch.bankIndex())
		}
	}

	assert.False(t, NumChannels.Valid())
	assert.False(t, Channel(-1).Valid())
	assert.Equal(t, "channel(invalid)", Channel(-1).String())
}

func TestChannelByName(t *testing.T) {
	seen := make(map[string]bool)
	for ch := range NumChannels {
		name := ch.String()
		require.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true

		got, ok := ChannelByName(name)
		require.True(t, ok)
		assert.Equal(t, ch, got)
	}

	_, ok := ChannelByName("cv-volume")
	assert.False(t, ok)
}

func TestNewTransformTable(t *testing.T) {
	for _, flip := range []bool{false, true} {
		table := NewTransformTable(flip)
		require.NoError(t, table.validate())

		for ch := range NumChannels {
			tr := table[ch]
			if ch.IsCV() {
				assert.Equal(t, flip, tr.Flip, "%s", ch)
			} else {
				assert.False(t, tr.Flip, "%s", ch)
				assert.False(t, tr.RemoveOffset, "%s", ch)
			}
		}
	}

	table := NewTransformTable(true)
	assert.False(t, table[CVVOct].RemoveOffset)
	assert.True(t, table[CVPitch].RemoveOffset)
}

func TestNewTransformTable_Coefficients(t *testing.T) {
	want := map[Channel]float32{
		CVPosition: 0.05, CVDensity: 0.01, CVSize: 0.1, CVTexture: 0.01,
		CVDryWet: 0.2, CVReverb: 0.2, CVFeedback: 0.2, CVSpread: 0.2,
		CVPitch: 0.9, CVVOct: 1.0,

		PotPosition: 0.05, PotDensity: 0.01, PotSize: 0.01, PotTexture: 0.01,
		PotDryWet: 1.0, PotReverb: 0.05, PotFeedback: 0.05, PotSpread: 0.05,
		PotPitch: 0.01, PotLevel: 0.1,
	}
	require.Len(t, want, int(NumChannels))

	table := NewTransformTable(false)
	for ch, coef := range want {
		assert.Equal(t, coef, table[ch].FilterCoefficient, "%s", ch)
	}

	// V/oct is an exact pass-through.
	assert.Equal(t, float32(1), table[CVVOct].FilterCoefficient)
}

func TestTransformTable_ValidateRejectsBadCoefficients(t *testing.T) {
	for _, coef := range []float32{0, -0.1, 1.5} {
		table := NewTransformTable(true)
		table[CVDensity].FilterCoefficient = coef
		assert.Error(t, table.validate(), "coefficient %v", coef)
	}
}

func TestTransformation_Apply(t *testing.T) {
	tests := []struct {
		name   string
		tr     Transformation
		raw    float32
		offset float32
		want   float32
	}{
		{"identity", Transformation{}, 0.3, 0.1, 0.3},
		{"flip", Transformation{Flip: true}, 0.3, 0.1, 0.7},
		{"offset", Transformation{RemoveOffset: true}, 0.3, 0.1, 0.2},
		{"flip_then_offset", Transformation{Flip: true, RemoveOffset: true}, 0.3, 0.1, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.tr.apply(tt.raw, tt.offset), 1e-6)
		})
	}
}
