package cvscaler

// Channel identifies one conditioned analog input. CV-type channels occupy
// the first NumCVChannels indices and potentiometer-type channels the rest, so
// both banks are addressed through one contiguous range.
type Channel int

// CV-type channels, in converter order.
const (
	CVPosition Channel = iota
	CVDensity
	CVSize
	CVTexture
	CVDryWet
	CVReverb
	CVFeedback
	CVSpread
	CVPitch
	CVVOct

	// Potentiometer-type channels, in scan order.
	PotPosition
	PotDensity
	PotSize
	PotTexture
	PotDryWet
	PotReverb
	PotFeedback
	PotSpread
	PotPitch
	PotLevel

	// NumChannels is the total number of conditioned channels.
	NumChannels
)

// Bank sizes.
const (
	NumCVChannels  = int(PotPosition)
	NumPotChannels = int(NumChannels) - NumCVChannels
)

var channelNames = [NumChannels]string{
	CVPosition:  "cv-position",
	CVDensity:   "cv-density",
	CVSize:      "cv-size",
	CVTexture:   "cv-texture",
	CVDryWet:    "cv-dry-wet",
	CVReverb:    "cv-reverb",
	CVFeedback:  "cv-feedback",
	CVSpread:    "cv-spread",
	CVPitch:     "cv-pitch",
	CVVOct:      "cv-voct",
	PotPosition: "pot-position",
	PotDensity:  "pot-density",
	PotSize:     "pot-size",
	PotTexture:  "pot-texture",
	PotDryWet:   "pot-dry-wet",
	PotReverb:   "pot-reverb",
	PotFeedback: "pot-feedback",
	PotSpread:   "pot-spread",
	PotPitch:    "pot-pitch",
	PotLevel:    "pot-level",
}

// String returns the channel name.
func (c Channel) String() string {
	if c.Valid() {
		return channelNames[c]
	}
	return "channel(invalid)"
}

// Valid reports whether c is a real channel.
func (c Channel) Valid() bool {
	return c >= 0 && c < NumChannels
}

// IsCV reports whether c is read from the CV converter bank.
func (c Channel) IsCV() bool {
	return c >= 0 && int(c) < NumCVChannels
}

// bankIndex returns the index of c within its own bank.
func (c Channel) bankIndex() int {
	if c.IsCV() {
		return int(c)
	}
	return int(c) - NumCVChannels
}

// ChannelByName returns the channel with the given String name.
func ChannelByName(name string) (Channel, bool) {
	for c, n := range channelNames {
		if n == name {
			return Channel(c), true
		}
	}
	return 0, false
}

// Transformation is the fixed conditioning applied to one channel before it
// reaches the smoothed state.
type Transformation struct {
	// Flip replaces a reading r with 1-r, compensating reversed wiring.
	Flip bool

	// RemoveOffset subtracts the calibrated zero offset after flipping.
	RemoveOffset bool

	// FilterCoefficient is the one-pole smoothing coefficient in (0, 1].
	FilterCoefficient float32
}

// TransformTable holds one Transformation per channel. Being an array indexed
// by Channel, it cannot drift out of step with the channel list.
type TransformTable [NumChannels]Transformation

// NewTransformTable returns the conditioning table for a hardware revision.
// flipCV applies uniformly to every CV-type channel.
func NewTransformTable(flipCV bool) TransformTable {
	cv := func(removeOffset bool, coefficient float32) Transformation {
		return Transformation{Flip: flipCV, RemoveOffset: removeOffset, FilterCoefficient: coefficient}
	}
	pot := func(coefficient float32) Transformation {
		return Transformation{FilterCoefficient: coefficient}
	}

	return TransformTable{
		CVPosition: cv(true, 0.05),
		CVDensity:  cv(true, 0.01),
		CVSize:     cv(true, 0.1),
		CVTexture:  cv(true, 0.01),
		CVDryWet:   cv(true, 0.2),
		CVReverb:   cv(true, 0.2),
		CVFeedback: cv(true, 0.2),
		CVSpread:   cv(true, 0.2),
		CVPitch:    cv(true, 0.9),
		// V/oct is passed through unsmoothed; the tracker does its own slewing.
		CVVOct: cv(false, 1.0),

		PotPosition: pot(0.05),
		PotDensity:  pot(0.01),
		PotSize:     pot(0.01),
		PotTexture:  pot(0.01),
		PotDryWet:   pot(1.0),
		PotReverb:   pot(0.05),
		PotFeedback: pot(0.05),
		PotSpread:   pot(0.05),
		PotPitch:    pot(0.01),
		PotLevel:    pot(0.1),
	}
}

// apply conditions a raw sample up to, but not including, smoothing.
func (t *Transformation) apply(raw, offset float32) float32 {
	v := raw
	if t.Flip {
		v = 1 - v
	}
	if t.RemoveOffset {
		v -= offset
	}
	return v
}
