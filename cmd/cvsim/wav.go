package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	cvscaler "github.com/tphakala/go-cv-scaler"
	"github.com/tphakala/go-cv-scaler/internal/simdops"
)

// wavInputs feeds recorded control voltages into the rig. Every WAV channel
// is mapped to one input; each block consumes BlockSize frames and uses
// their mean.
type wavInputs struct {
	file      *os.File
	decoder   *wav.Decoder
	channels  int
	mapping   []cvscaler.Channel
	fullScale float32

	buf    *audio.IntBuffer
	column []int
	norm   []float32
}

// openWAVInputs opens a recording and maps its channels, in order, to the
// named inputs.
func openWAVInputs(path string, names []string, blockSize int, verbose bool) (*wavInputs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		_ = f.Close()
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, channels, bitDepth)
	}

	if len(names) > channels {
		_ = f.Close()
		return nil, fmt.Errorf("%d channel names given for a %d channel file", len(names), channels)
	}
	mapping := make([]cvscaler.Channel, len(names))
	for i, name := range names {
		ch, ok := cvscaler.ChannelByName(name)
		if !ok {
			_ = f.Close()
			return nil, fmt.Errorf("unknown input %q", name)
		}
		mapping[i] = ch
	}

	return &wavInputs{
		file:      f,
		decoder:   decoder,
		channels:  channels,
		mapping:   mapping,
		fullScale: float32(int(1)<<(bitDepth-1) - 1),
		buf: &audio.IntBuffer{
			Data:   make([]int, blockSize*channels),
			Format: format,
		},
		column: make([]int, blockSize),
		norm:   make([]float32, blockSize),
	}, nil
}

// Next reads one block of frames. It reports false at end of file.
func (in *wavInputs) Next(_ int, values *[cvscaler.NumChannels]float32) (bool, error) {
	in.buf.Data = in.buf.Data[:cap(in.buf.Data)]
	n, err := in.decoder.PCMBuffer(in.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read audio data: %w", err)
	}

	frames := n / in.channels
	if frames == 0 {
		return false, nil
	}

	for c, ch := range in.mapping {
		for i := range frames {
			in.column[i] = in.buf.Data[i*in.channels+c]
		}
		simdops.Normalize(in.norm, in.column[:frames], in.fullScale)
		values[ch] = simdops.Mean(in.norm[:frames])
	}
	return true, nil
}

func (in *wavInputs) Close() error {
	return in.file.Close()
}

// writeParameterWAV writes every recorded parameter stream as one channel of
// a 16-bit WAV at the control rate. Pitch is rescaled from semitones to
// [0, 1] first.
func writeParameterWAV(path string, sampleRate int, rec *recorder) (err error) {
	frames := rec.len()
	if frames == 0 {
		return errors.New("no blocks recorded")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	channels := numStreams
	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, channels, wavPCMFormat)

	data := make([]int, frames*channels)
	column := make([]int, frames)
	scaled := make([]float32, frames)
	for s := range numStreams {
		src := rec.streams[s]
		if s == streamPitch {
			for i, p := range src {
				scaled[i] = (p - cvscaler.MinPitch) / pitchSpan
			}
			src = scaled
		}
		simdops.Denormalize(column, src, maxInt16)
		for i, v := range column {
			data[i*channels+s] = v
		}
	}

	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}
