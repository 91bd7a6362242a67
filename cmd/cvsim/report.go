package main

import (
	"fmt"
	"io"
	"math/cmplx"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A40000")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFA500"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))
)

// streamStats summarises one parameter stream.
type streamStats struct {
	name      string
	min, max  float64
	mean, std float64
}

// report is everything printed after a run.
type report struct {
	blocks   int
	streams  []streamStats
	jitter   float64
	peakHz   float64
	captures int
	gates    int
	freezes  int
	rejects  int
}

func newReport(rec *recorder, rejects int, controlRate float64) *report {
	r := &report{
		blocks:   rec.len(),
		captures: rec.captures,
		gates:    rec.gates,
		freezes:  rec.freezes,
		rejects:  rejects,
	}
	if r.blocks == 0 {
		return r
	}

	x := make([]float64, r.blocks)
	for s := range numStreams {
		for i, v := range rec.streams[s] {
			x[i] = float64(v)
		}
		mean, std := stat.MeanStdDev(x, nil)
		r.streams = append(r.streams, streamStats{
			name: streamNames[s],
			min:  floats.Min(x),
			max:  floats.Max(x),
			mean: mean,
			std:  std,
		})
	}
	r.jitter = pitchJitter(rec.streams[streamPitch])
	r.peakHz = jitterPeak(rec.streams[streamPitch], controlRate)
	return r
}

// pitchSteps returns the block-to-block pitch change.
func pitchSteps(pitch []float32) []float64 {
	if len(pitch) < 2 {
		return nil
	}
	diff := make([]float64, len(pitch)-1)
	for i := range diff {
		diff[i] = float64(pitch[i+1] - pitch[i])
	}
	return diff
}

// pitchJitter is the standard deviation of the block-to-block pitch change,
// in semitones. A steady input should give a value near zero.
func pitchJitter(pitch []float32) float64 {
	diff := pitchSteps(pitch)
	if diff == nil {
		return 0
	}
	_, std := stat.MeanStdDev(diff, nil)
	return std
}

// jitterPeak returns the frequency in Hz carrying the most energy in the
// block-to-block pitch change, ignoring DC. Zero if the pitch never moved.
func jitterPeak(pitch []float32, controlRate float64) float64 {
	diff := pitchSteps(pitch)
	if len(diff) < 2 {
		return 0
	}

	fft := fourier.NewFFT(len(diff))
	coeffs := fft.Coefficients(nil, diff)

	peak, peakMag := 0, 0.0
	for i := 1; i < len(coeffs); i++ {
		if m := cmplx.Abs(coeffs[i]); m > peakMag {
			peak, peakMag = i, m
		}
	}
	if peak == 0 {
		return 0
	}
	return fft.Freq(peak) * controlRate
}

// render writes the report. styled enables colours and is meant for
// terminals only.
func (r *report) render(w io.Writer, styled bool) {
	style := func(s lipgloss.Style, text string) string {
		if styled {
			return s.Render(text)
		}
		return text
	}

	var sb strings.Builder
	sb.WriteString(style(titleStyle, "CV simulation"))
	sb.WriteString("\n")
	if !styled {
		sb.WriteString("\n")
	}

	kv := func(key string, value any) {
		fmt.Fprintf(&sb, "%s %s\n", style(keyStyle, fmt.Sprintf("%-18s", key+":")), style(valueStyle, fmt.Sprint(value)))
	}
	kv("Blocks", r.blocks)
	kv("Captures", r.captures)
	kv("Gate blocks", r.gates)
	kv("Freeze blocks", r.freezes)
	if r.rejects > 0 {
		kv("Calibration rejects", r.rejects)
	}
	kv("Pitch jitter", fmt.Sprintf("%.4f st", r.jitter))
	if r.peakHz > 0 {
		kv("Jitter peak", fmt.Sprintf("%.1f Hz", r.peakHz))
	}

	if len(r.streams) > 0 {
		sb.WriteString("\n")
		sb.WriteString(style(headerStyle, fmt.Sprintf("%-10s %9s %9s %9s %9s", "parameter", "min", "max", "mean", "std")))
		sb.WriteString("\n")
		for _, s := range r.streams {
			fmt.Fprintf(&sb, "%-10s %9.4f %9.4f %9.4f %9.4f\n", s.name, s.min, s.max, s.mean, s.std)
		}
	}

	_, _ = io.WriteString(w, sb.String())
}
