// Command dspgraph builds a small demo DSP graph from flags, runs it over
// a synthetic buffer, and prints an ASCII diagram alongside summary
// statistics. It is an inspection tool, not an audio I/O demo: it never
// opens an audio device, per this library's explicit Non-goal against
// device access.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/kestrelaudio/dspcore/core"
	"github.com/kestrelaudio/dspcore/filter"
	"github.com/kestrelaudio/dspcore/graph"
	"github.com/kestrelaudio/dspcore/internal/config"
	"github.com/kestrelaudio/dspcore/modulate"
	"github.com/kestrelaudio/dspcore/reverb"
	"github.com/kestrelaudio/dspcore/synth"
	"github.com/kestrelaudio/dspcore/util"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA500"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	valueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
)

func buildGraph(cfg config.Config) (*graph.Graph, int, error) {
	osc := synth.NewOscillator(core.Hz(220), synth.Sine)

	switch cfg.GraphName {
	case "default":
		g := graph.New("oscillator", 1, osc, cfg.SampleRate)
		g.And("lowpass", 1, filter.NewLowPass(core.Hz(2000), core.Linear(0.707)))
		g.And("gain", 1, util.NewGainDB(-6))
		return g, 1, nil

	case "reverb":
		voice := core.NewChain(osc, cfg.SampleRate).And(util.NewGainDB(-6))
		g := graph.New("voice (mono->stereo)", 2, core.NewMonoToStereo(voice), cfg.SampleRate)
		g.And("reverb", 2, reverb.NewReverb(core.Linear(0.7), core.Linear(0.3), cfg.Seed))
		return g, 2, nil

	case "chorus":
		voice := core.NewChain(osc, cfg.SampleRate).And(modulate.NewChorus())
		g := graph.New("voice (mono->stereo)", 2, core.NewMonoToStereo(voice), cfg.SampleRate)
		g.And("widen", 2, util.NewStereoWidener(core.Linear(1.5)))
		return g, 2, nil

	default:
		return nil, 0, fmt.Errorf("unknown graph %q (want default, reverb, or chorus)", cfg.GraphName)
	}
}

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	g, channels, err := buildGraph(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(headerStyle.Render("dspgraph"))
	fmt.Println(g.Visualize())

	totalFrames := int(cfg.SampleRate) // one second of synthetic audio
	buf := make([]float32, channels*cfg.BlockSize)

	var sumSquares float64
	var sampleCount int
	var peak float32
	var sampleIndex uint64

	for frame := 0; frame < totalFrames; frame += cfg.BlockSize {
		for i := range buf {
			buf[i] = 0
		}
		g.Process(buf, sampleIndex)
		for _, v := range buf {
			sumSquares += float64(v) * float64(v)
			sampleCount++
			if abs := float32(math.Abs(float64(v))); abs > peak {
				peak = abs
			}
		}
		sampleIndex += uint64(cfg.BlockSize)
	}

	rms := math.Sqrt(sumSquares / float64(sampleCount))

	fmt.Println(headerStyle.Render("Summary"))
	fmt.Printf("%s %s\n", keyStyle.Render("Nodes:"), valueStyle.Render(fmt.Sprintf("%d", g.Len())))
	fmt.Printf("%s %s\n", keyStyle.Render("Latency (samples):"), valueStyle.Render(fmt.Sprintf("%d", g.LatencySamples())))
	fmt.Printf("%s %s\n", keyStyle.Render("Peak:"), valueStyle.Render(fmt.Sprintf("%.4f", peak)))
	fmt.Printf("%s %s\n", keyStyle.Render("RMS:"), valueStyle.Render(fmt.Sprintf("%.4f", rms)))
}
