// Package graph wraps a core.Processor chain with named, identity-tagged
// nodes and an ASCII visualizer, mirroring the inspection hook the
// original implementation gates behind a debug feature flag. Graph
// construction happens once at setup time; Graph.Process is a thin
// sequential dispatch with no allocation in steady state, so it is safe
// to drive from the audio callback once built.
package graph

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/kestrelaudio/dspcore/core"
)

// Node is a single named, identity-tagged entry in a Graph.
type Node struct {
	ID       uuid.UUID
	Name     string
	Channels int // 1 for mono, 2 for interleaved stereo
	proc     core.Processor
}

// Graph is a runtime-extensible sequence of named processors, each
// applied serially and in place to the same buffer — the same shape as
// core.Chain, with per-node identity and name attached for diagnostics.
type Graph struct {
	nodes      []*Node
	sampleRate float32
}

// New creates a Graph seeded with one named node.
func New(name string, channels int, first core.Processor, sampleRate float32) *Graph {
	first.SetSampleRate(sampleRate)
	g := &Graph{sampleRate: sampleRate}
	g.nodes = append(g.nodes, &Node{ID: uuid.New(), Name: name, Channels: channels, proc: first})
	return g
}

// And appends a named processor, forwarding the graph's current sample
// rate to it immediately.
func (g *Graph) And(name string, channels int, p core.Processor) *Graph {
	p.SetSampleRate(g.sampleRate)
	g.nodes = append(g.nodes, &Node{ID: uuid.New(), Name: name, Channels: channels, proc: p})
	return g
}

// Process runs every node in order over the same buffer and sample index.
func (g *Graph) Process(buffer []float32, sampleIndex uint64) {
	for _, n := range g.nodes {
		n.proc.Process(buffer, sampleIndex)
	}
}

// SetSampleRate forwards to every node and updates the graph's recorded
// rate so subsequently appended nodes pick it up too.
func (g *Graph) SetSampleRate(sr float32) {
	g.sampleRate = sr
	for _, n := range g.nodes {
		n.proc.SetSampleRate(sr)
	}
}

// Reset forwards to every node.
func (g *Graph) Reset() {
	for _, n := range g.nodes {
		n.proc.Reset()
	}
}

// LatencySamples sums over every node, matching serial composition.
func (g *Graph) LatencySamples() uint32 {
	var total uint32
	for _, n := range g.nodes {
		total += n.proc.LatencySamples()
	}
	return total
}

// Nodes returns the graph's nodes in processing order, for inspection.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Find returns the node with the given name, or nil if none matches.
func (g *Graph) Find(name string) *Node {
	for _, n := range g.nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

var (
	nodeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	monoBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Bold(true)
	stereoBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#00AA00")).
				Bold(true)
	idStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Italic(true)
)

func channelBadge(channels int) string {
	if channels == 2 {
		return stereoBadgeStyle.Render("stereo")
	}
	return monoBadgeStyle.Render("mono")
}

// Visualize renders an ASCII diagram of the graph: one box per node, in
// processing order, joined by arrows, each annotated with its channel
// count and a short identity prefix — the same shape as the original's
// get_graph() inspection hook.
func (g *Graph) Visualize() string {
	var b strings.Builder
	b.WriteString("Graph Start\n  |\n  v\n")
	for i, n := range g.nodes {
		id := n.ID.String()
		label := fmt.Sprintf("%s  %s\n%s", n.Name, channelBadge(n.Channels), idStyle.Render(id[:8]))
		b.WriteString(nodeBoxStyle.Render(label))
		b.WriteString("\n")
		if i < len(g.nodes)-1 {
			b.WriteString("  |\n  v\n")
		}
	}
	b.WriteString("  |\n  v\nOutput\n")
	return b.String()
}

// Len reports how many nodes the graph currently holds.
func (g *Graph) Len() int { return len(g.nodes) }
