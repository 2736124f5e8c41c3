package app

import (
	"fmt"
	"strings"
	"time"
)

type profileScope struct {
	name    string
	started time.Time
	elapsed time.Duration
}

// Profiler collects per-frame CPU timings and counters for the debug HUD.
// Scopes keep first-use order so the HUD lines do not jump around.
type Profiler struct {
	scopes []*profileScope
	counts []struct {
		name  string
		value int
	}
}

func NewProfiler() *Profiler {
	return &Profiler{}
}

func (p *Profiler) scope(name string) *profileScope {
	for _, s := range p.scopes {
		if s.name == name {
			return s
		}
	}
	s := &profileScope{name: name}
	p.scopes = append(p.scopes, s)
	return s
}

func (p *Profiler) BeginScope(name string) {
	p.scope(name).started = time.Now()
}

func (p *Profiler) EndScope(name string) {
	s := p.scope(name)
	if !s.started.IsZero() {
		s.elapsed = time.Since(s.started)
	}
}

func (p *Profiler) SetCount(name string, value int) {
	for i := range p.counts {
		if p.counts[i].name == name {
			p.counts[i].value = value
			return
		}
	}
	p.counts = append(p.counts, struct {
		name  string
		value int
	}{name, value})
}

func (p *Profiler) Reset() {
	for _, s := range p.scopes {
		s.elapsed = 0
	}
}

// StatsString renders the timings and counters as HUD lines.
func (p *Profiler) StatsString() string {
	var sb strings.Builder
	for _, s := range p.scopes {
		ms := float64(s.elapsed.Microseconds()) / 1000.0
		fmt.Fprintf(&sb, "%s: %.2f ms\n", s.name, ms)
	}
	for _, c := range p.counts {
		fmt.Fprintf(&sb, "%s: %d\n", c.name, c.value)
	}
	return sb.String()
}
