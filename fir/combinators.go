package fir

// MultiFIR convolves a list of generators' kernels in series. Null
// entries (nil Gen) are ignored; a single Zero child short-circuits the
// whole thing to Zero; if every non-null child is a Gain, the result
// collapses to Gain(product of the gains) rather than materializing a
// length-1-times-N convolution the long way.
type MultiFIR struct {
	Children []Gen

	lastVersions []uint64
	version      uint64
	initialized  bool
}

func NewMultiFIR(children ...Gen) *MultiFIR {
	return &MultiFIR{Children: children}
}

// Version changes whenever any child's version changes, tracked lazily:
// each call compares the children's current versions against the last
// observed set and bumps the local counter if anything moved.
func (m *MultiFIR) Version() uint64 {
	if !m.initialized || len(m.lastVersions) != len(m.Children) {
		m.lastVersions = make([]uint64, len(m.Children))
		for i, c := range m.Children {
			if c != nil {
				m.lastVersions[i] = c.Version()
			}
		}
		m.initialized = true
		return m.version
	}
	changed := false
	for i, c := range m.Children {
		if c == nil {
			continue
		}
		v := c.Version()
		if v != m.lastVersions[i] {
			m.lastVersions[i] = v
			changed = true
		}
	}
	if changed {
		m.version++
	}
	return m.version
}

func (m *MultiFIR) Make(rate int) *Instance {
	var live []Gen
	for _, c := range m.Children {
		if c != nil {
			live = append(live, c)
		}
	}
	if len(live) == 0 {
		return Identity{}.Make(rate)
	}

	allGain := true
	product := 1.0
	for _, c := range live {
		inst := c.Make(rate)
		if inst.Kind() == KindZero {
			return Zero{}.Make(rate)
		}
		if inst.Kind() != KindGain && inst.Kind() != KindIdentity {
			allGain = false
			continue
		}
		if inst.Kind() == KindGain {
			product *= inst.Gain()
		}
	}
	if allGain {
		return Gain{G: product}.Make(rate)
	}

	result := Identity{}.Make(rate)
	for _, c := range live {
		result = convolve(rate, result, c.Make(rate))
	}
	return result
}

// convolve returns the series convolution of a and b: length
// sum(len-1)+1, center sum of centers (time-domain convolution shifts
// add).
func convolve(rate int, a, b *Instance) *Instance {
	if a.Kind() == KindIdentity {
		return &Instance{SampleRate: rate, Center: b.Center, Data: append([]float64(nil), b.Data...)}
	}
	if b.Kind() == KindIdentity {
		return &Instance{SampleRate: rate, Center: a.Center, Data: append([]float64(nil), a.Data...)}
	}
	la, lb := len(a.Data), len(b.Data)
	out := make([]float64, la+lb-1)
	for i, av := range a.Data {
		if av == 0 {
			continue
		}
		for j, bv := range b.Data {
			out[i+j] += av * bv
		}
	}
	return &Instance{SampleRate: rate, Center: a.Center + b.Center, Data: out}
}

// ParallelFIR sums a list of generators' kernels in parallel, aligned
// on each kernel's Center. Null entries are skipped. Output length is
// max(center_i) + max(len_i - center_i).
type ParallelFIR struct {
	Children []Gen

	lastVersions []uint64
	version      uint64
	initialized  bool
}

func NewParallelFIR(children ...Gen) *ParallelFIR {
	return &ParallelFIR{Children: children}
}

func (p *ParallelFIR) Version() uint64 {
	if !p.initialized || len(p.lastVersions) != len(p.Children) {
		p.lastVersions = make([]uint64, len(p.Children))
		for i, c := range p.Children {
			if c != nil {
				p.lastVersions[i] = c.Version()
			}
		}
		p.initialized = true
		return p.version
	}
	changed := false
	for i, c := range p.Children {
		if c == nil {
			continue
		}
		v := c.Version()
		if v != p.lastVersions[i] {
			p.lastVersions[i] = v
			changed = true
		}
	}
	if changed {
		p.version++
	}
	return p.version
}

func (p *ParallelFIR) Make(rate int) *Instance {
	var insts []*Instance
	for _, c := range p.Children {
		if c == nil {
			continue
		}
		inst := c.Make(rate)
		if inst.Kind() == KindZero {
			continue // additive identity, drop it
		}
		insts = append(insts, inst)
	}
	if len(insts) == 0 {
		return Zero{}.Make(rate)
	}
	if len(insts) == 1 {
		return insts[0]
	}

	maxCenter := 0
	maxTail := 0
	for _, inst := range insts {
		if inst.Center > maxCenter {
			maxCenter = inst.Center
		}
		if tail := len(inst.Data) - inst.Center; tail > maxTail {
			maxTail = tail
		}
	}
	length := maxCenter + maxTail
	data := make([]float64, length)
	for _, inst := range insts {
		offset := maxCenter - inst.Center
		for i, v := range inst.Data {
			data[offset+i] += v
		}
	}
	return &Instance{SampleRate: rate, Center: maxCenter, Data: data}
}

// Ref is a versioned indirection to a Gen, letting downstream consumers
// treat a change of the pointed-to generator (re-pointing Target) as a
// version bump without restructuring the subscription graph.
type Ref struct {
	Target Gen
	gen    uint64
}

// Set re-points the reference and bumps its own version, independent
// of whether Target's own Version() changed.
func (r *Ref) Set(target Gen) {
	r.Target = target
	r.gen++
}

func (r *Ref) Version() uint64 {
	if r.Target == nil {
		return r.gen
	}
	return r.gen<<32 | (r.Target.Version() & 0xffffffff)
}

func (r *Ref) Make(rate int) *Instance {
	if r.Target == nil {
		return Zero{}.Make(rate)
	}
	return r.Target.Make(rate)
}
