package plan

import (
	"framepass/internal/calc"
	"framepass/internal/feature"
)

// Builder consumes parameter blocks. Implementations must not retain the
// pointers past the call; blocks are recomputed on the next checkout.
type Builder interface {
	SetSfcCsc(*calc.SfcCscParams) error
	SetVeboxCsc(*calc.VeboxCscParams) error
	SetVeboxDenoise(*calc.VeboxDenoiseParams) error
	SetRenderKernel(*calc.RenderKernelParams) error
}

// Record is one block captured by a Recorder.
type Record struct {
	Engine feature.Engine
	Setter string
	Block  calc.Block
}

// Recorder is a Builder that keeps snapshots of every block it receives.
type Recorder struct {
	Records []Record
}

func (r *Recorder) add(setter string, b calc.Block) error {
	r.Records = append(r.Records, Record{Engine: b.Engine(), Setter: setter, Block: b.Snapshot()})
	return nil
}

func (r *Recorder) SetSfcCsc(p *calc.SfcCscParams) error { return r.add("sfc_csc", p) }

func (r *Recorder) SetVeboxCsc(p *calc.VeboxCscParams) error { return r.add("vebox_csc", p) }

func (r *Recorder) SetVeboxDenoise(p *calc.VeboxDenoiseParams) error {
	return r.add("vebox_denoise", p)
}

func (r *Recorder) SetRenderKernel(p *calc.RenderKernelParams) error {
	return r.add("render_kernel", p)
}

// Last returns the most recent record.
func (r *Recorder) Last() (Record, bool) {
	if len(r.Records) == 0 {
		return Record{}, false
	}
	return r.Records[len(r.Records)-1], true
}
