// Package config parses the `.mis` parameter stream into
// driver.Config / optimizer.Config, mirroring msolid's Init(ndim,
// pstress, prms fun.Prms) switch-over-name pattern (see
// msolid/dp.go's DruckerPrager.Init).
package config

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/utl"

	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/driver"
	"github.com/trindadetiago/SGI-Project-1-Make-it-Stand/optimizer"
)

// Params bundles the driver and optimizer configs a `.mis` file
// populates, plus the handful of top-level run parameters (resolution,
// corner-normal cosine threshold) that belong to neither sub-config.
type Params struct {
	Driver     driver.Config
	Optimizer  optimizer.Config
	Resolution int // voxel grid R
	CornerCos  float64
}

// Default returns the default values for every field a
// `.mis` file may omit.
func Default() Params {
	return Params{
		Driver: driver.DefaultConfig(),
		Optimizer: optimizer.Config{
			Mu:         0.1,
			Lambda:     1.0,
			Step:       1.0,
			HullDepth:  1,
			UseScaling: false,
		},
		Resolution: 32,
		CornerCos:  0.8,
	}
}

// ParsePrms turns a `.mis` file's flat "name value" lines into a
// fun.Prms list (gosl's own parameter-stream representation).
func ParsePrms(text string) (fun.Prms, error) {
	var prms fun.Prms
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, chk.Err("config: malformed line %q; expected \"name value\"", line)
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, chk.Err("config: bad value in %q: %v", line, err)
		}
		prms = append(prms, &fun.Prm{N: fields[0], V: v})
	}
	return prms, nil
}

// Init populates p from prms, starting from Default() and overwriting
// only the names prms supplies, exactly as DruckerPrager.Init layers
// its own parameters on top of SmallElasticity.Init's.
func (p *Params) Init(prms fun.Prms) error {
	*p = Default()
	for _, prm := range prms {
		switch prm.N {
		case "mu":
			p.Optimizer.Mu = prm.V
		case "lambda":
			p.Optimizer.Lambda = prm.V
		case "step":
			p.Optimizer.Step = prm.V
			p.Driver.StartStep = prm.V
		case "hullDepth":
			p.Optimizer.HullDepth = int(prm.V)
		case "useScaling":
			p.Optimizer.UseScaling = prm.V != 0
		case "resolution":
			p.Resolution = int(prm.V)
		case "cornerCos":
			p.CornerCos = prm.V
		case "minStepDecay":
			p.Driver.MinStepDecay = prm.V
		case "muDecay":
			p.Driver.MuDecay = prm.V
		case "muFloor":
			p.Driver.MuFloor = prm.V
		case "insufficientRel":
			p.Driver.InsufficientRel = prm.V
		case "fixedMu":
			p.Driver.FixedMu = prm.V != 0
		default:
			return chk.Err("config: parameter named %q is not recognised", prm.N)
		}
	}
	return nil
}

// Load reads a `.mis` file from disk and returns its fully populated
// Params.
func Load(path string) (Params, error) {
	var p Params
	b, err := utl.ReadFile(path)
	if err != nil {
		return p, chk.Err("config: cannot read %q: %v", path, err)
	}
	prms, err := ParsePrms(string(b))
	if err != nil {
		return p, err
	}
	if err := p.Init(prms); err != nil {
		return p, err
	}
	return p, nil
}
