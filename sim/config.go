// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"errors"
	"fmt"

	"github.com/emer/sonogen/chans"
	"github.com/emer/sonogen/emission"
	"github.com/emer/sonogen/izhi"
	"github.com/emer/sonogen/lookup"
	"github.com/emer/sonogen/membrane"
	"github.com/emer/sonogen/opsin"
	"github.com/emer/sonogen/stim"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ErrConfig is returned for non-physical configuration values
var ErrConfig = errors.New("sim: invalid config")

// Config has all the parameters of both loops.  It is copied into each run,
// so changing it never affects a run in progress.
type Config struct {
	Chans      chans.ChannelCount `def:"1000" desc:"number of SER calcium channels"`
	Ultrasound float64            `def:"2" desc:"ultrasound intensity on the M13 layer, in mW/cm^2"`
	InitExtra  float64            `def:"0.0002" desc:"initial extracellular calcium concentration, in mol"`
	BubbleDt   float64            `def:"1e-9" desc:"bubble loop time step, in s"`
	BubbleTime float64            `def:"1e-5" desc:"bubble loop horizon, in s"`
	TopPct     float64            `def:"5" desc:"percent of the highest light intensities averaged for the representative intensity"`
	NeuronDt   float64            `def:"0.02" desc:"neuron loop time step, in ms"`
	NeuronTime float64            `def:"600" desc:"neuron loop horizon, in ms"`
	UseBubble  bool               `def:"true" desc:"use the representative bubble intensity as the pulse intensity -- otherwise Stim.Intensity is used"`

	Lookup   lookup.Params     `view:"inline" desc:"voltage table query parameters"`
	Membrane membrane.Params   `view:"inline" desc:"SER membrane parameters -- Dt is set from BubbleDt"`
	Emission emission.Params   `view:"inline" desc:"photon emission parameters -- Dt is set from BubbleDt"`
	Stim     stim.Params       `view:"inline" desc:"light pulse schedule"`
	Opsin    opsin.Params      `view:"inline" desc:"ChR2 kinetic parameters"`
	ChR2     opsin.ChR2Params  `view:"inline" desc:"ChR2 population parameters -- Dt is set from NeuronDt"`
	Neuron   izhi.Params       `view:"inline" desc:"Izhikevich neuron parameters -- Dt is set from NeuronDt"`
}

func (cfg *Config) Defaults() {
	cfg.Chans = chans.Chan1000
	cfg.Ultrasound = 2
	cfg.InitExtra = 0.2e-3
	cfg.BubbleDt = 1e-9
	cfg.BubbleTime = 1e-5
	cfg.TopPct = stim.DefPct
	cfg.NeuronDt = 0.02
	cfg.NeuronTime = 600
	cfg.UseBubble = true
	cfg.Lookup.Defaults()
	cfg.Membrane.Defaults()
	cfg.Emission.Defaults()
	cfg.Stim.Defaults()
	cfg.Opsin.Defaults()
	cfg.ChR2.Defaults()
	cfg.Neuron.Defaults()
	cfg.Update()
}

// Update propagates the loop time steps into the components and updates
// their derived values.  Must be called after any change.
func (cfg *Config) Update() {
	cfg.Membrane.Dt = cfg.BubbleDt
	cfg.Emission.Dt = cfg.BubbleDt
	cfg.ChR2.Dt = float32(cfg.NeuronDt)
	cfg.Neuron.Dt = float32(cfg.NeuronDt)
	cfg.Lookup.Update()
	cfg.Membrane.Update()
	cfg.Emission.Update()
	cfg.Stim.Update()
	cfg.Opsin.Update()
	cfg.ChR2.Update()
	cfg.Neuron.Update()
}

// Validate returns an error describing the first non-physical value
func (cfg *Config) Validate() error {
	if !cfg.Chans.Valid() {
		return fmt.Errorf("%w: unsupported channel count %d (want one of %v)", ErrConfig, int(cfg.Chans), chans.AllCounts())
	}
	switch {
	case !(cfg.BubbleDt > 0):
		return fmt.Errorf("%w: BubbleDt %g must be > 0", ErrConfig, cfg.BubbleDt)
	case !(cfg.BubbleTime > 0):
		return fmt.Errorf("%w: BubbleTime %g must be > 0", ErrConfig, cfg.BubbleTime)
	case !(cfg.NeuronDt > 0):
		return fmt.Errorf("%w: NeuronDt %g must be > 0", ErrConfig, cfg.NeuronDt)
	case !(cfg.NeuronTime > 0):
		return fmt.Errorf("%w: NeuronTime %g must be > 0", ErrConfig, cfg.NeuronTime)
	case !(cfg.InitExtra > 0):
		return fmt.Errorf("%w: InitExtra %g must be > 0", ErrConfig, cfg.InitExtra)
	case !(cfg.TopPct > 0 && cfg.TopPct <= 100):
		return fmt.Errorf("%w: TopPct %g must be in (0, 100]", ErrConfig, cfg.TopPct)
	case !(cfg.Emission.Diffusion > 0 && cfg.Emission.Radius > 0):
		return fmt.Errorf("%w: diffusion %g and radius %g must be > 0", ErrConfig, cfg.Emission.Diffusion, cfg.Emission.Radius)
	}
	if err := cfg.Membrane.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := cfg.Stim.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := cfg.ChR2.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if _, err := cfg.Neuron.Rest(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}

// Styled returns the component params that parameter sheets apply to
func (cfg *Config) Styled() []interface{} {
	return []interface{}{&cfg.Lookup, &cfg.Membrane, &cfg.Emission, &cfg.Stim, &cfg.Opsin, &cfg.ChR2, &cfg.Neuron}
}

// DecodeHook converts strings to enum values and channel counts when
// decoding config files
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// LoadConfig reads a TOML, YAML or JSON config file on top of the defaults.
// Keys are the Config field names, nested by component, e.g., opsin.gd2.
func LoadConfig(path string) (*Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("sim: reading config %s: %w", path, err)
	}
	return DecodeConfig(vp)
}

// DecodeConfig decodes the settings of vp on top of the defaults,
// and validates the result
func DecodeConfig(vp *viper.Viper) (*Config, error) {
	cfg := &Config{}
	cfg.Defaults()
	if err := vp.Unmarshal(cfg, viper.DecodeHook(DecodeHook())); err != nil {
		return nil, fmt.Errorf("sim: decoding config: %w", err)
	}
	cfg.Update()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
