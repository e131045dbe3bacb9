// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"strings"

	"github.com/emer/emergent/params"
)

// ParamSets are the named parameter sets.
// Base is always applied, and others can be optionally selected to apply on top of that
var ParamSets = params.Sets{
	{Name: "Base", Desc: "default values of the combined model", Sheets: params.Sheets{
		"Sim": &params.Sheet{
			{Sel: "Opsin", Desc: "Williams et al 2013 ChR2 rates at room temperature",
				Params: params.Params{
					"Opsin.Gd2":     "0.05",
					"Opsin.Ep1":     "0.8535",
					"Opsin.Ep2":     "0.14",
					"Opsin.TauChR2": "1.3",
				}},
			{Sel: "ChR2", Desc: "whole-cell recording",
				Params: params.Params{
					"ChR2.G":          "0.4",
					"ChR2.Wavelength": "470",
					"ChR2.Holding":    "-70",
				}},
			{Sel: "Neuron", Desc: "regular spiking",
				Params: params.Params{
					"Neuron.A": "0.02",
					"Neuron.B": "0.2",
					"Neuron.C": "-65",
					"Neuron.D": "8",
				}},
		},
	}},
	{Name: "BodyTemp", Desc: "opsin rates scaled to body temperature", Sheets: params.Sheets{
		"Sim": &params.Sheet{
			{Sel: "Opsin", Desc: "37 C",
				Params: params.Params{
					"Opsin.Temp": "37",
				}},
		},
	}},
	{Name: "LiveVoltage", Desc: "opsin driven by the neuron's membrane potential instead of the holding potential", Sheets: params.Sheets{
		"Sim": &params.Sheet{
			{Sel: "ChR2", Desc: "no voltage clamp",
				Params: params.Params{
					"ChR2.Mode": "LiveVoltage",
				}},
		},
	}},
	{Name: "PulseTrain", Desc: "three short pulses instead of one long pulse", Sheets: params.Sheets{
		"Sim": &params.Sheet{
			{Sel: "Stim", Desc: "pulses at 0, 20, 40 ms",
				Params: params.Params{
					"Stim.Mode": "PulseTrain",
				}},
		},
	}},
	{Name: "Renorm", Desc: "keep opsin populations in 0..1 summing to 1", Sheets: params.Sheets{
		"Sim": &params.Sheet{
			{Sel: "Opsin", Desc: "renormalize after each step",
				Params: params.Params{
					"Opsin.Renorm": "true",
				}},
		},
	}},
	{Name: "FastChannels", Desc: "fewer channels, slower membrane", Sheets: params.Sheets{
		"Sim": &params.Sheet{
			{Sel: "Membrane", Desc: "start at rest to remove the initial transient",
				Params: params.Params{
					"Membrane.StartAtRest": "true",
				}},
		},
	}},
}

// ApplyParams applies the Base parameter set and then the named set (if not
// empty or Base) to the config, and updates it.
func ApplyParams(cfg *Config, setName string, setMsg bool) error {
	if err := applySet(cfg, "Base", setMsg); err != nil {
		return err
	}
	if setName != "" && setName != "Base" {
		if err := applySet(cfg, setName, setMsg); err != nil {
			return err
		}
	}
	cfg.Update()
	return nil
}

func applySet(cfg *Config, setName string, setMsg bool) error {
	pset, err := ParamSets.SetByNameTry(setName)
	if err != nil {
		return err
	}
	sh, ok := pset.Sheets["Sim"]
	if !ok {
		return fmt.Errorf("sim: param set %s has no Sim sheet", setName)
	}
	return applySheet(cfg, sh, setMsg)
}

func applySheet(cfg *Config, sh *params.Sheet, setMsg bool) error {
	for _, obj := range cfg.Styled() {
		if _, err := sh.Apply(obj, setMsg); err != nil {
			return err
		}
	}
	return nil
}

// SetParam sets one component parameter from a path of the form
// Type.Field (e.g., Opsin.Gd2) and a string value, and updates the config.
func SetParam(cfg *Config, path, val string) error {
	typ, _, ok := strings.Cut(path, ".")
	if !ok || typ == "" {
		return fmt.Errorf("sim: param path %q must be Type.Field", path)
	}
	sh := &params.Sheet{
		{Sel: typ, Desc: "set", Params: params.Params{path: val}},
	}
	applied := false
	for _, obj := range cfg.Styled() {
		app, err := sh.Apply(obj, false)
		if err != nil {
			return err
		}
		applied = applied || app
	}
	if !applied {
		return fmt.Errorf("sim: no parameters match %q", path)
	}
	cfg.Update()
	return nil
}

// SetParamString parses Type.Field=value and calls SetParam
func SetParamString(cfg *Config, kv string) error {
	path, val, ok := strings.Cut(kv, "=")
	if !ok {
		return fmt.Errorf("sim: param setting %q must be Type.Field=value", kv)
	}
	return SetParam(cfg, strings.TrimSpace(path), strings.TrimSpace(val))
}
