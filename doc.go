// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sonogen is the overall repository for the sonogenetic nano-bubble
simulation: ultrasound on an M13 phage layer drives calcium through the SER
channels of a nano-bubble, the calcium emits light, and the light drives a
ChR2-expressing Izhikevich neuron.

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* phys: physical constants shared by the stages.

* chans: the supported SER channel counts and their conductance (resistance, tau).

* lookup: the ultrasound intensity to M13 voltage table, read from CSV.

* membrane: the SER membrane voltage, relaxing exponentially toward rest plus the
M13 voltage and reset at the saturation voltage.

* ions: the Nernst partition of calcium between the intra and extra bubble compartments.

* emission: the photon emission probability and light intensity from the extra
bubble calcium.

* stim: the light pulse schedule and the top percentile aggregation of the light series.

* opsin: the four-state ChR2 kinetic model and its voltage dependent rates.

* izhi: the Izhikevich neuron with spike detection and rest convergence.

* sim: the configuration, parameter sets and the two time loops that chain the stages.

* cmd/sonosim: the command line program.
*/
package sonogen
