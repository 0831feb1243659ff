/*
 * doc.go, part of excimd.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * excimd is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

/*Package excimd correlates molecular-dynamics trajectories with
sparsely-sampled electronic-excitation data. It is a post-processing layer
over already-computed results, not a simulator.


	**Capabilities**

    Reads multi-frame XYZ trajectories and paired S1/S2 excitation tables.

    Infers chemical bonds from one frame's coordinates via element-dependent
	distance cutoffs.

    Aligns the densely-sampled trajectory with the sparse excitation series:
	any query time maps to an exact, clamped or linearly-interpolated
	excitation sample.

    Synthesizes continuous Gaussian-broadened absorption spectra from the
	discrete transitions, with a cached display ceiling for consistent axis
	scaling.

    Bins frames by an externally-supplied geometric descriptor (say, a twist
	angle) and aggregates which excited state dominates per bin, including a
	representative comparison-frame pair per bin.

All loading happens once; after that the stores are treated as immutable and
every analysis entry point is safe for concurrent callers. The library does
not render anything itself: the export, plot and cmd/excimd packages consume
its outputs for the presentation side.
*/
package excimd
