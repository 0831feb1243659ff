/*
 * atomicdata.go, part of excimd.
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

package excimd

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.011,
	"O":  15.999,
	"N":  14.007,
	"P":  30.974,
	"S":  32.065,
	"F":  18.998,
	"Cl": 35.453,
	"Br": 79.904,
	"I":  126.90,
	"Se": 78.96,
	"Si": 28.08,
	"Na": 22.99,
	"K":  39.1,
	"Mg": 24.30,
	"Ca": 40.08,
}

//Per-element bond cutoffs, in Angstrom. Any pair with a heavy atom not
//listed here uses defaultBondCutoff; any pair involving hydrogen uses
//hydrogenBondCutoff regardless of the other atom.
const (
	defaultBondCutoff  = 1.8
	hydrogenBondCutoff = 1.2
)

var symbolBondCutoff = map[string]float64{
	"S": 2.2,
	"P": 2.2,
}

//CPK-ish display colors per element, for the presentation layer.
//Unknown elements should get a neutral gray.
var symbolColor = map[string]string{
	"C":  "#909090",
	"N":  "#3050f8",
	"O":  "#ff0d0d",
	"H":  "#ffffff",
	"S":  "#ffff30",
	"P":  "#ff8000",
	"F":  "#90e050",
	"Cl": "#1ff01f",
	"Br": "#a62929",
	"I":  "#940094",
}

//Display radii per element, in Angstrom, for the presentation layer.
var symbolDisplayRad = map[string]float64{
	"C":  0.7,
	"N":  0.65,
	"O":  0.6,
	"H":  0.25,
	"S":  1.0,
	"P":  1.0,
	"F":  0.5,
	"Cl": 0.75,
	"Br": 0.85,
	"I":  0.95,
}

//The canonical element order for a Hill-ish molecular formula.
var formulaOrder = []string{"C", "H", "N", "O", "S", "P", "F", "Cl", "Br", "I"}
