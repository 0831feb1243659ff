/*
 * analyze.go, part of excimd.
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

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	excimd "github.com/rmera/excimd"
	"github.com/rmera/excimd/export"
	explot "github.com/rmera/excimd/plot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	analyzeCmd.Flags().String("descriptors", "", "per-frame descriptor file (time value [secondary])")
	analyzeCmd.Flags().String("fail", "", "failed-snapshot index list")
	analyzeCmd.Flags().String("session", "", "write the session to this file (zstd JSON)")
	analyzeCmd.Flags().String("csv-prefix", "", "write <prefix>_excitation.csv and <prefix>_bins.csv")
	analyzeCmd.Flags().String("plot-prefix", "", "write <prefix>_spectrum.png, <prefix>_bins.png")
	analyzeCmd.Flags().Int("max-frames", 0, "downsample the stored session to this many frames, 0 keeps all")
	cobra.CheckErr(analyzeCmd.MarkFlagRequired("descriptors"))
	rootCmd.AddCommand(analyzeCmd)

	spectrumCmd.Flags().Float64("time", 0, "query time (fs)")
	spectrumCmd.Flags().String("fail", "", "failed-snapshot index list")
	spectrumCmd.Flags().String("out", "spectrum.png", "output image")
	cobra.CheckErr(spectrumCmd.MarkFlagRequired("time"))
	rootCmd.AddCommand(spectrumCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze traj.xyz s1.dat s2.dat",
	Short: "Run the full correlation analysis",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := excimd.XYZTrajRead(args[0], viper.GetFloat64("timestep"))
		if err != nil {
			return err
		}
		stats, err := store.Stats()
		if err != nil {
			return err
		}
		log.Infow("trajectory loaded", "file", args[0], "atoms", stats.NAtoms,
			"frames", stats.NFrames, "formula", stats.Formula)

		failname, _ := cmd.Flags().GetString("fail")
		series, err := excimd.ReadDatSeries(args[1], args[2], failname,
			viper.GetFloat64("equilibration"), viper.GetFloat64("interval"))
		if err != nil {
			return err
		}
		width := viper.GetFloat64("width")
		ceiling := series.DisplayCeiling(width)
		log.Infow("excitation series loaded", "samples", series.Len(), "ceiling", ceiling)

		descname, _ := cmd.Flags().GetString("descriptors")
		points, err := readDescriptors(descname)
		if err != nil {
			return err
		}
		correlator := excimd.NewCorrelator(series, viper.GetFloat64("bin-width"),
			viper.GetFloat64("max-gap"), viper.GetDuration("pair-budget"))
		bins := correlator.Rebuild(points)
		log.Infow("correlation built", "descriptors", len(points), "bins", len(bins))
		for _, b := range bins {
			log.Debugw("bin", "range", fmt.Sprintf("[%.2f,%.2f)", b.Lo, b.Hi),
				"total", b.Total, "s1pct", b.State1Pct, "s2pct", b.State2Pct)
		}

		graph, err := excimd.NewBondGraph(store, 0)
		if err != nil {
			return err
		}
		log.Infow("connectivity inferred", "bonds", len(graph.Bonds()), "reference", graph.RefFrame())

		if name, _ := cmd.Flags().GetString("session"); name != "" {
			maxFrames, _ := cmd.Flags().GetInt("max-frames")
			s := export.NewSession(store, series, bins, ceiling, maxFrames)
			if err := s.Write(name); err != nil {
				return err
			}
			log.Infow("session written", "file", name)
		}
		if prefix, _ := cmd.Flags().GetString("csv-prefix"); prefix != "" {
			if err := writeCSVs(prefix, series, bins); err != nil {
				return err
			}
		}
		if prefix, _ := cmd.Flags().GetString("plot-prefix"); prefix != "" {
			axis := energyAxis()
			err := explot.Spectrum(axis, series.AverageSpectrum(axis, width), ceiling,
				"Average spectrum", prefix+"_spectrum.png")
			if err != nil {
				return err
			}
			if len(bins) > 0 {
				err = explot.Bins(bins, "State dominance", prefix+"_bins.png")
				if err != nil {
					return err
				}
			}
			log.Infow("plots written", "prefix", prefix)
		}
		return nil
	},
}

var spectrumCmd = &cobra.Command{
	Use:   "spectrum s1.dat s2.dat",
	Short: "Render the broadened spectrum at a query time",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		failname, _ := cmd.Flags().GetString("fail")
		series, err := excimd.ReadDatSeries(args[0], args[1], failname,
			viper.GetFloat64("equilibration"), viper.GetFloat64("interval"))
		if err != nil {
			return err
		}
		t, _ := cmd.Flags().GetFloat64("time")
		sample := series.FindSample(t)
		log.Infow("sample aligned", "time", t, "interpolated", sample.Interpolated,
			"osc1", sample.Osc1, "osc2", sample.Osc2, "gap", sample.Gap())
		width := viper.GetFloat64("width")
		axis := energyAxis()
		intens := excimd.Spectrum(axis, &sample.ExcitationSample, width)
		out, _ := cmd.Flags().GetString("out")
		title := fmt.Sprintf("Spectrum at %.1f fs", t)
		if err := explot.Spectrum(axis, intens, series.DisplayCeiling(width), title, out); err != nil {
			return err
		}
		log.Infow("spectrum written", "file", out)
		return nil
	},
}

func energyAxis() []float64 {
	return excimd.EnergyAxis(viper.GetFloat64("energy-min"),
		viper.GetFloat64("energy-max"), viper.GetInt("energy-points"))
}

func writeCSVs(prefix string, series *excimd.ExcitationSeries, bins []*excimd.CorrelationBin) error {
	fh, err := os.Create(prefix + "_excitation.csv")
	if err != nil {
		return err
	}
	if err := export.ExcitationCSV(fh, series); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return err
	}
	fh, err = os.Create(prefix + "_bins.csv")
	if err != nil {
		return err
	}
	if err := export.BinCSV(fh, bins); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return err
	}
	log.Infow("tables written", "prefix", prefix)
	return nil
}

//readDescriptors reads a whitespace-separated file with one frame per
//line: time (fs), descriptor value and, optionally, a secondary value.
func readDescriptors(name string) ([]excimd.DescriptorPoint, error) {
	fh, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	var points []excimd.DescriptorPoint
	scanner := bufio.NewScanner(fh)
	frame := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("descriptor file %s: line %q needs at least time and value", name, line)
		}
		p := excimd.DescriptorPoint{Frame: frame}
		if p.Time, err = strconv.ParseFloat(fields[0], 64); err != nil {
			return nil, fmt.Errorf("descriptor file %s: %w", name, err)
		}
		if p.Value, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return nil, fmt.Errorf("descriptor file %s: %w", name, err)
		}
		if len(fields) > 2 {
			if p.Secondary, err = strconv.ParseFloat(fields[2], 64); err != nil {
				return nil, fmt.Errorf("descriptor file %s: %w", name, err)
			}
		}
		points = append(points, p)
		frame++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}
