/*
 * root.go, part of excimd.
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
	"strings"

	excimd "github.com/rmera/excimd"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var version = "dev"

//log is the process-wide logger, set up before any command runs.
var log *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:   "excimd",
	Short: "Correlate excited-state data with MD trajectories",
	Long: `excimd loads an XYZ molecular dynamics trajectory together with the
S1/S2 excitation energies and oscillator strengths calculated on its
snapshots, and produces broadened spectra, dominance statistics binned
by a geometric descriptor, and portable session files.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogger(); err != nil {
			return err
		}
		return loadConfigFile()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync() //nolint:errcheck
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default ./excimd.yaml)")
	pf.Bool("verbose", false, "debug logging")
	pf.Float64("timestep", excimd.DefaultTimestep, "trajectory timestep (fs)")
	pf.Float64("equilibration", excimd.DefaultEquilibration, "time of the first excitation snapshot (fs)")
	pf.Float64("interval", excimd.DefaultExcitationInterval, "time between excitation snapshots (fs)")
	pf.Float64("width", excimd.DefaultGaussianWidth, "gaussian broadening width (eV)")
	pf.Float64("energy-min", excimd.DefaultEnergyMin, "lower end of the spectral window (eV)")
	pf.Float64("energy-max", excimd.DefaultEnergyMax, "upper end of the spectral window (eV)")
	pf.Int("energy-points", excimd.DefaultEnergyPoints, "points of the energy axis")
	pf.Float64("bin-width", 10, "descriptor bin width")
	pf.Float64("max-gap", 100, "largest frame/sample time mismatch to correlate (fs)")
	pf.Duration("pair-budget", 0, "time budget for representative-pair searches, 0 for none")
	cobra.CheckErr(viper.BindPFlags(pf))
	viper.SetEnvPrefix("EXCIMD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setupLogger() error {
	cfg := zap.NewProductionConfig()
	if viper.GetBool("verbose") {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	log = l.Sugar()
	return nil
}

//loadConfigFile reads the optional YAML config. Flags and environment
//variables override it.
func loadConfigFile() error {
	if name := viper.GetString("config"); name != "" {
		viper.SetConfigFile(name)
	} else {
		viper.SetConfigName("excimd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	log.Debugw("config loaded", "file", viper.ConfigFileUsed())
	return nil
}
