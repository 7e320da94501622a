/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/gridsym/trisym/InputParameters"
	"github.com/gridsym/trisym/optimize"
	"github.com/gridsym/trisym/spectral"
	"github.com/gridsym/trisym/trifit"
)

// FitCmd represents the fit command
var FitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a symmetrized Fourier series to grid samples",
	Long: `
Reads one period of a sampled field, fits the triangular-symmetry Fourier
basis, optionally enforces face-normal gradient constraints, and writes
the field re-evaluated at the requested resolution,

trisym fit -F samples.dat -I params.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		mf := &ModelFit{}
		mf.DataFile, _ = cmd.Flags().GetString("dataFile")
		mf.ParamFile, _ = cmd.Flags().GetString("inputParametersFile")
		mf.OutFile, _ = cmd.Flags().GetString("outputFile")
		mf.N, _ = cmd.Flags().GetInt("n")
		caseInt, _ := cmd.Flags().GetInt("case")
		mf.Case = CaseType(caseInt)
		mf.NormalToFace, _ = cmd.Flags().GetBool("normalToFace")
		mf.Profile, _ = cmd.Flags().GetBool("profile")
		ip := processFitInput(mf)
		RunFit(mf, ip)
	},
}

func init() {
	rootCmd.AddCommand(FitCmd)
	FitCmd.Flags().StringP("dataFile", "F", "", "whitespace-separated real samples, N^2 or N^3 values")
	FitCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for fit parameters like:\n\t- Resolution\n\t- NormalToFace")
	FitCmd.Flags().StringP("outputFile", "o", "", "file to write the re-evaluated field to")
	FitCmd.Flags().IntP("n", "n", 4, "samples per axis when generating a built-in case")
	FitCmd.Flags().IntP("case", "c", int(SchwarzP), "built-in case when no data file is given: 0 = Schwarz-P")
	FitCmd.Flags().Bool("normalToFace", false, "enforce face-normal gradient constraints")
	FitCmd.Flags().Bool("profile", false, "write a CPU profile for the fit")
}

type CaseType int

const (
	SchwarzP CaseType = iota
)

type ModelFit struct {
	DataFile, ParamFile, OutFile string
	N                            int
	Case                         CaseType
	NormalToFace                 bool
	Profile                      bool
}

func processFitInput(mf *ModelFit) (ip *InputParameters.FitParameters) {
	ip = &InputParameters.FitParameters{
		Title:        "trisym fit",
		N:            mf.N,
		Rank:         3,
		NormalToFace: mf.NormalToFace,
	}
	if len(mf.ParamFile) != 0 {
		var (
			data []byte
			err  error
		)
		if data, err = ioutil.ReadFile(mf.ParamFile); err != nil {
			panic(err)
		}
		if err = ip.Parse(data); err != nil {
			panic(err)
		}
	}
	if ip.Resolution == 0 {
		ip.Resolution = ip.N
	}
	ip.Print()
	return
}

func RunFit(mf *ModelFit, ip *InputParameters.FitParameters) {
	if mf.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	var (
		samples []float64
		err     error
	)
	if len(mf.DataFile) != 0 {
		if samples, err = readSamples(mf.DataFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if ip.N, ip.Rank, err = inferShape(len(samples)); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	} else {
		switch mf.Case {
		case SchwarzP:
			fallthrough
		default:
			samples = SchwarzPField(ip.N)
		}
		ip.Rank = 3
	}
	grid, err := spectral.NewGridReal(samples, ip.N, ip.Rank)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	cfg := trifit.Config{
		NormalToFace: ip.NormalToFace,
		Faces:        ip.Faces,
		Verbose:      ip.Verbose,
	}
	if ip.Tolerance != 0 {
		cfg.Solver = optimize.NewProjectionSolver(optimize.Settings{
			Tol:     ip.Tolerance,
			Verbose: ip.Verbose,
		})
	}
	ts, err := trifit.NewTriSymmetryConfig(grid, cfg)
	if err != nil {
		fmt.Printf("fit failed: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("fitted %d orbits (maxF = %d)\n", len(ts.Orbits), ts.MaxF)
	if ip.NormalToFace {
		fmt.Printf("%d face-normal constraint equations retained\n", len(ts.Constraints))
	}
	vals, err := ts.EvaluateGrid(ip.Resolution)
	if err != nil {
		fmt.Printf("evaluation failed: %s\n", err.Error())
		os.Exit(1)
	}
	if len(mf.OutFile) != 0 {
		if err = writeSamples(mf.OutFile, vals); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("wrote %d values to %s\n", len(vals), mf.OutFile)
	}
}

// SchwarzPField samples cos(2 pi x) + cos(2 pi y) + cos(2 pi z) on the
// n^3 grid covering [-0.5, 0.5) per axis.
func SchwarzPField(n int) (data []float64) {
	data = make([]float64, n*n*n)
	coord := func(i int) float64 { return float64(i-n/2) / float64(n) }
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				data[(i*n+j)*n+k] = math.Cos(2*math.Pi*coord(i)) +
					math.Cos(2*math.Pi*coord(j)) + math.Cos(2*math.Pi*coord(k))
			}
		}
	}
	return
}

func readSamples(fileName string) (samples []float64, err error) {
	data, err := ioutil.ReadFile(fileName)
	if err != nil {
		return
	}
	fields := strings.Fields(string(data))
	samples = make([]float64, len(fields))
	for i, field := range fields {
		if samples[i], err = strconv.ParseFloat(field, 64); err != nil {
			return nil, fmt.Errorf("bad sample %q at position %d: %w", field, i, err)
		}
	}
	return
}

func inferShape(count int) (n, rank int, err error) {
	for n = 3; n*n*n <= count; n++ {
		if n*n*n == count {
			return n, 3, nil
		}
	}
	for n = 3; n*n <= count; n++ {
		if n*n == count {
			return n, 2, nil
		}
	}
	return 0, 0, fmt.Errorf("%d samples is neither N^2 nor N^3 for N > 2", count)
}

func writeSamples(fileName string, vals []complex128) (err error) {
	var sb strings.Builder
	for _, v := range vals {
		if imag(v) == 0 {
			fmt.Fprintf(&sb, "%.17g\n", real(v))
		} else {
			fmt.Fprintf(&sb, "%.17g %.17g\n", real(v), imag(v))
		}
	}
	return ioutil.WriteFile(fileName, []byte(sb.String()), 0644)
}
