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
	"math/rand"
	"time"

	perf "github.com/hodgesds/perf-utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/tensorbasis/element"
)

type Bench struct {
	Iterations int
	NumPoints  int
	Profile    string
	Perf       bool
}

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time batch evaluation of an element over random reference points",
	Long: `Time batch evaluation of an element over random reference points, optionally
under the Go profiler (--profile cpu|mem) or with hardware counters (--perf).`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		b := &Bench{}
		if b.Iterations, err = cmd.Flags().GetInt("iters"); err != nil {
			panic(err)
		}
		if b.NumPoints, err = cmd.Flags().GetInt("points"); err != nil {
			panic(err)
		}
		b.Profile, _ = cmd.Flags().GetString("profile")
		b.Perf, _ = cmd.Flags().GetBool("perf")
		es := processInput(viper.GetString("inputFile"), viper.GetInt("threads"))
		es.Params.Print()
		RunBench(b, es)
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().IntP("iters", "n", 100, "number of passes over the point set")
	BenchCmd.Flags().IntP("points", "m", 10000, "number of random reference points")
	BenchCmd.Flags().String("profile", "", "write a pprof profile: cpu or mem")
	BenchCmd.Flags().Bool("perf", false, "read CPU instruction and cycle counters around the run (Linux)")
}

func RunBench(b *Bench, es *ElementSetup) {
	var (
		dim    = es.Element.Dim()
		rnd    = rand.New(rand.NewSource(1))
		points = make([][]float64, b.NumPoints)
	)
	for k := range points {
		points[k] = make([]float64, dim)
		for d := range points[k] {
			points[k][d] = -1 + 2*rnd.Float64()
		}
	}
	var failed int
	run := func() error {
		failed = 0
		for i := 0; i < b.Iterations; i++ {
			for _, p := range element.EvaluateAll(es.Element, es.Map, points, es.Threads) {
				if p.Err != nil {
					failed++
				}
			}
		}
		return nil
	}
	switch b.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "":
	default:
		fmt.Printf("unknown profile type %q, running without profiling\n", b.Profile)
	}
	start := time.Now()
	_ = run()
	elapsed := time.Since(start)
	evals := float64(b.Iterations * b.NumPoints)
	fmt.Printf("%s: %d iterations x %d points on %d threads in %v, %8.3f us/point, %d failed points\n",
		es.Element.Name(), b.Iterations, b.NumPoints, es.Threads, elapsed,
		1.e6*elapsed.Seconds()/evals, failed)
	if b.Perf {
		if pv, err := perf.CPUInstructions(run); err != nil {
			fmt.Printf("hardware counters unavailable: %v\n", err)
		} else {
			fmt.Printf("CPU instructions = %d, %8.1f per point\n", pv.Value, float64(pv.Value)/evals)
		}
		if pv, err := perf.CPUCycles(run); err == nil {
			fmt.Printf("CPU cycles = %d, %8.1f per point\n", pv.Value, float64(pv.Value)/evals)
		}
	}
}
