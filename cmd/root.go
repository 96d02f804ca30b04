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
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tensorbasis",
	Short: "Tensor-product Lagrange shape functions on reference elements",
	Long: `Evaluates arbitrary order tensor-product Lagrange basis functions, their
gradients and the isoparametric Jacobian on 1D to 4D reference elements,
described by a YAML element file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tensorbasis.yaml)")
	rootCmd.PersistentFlags().StringP("inputFile", "I", "", "YAML element description, see 'tensorbasis eval --help'")
	rootCmd.PersistentFlags().IntP("threads", "t", 0, "goroutines used for batch evaluation, overrides Threads in the input file")
	if err := viper.BindPFlag("inputFile", rootCmd.PersistentFlags().Lookup("inputFile")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("threads", rootCmd.PersistentFlags().Lookup("threads")); err != nil {
		panic(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".tensorbasis" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".tensorbasis")
	}

	viper.SetEnvPrefix("tensorbasis")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
