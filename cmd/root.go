// Package cmd is for command line interactions with the sgrna application
package cmd

import (
	"log"
	"os"

	"github.com/kalekundert/sgrna/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stderr is for messages that shouldn't pollute the sequence output, which
// is often piped straight into other tools.
var stderr = log.New(os.Stderr, "", 0)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "sgrna",
	Short: `Design sgRNAs that turn Cas9 on or off in response to a small molecule.
Constructs are specified by short names like "us(4)" or "cb/wo"`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		stderr.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("target", "t", "", "gene the spacer should target (aavs, rfp, vegfa)")
	rootCmd.PersistentFlags().StringP("ligand", "l", "", "ligand whose aptamer to build in (theo, tet)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log extra information to stderr")
	viper.BindPFlag("target", rootCmd.PersistentFlags().Lookup("target"))
	viper.BindPFlag("ligand", rootCmd.PersistentFlags().Lookup("ligand"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads an optional settings.yaml and the environment into Viper.
func initConfig() {
	config.SetDefaults()

	viper.SetConfigName("settings")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("SGRNA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			stderr.Printf("using settings from %s", viper.ConfigFileUsed())
		}
	}
}
