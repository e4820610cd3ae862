package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/theapemachine/errnie"

	"github.com/theapemachine/qnotebook"
)

// dumper shows the raw fields; Result's String method would hide them.
var dumper = &spew.ConfigState{Indent: " ", DisableMethods: true, DisablePointerAddresses: true}

var (
	configPath string  // Optional YAML file layered over the defaults
	visibility float64 // Overrides the configured visibility when set
	verbose    bool    // Dump raw results after the formatted output
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "qnotebook",
	Short: "Unitary evolution and decoherence, one cell at a time",
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every cell in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := newNotebook(cmd)
		if err != nil {
			return err
		}

		results, err := nb.RunAll()
		for _, result := range results {
			report(cmd.OutOrStdout(), result)
		}

		if err != nil {
			return err
		}

		return checkPassed(results...)
	},
}

func cellCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := newNotebook(cmd)
			if err != nil {
				return err
			}

			result, err := nb.Run(name)
			if err != nil {
				return err
			}

			report(cmd.OutOrStdout(), result)
			return checkPassed(result)
		},
	}
}

func newNotebook(cmd *cobra.Command) (*qnotebook.Notebook, error) {
	cfg := qnotebook.NewConfig()

	if configPath != "" {
		loaded, err := qnotebook.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("visibility") {
		cfg.Visibility = visibility
	}

	errnie.Info("qnotebook - config %s, visibility %v", configPath, cfg.Visibility)

	return qnotebook.NewNotebook(cfg), nil
}

func report(out io.Writer, result *qnotebook.Result) {
	fmt.Fprint(out, result)

	if verbose {
		fmt.Fprint(out, dumper.Sdump(result))
	}
}

func checkPassed(results ...*qnotebook.Result) error {
	for _, result := range results {
		if !result.Passed {
			return fmt.Errorf("cell %s did not hold", result.Name)
		}
	}
	return nil
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().Float64Var(&visibility, "visibility", 0.8, "Visibility of the pure state in the mixed cell")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Dump raw results")

	rootCmd.AddCommand(
		allCmd,
		cellCmd("unitarity", "Check X·X† = X†·X = I"),
		cellCmd("norm", "Show that unitary evolution preserves the norm"),
		cellCmd("reverse", "Run a circuit and its inverse"),
		cellCmd("mixed", "Blend a Bell state with the maximally mixed state"),
		cellCmd("decohere", "Follow the coherence of |+⟩ as it decays"),
		cellCmd("boltzmann", "Tabulate thermal populations over temperature"),
	)
}
