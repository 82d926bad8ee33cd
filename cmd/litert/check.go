package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/userddssilva/DevTitans-Hands-On-Final/pkg/litert"
)

// newCheckCmd runs the startup sanity check on its own
func newCheckCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether the configured binary and model exist",
		Long: `Check prints the same advisory report shown when the prompt loop starts:
missing binary or model files and, for the gpu backend, the LD_LIBRARY_PATH
that will be exported. It always exits 0 when the configuration is valid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := cfg.Session()
			if err != nil {
				return err
			}
			opts := runOptions(cfg)
			opts.Output = cmd.OutOrStdout()
			if err := litert.Check(opts); err != nil {
				return err
			}
			snap := s.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "bin=%s model=%s backend=%s ld=%s\n",
				snap.ExecutablePath, snap.ModelPath, snap.Backend, snap.LibraryPath)
			return nil
		},
	}
}

// newVersionCmd prints the version
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the litert version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "litert %s\n", litert.Version)
		},
	}
}
