package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/config"
	"github.com/userddssilva/DevTitans-Hands-On-Final/pkg/litert"
)

// rootFlags holds the persistent flag values of one command tree.
type rootFlags struct {
	profilePath string
	binPath     string
	modelPath   string
	backend     string
	ldPath      string
	usePTY      bool
	verbose     bool
	logFile     string
	logLevel    string
}

// newRootCmd builds the base command and its subcommands with fresh flag state.
func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:   "litert",
		Short: "Interactive prompt runner for the LiteRT-LM litert_lm_main binary",
		Long: `litert reads prompts from the terminal and runs litert_lm_main once per
prompt, streaming its output and reporting non-zero exit codes.

Between prompts the binary, model, backend and LD_LIBRARY_PATH can be
changed with /bin, /model, /backend and /ld. Type /exit to quit.

Configuration is layered: defaults < --profile YAML < LITERT_* env < flags.

Examples:
  litert
  litert --backend cpu --model /data/local/tmp/gemma3-1b.litertlm
  litert -p device.yaml --log-file /data/local/tmp/litert.log
  litert check`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(cmd)
			if err != nil {
				return err
			}
			return litert.Run(cmd.Context(), runOptions(cfg))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&f.profilePath, "profile", "p", "", "YAML profile with startup settings (env: LITERT_PROFILE)")
	flags.StringVarP(&f.binPath, "bin", "b", "", "path to litert_lm_main (default "+config.DefaultExecutablePath+")")
	flags.StringVarP(&f.modelPath, "model", "m", "", "path to the .litertlm model (default "+config.DefaultModelPath+")")
	flags.StringVar(&f.backend, "backend", "", "initial backend: cpu or gpu (default "+config.DefaultBackend+")")
	flags.StringVar(&f.ldPath, "ld", "", "LD_LIBRARY_PATH for gpu runs (default "+config.DefaultLibraryPath+")")
	flags.BoolVar(&f.usePTY, "pty", false, "run the binary on a pseudo-terminal")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "mirror the log side channel to stderr")
	flags.StringVar(&f.logFile, "log-file", "", "append the log side channel to a file")
	flags.StringVar(&f.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(newCheckCmd(f))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// loadConfig layers command-line flags the operator actually set over
// config.Load.
func (f *rootFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.profilePath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("bin") {
		cfg.WithExecutable(f.binPath)
	}
	if flags.Changed("model") {
		cfg.WithModel(f.modelPath)
	}
	if flags.Changed("backend") {
		cfg.WithBackend(f.backend)
	}
	if flags.Changed("ld") {
		cfg.WithLibraryPath(f.ldPath)
	}
	if flags.Changed("pty") {
		cfg.WithPTY(f.usePTY)
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if flags.Changed("log-file") || flags.Changed("log-level") {
		cfg.WithLogging(cfg.Verbose, f.logFile, f.logLevel)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runOptions(cfg *config.Config) *litert.RunOptions {
	return &litert.RunOptions{
		ExecutablePath: cfg.ExecutablePath,
		ModelPath:      cfg.ModelPath,
		Backend:        cfg.Backend,
		LibraryPath:    cfg.LibraryPath,
		PTY:            cfg.PTY,
		Verbose:        cfg.Verbose,
		LogFile:        cfg.LogFile,
		LogLevel:       cfg.LogLevel,
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
