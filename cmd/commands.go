package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	xlogrus "github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/char5742/stylus-zoom/internal/area"
	"github.com/char5742/stylus-zoom/internal/config"
	"github.com/char5742/stylus-zoom/internal/features"
	"github.com/char5742/stylus-zoom/internal/xsetwacom"
)

// runnerFactory は設定されたコマンド文字列から Runner を作る関数の型
type runnerFactory func(command string) (xsetwacom.Runner, error)

// options はコマンドラインで指定された値をまとめたもの
type options struct {
	configPath string
	command    string
	wait       time.Duration
	logLevel   logger.Level
	reset      bool
	force      bool
}

// app は1回の実行で使う設定とタブレット操作をまとめたもの
type app struct {
	cfg    *config.Config
	tablet *features.Tablet
}

func newRootCommand(stdout, stderr io.Writer, newRunner runnerFactory) *cobra.Command {
	opts := &options{logLevel: logger.LevelWarning}

	root := &cobra.Command{
		Use:           "stylus-zoom",
		Short:         "Zooms the Wacom stylus area to a corner of the tablet.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ll := xlogrus.DefaultLogrusLogger()
			ll.Out = stderr
			ll.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
			l := xlogrus.New(ll).WithLevel(opts.logLevel)

			ctx := logger.CtxWithLogger(cmd.Context(), l)
			cmd.SetContext(ctx)
			logger.Debugf(ctx, "log-level: %v", opts.logLevel)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to the config file (default: $XDG_CONFIG_HOME/stylus-zoom/config.toml)")
	flags.StringVar(&opts.command, "command", "", "device configuration command (default: xsetwacom)")
	flags.DurationVar(&opts.wait, "wait", 0, "wait up to this long for the stylus device to be plugged in")
	flags.Var(&opts.logLevel, "log-level", "logging level")

	zoom := &cobra.Command{
		Use:       "zoom <br|bl|tr|tl>",
		Short:     "Zoom the stylus area to a corner of the screen.",
		Long:      "Zoom the stylus area to a corner of the screen. Corners: br (bottom right), bl (bottom left), tr (top right), tl (top left).",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: cornerArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			corner, err := area.ParseCorner(args[0])
			if err != nil {
				return err
			}
			a, id, err := prepare(cmd, opts, newRunner)
			if err != nil {
				return err
			}
			_, err = a.tablet.Zoom(cmd.Context(), id, corner, opts.reset)
			return err
		},
	}
	zoom.Flags().BoolVar(&opts.reset, "reset", false, "reset the stylus area to the default before zooming")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Reset the stylus area to the default.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := prepare(cmd, opts, newRunner)
			if err != nil {
				return err
			}
			return a.tablet.Reset(cmd.Context(), id)
		},
	}

	showArea := &cobra.Command{
		Use:   "area",
		Short: "Print the current stylus area.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := prepare(cmd, opts, newRunner)
			if err != nil {
				return err
			}
			r, err := a.tablet.Area(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %d %d %d\n", r.X1, r.Y1, r.X2, r.Y2)
			return nil
		},
	}

	devices := &cobra.Command{
		Use:   "devices",
		Short: "List the input devices known to the configuration tool.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Flags(), opts, newRunner, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			list, stylusID, err := a.tablet.Devices(cmd.Context())
			if err != nil {
				return err
			}
			for _, dev := range list {
				mark := " "
				if dev.ID == stylusID {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %4s  %-8s %s\n", mark, dev.ID, dev.Type, dev.Name)
			}
			return nil
		},
	}

	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file.",
	}
	cfgShow := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}
			return cfg.WriteTo(cmd.OutOrStdout())
		},
	}
	cfgInit := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(opts)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !opts.force {
				return fmt.Errorf("the config file '%s' already exists (use --force to overwrite)", path)
			}
			if err := config.SaveConfig(path, config.DefaultConfig()); err != nil {
				return fmt.Errorf("unable to save the config to '%s': %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "設定ファイルを作成しました: %s\n", path)
			return nil
		},
	}
	cfgInit.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing config file")
	cfgCmd.AddCommand(cfgShow, cfgInit)

	root.AddCommand(zoom, reset, showArea, devices, cfgCmd)
	return root
}

func cornerArgs() []string {
	args := make([]string, 0, len(area.Corners))
	for _, c := range area.Corners {
		args = append(args, c.Short())
	}
	return args
}

func configPath(opts *options) (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return config.GetDefaultConfigPath()
}

// loadConfig は設定ファイルを読み込み、コマンドライン引数で上書きする
func loadConfig(flags *pflag.FlagSet, opts *options) (*config.Config, error) {
	path, err := configPath(opts)
	if err != nil {
		return nil, fmt.Errorf("unable to determine the config path: %w", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load the config '%s': %w", path, err)
	}

	if flags.Changed("command") {
		cfg.Tool.Command = opts.command
	}
	if flags.Changed("wait") {
		cfg.Hotplug.Wait = opts.wait
	}
	return cfg, nil
}

func newApp(flags *pflag.FlagSet, opts *options, newRunner runnerFactory, out io.Writer) (*app, error) {
	cfg, err := loadConfig(flags, opts)
	if err != nil {
		return nil, err
	}

	runner, err := newRunner(cfg.Tool.Command)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		tablet: features.NewTablet(xsetwacom.NewClient(runner), cfg.Device.Marker, out),
	}, nil
}

// prepare は設定を読み込み、スタイラスを探す
func prepare(cmd *cobra.Command, opts *options, newRunner runnerFactory) (*app, string, error) {
	a, err := newApp(cmd.Flags(), opts, newRunner, cmd.OutOrStdout())
	if err != nil {
		return nil, "", err
	}

	id, err := features.WaitForDevice(cmd.Context(), a.cfg.Hotplug, a.tablet.Locate)
	if err != nil {
		return nil, "", err
	}
	return a, id, nil
}
