// Command awakens-sim runs a physics scenario headless and prints the state of
// every shape after each frame as one JSON line.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	physics "github.com/MonsterRestart/Fun-sub000"
	"github.com/MonsterRestart/Fun-sub000/transform"
	"github.com/MonsterRestart/Fun-sub000/vect"
)

type options struct {
	logLevel  string
	logFormat string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "awakens-sim",
		Short:         "Headless rigid body simulator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "text or json")

	root.AddCommand(newRunCmd(opts), newConfigCmd())
	return root
}

func newLogger(w io.Writer, opts *options) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	ho := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(opts.logFormat) {
	case "text":
		return slog.New(slog.NewTextHandler(w, ho)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, ho)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.logFormat)
	}
}

func newRunCmd(opts *options) *cobra.Command {
	var frames int
	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Step a TOML or YAML scenario and print every frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts)
			if err != nil {
				return err
			}
			sc, err := LoadScenario(args[0])
			if err != nil {
				return err
			}
			if frames > 0 {
				sc.Frames = frames
			}
			return run(cmd.OutOrStdout(), sc, logger)
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 0, "override the number of frames")
	return cmd
}

type shapeState struct {
	UID             physics.UID         `json:"uid"`
	Position        vect.Vect           `json:"position"`
	Orientation     vect.Float          `json:"orientation"`
	Velocity        vect.Vect           `json:"velocity"`
	AngularVelocity vect.Float          `json:"angular_velocity"`
	Transform       transform.Transform `json:"transform"`
}

type frameState struct {
	Frame     int          `json:"frame"`
	Collision bool         `json:"collision"`
	Shapes    []shapeState `json:"shapes"`
}

func run(w io.Writer, sc *Scenario, logger *slog.Logger) error {
	e, err := sc.Build(physics.WithLogger(logger))
	if err != nil {
		return err
	}
	defer e.Destroy()
	cfg := e.Config()
	logger.Debug("engine ready", "restitution", cfg.Restitution, "minSpeed", cfg.MinSpeed, "timeTolerance", cfg.TimeTolerance, "maxContacts", cfg.MaxContacts)

	enc := json.NewEncoder(w)
	for i := 0; i < sc.Frames; i++ {
		if err := e.Step(vect.Float(sc.DT)); err != nil {
			if !errors.Is(err, physics.ErrCapacityExceeded) {
				return err
			}
			logger.Warn("frame dropped contacts", "frame", i, "err", err)
		}

		st := frameState{Frame: e.StepCount(), Collision: e.AnyShapesInCollision()}
		for _, uid := range e.Shapes() {
			s := e.Shape(uid)
			st.Shapes = append(st.Shapes, shapeState{
				UID:             uid,
				Position:        s.Dynamics.Position,
				Orientation:     s.Dynamics.Orientation,
				Velocity:        s.Dynamics.Velocity,
				AngularVelocity: s.Dynamics.AngularVelocity,
				Transform:       s.Dynamics.Transform,
			})
		}
		if err := enc.Encode(st); err != nil {
			return err
		}
	}
	logger.Info("done", "frames", sc.Frames, "shapes", len(e.Shapes()), "lastStep", e.StepTime)
	return nil
}

func newConfigCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the default engine config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := physics.DefaultConfig()
			var data []byte
			var err error
			if asYAML {
				data, err = yaml.Marshal(cfg)
			} else {
				data, err = cfg.TOML()
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of TOML")
	return cmd
}
