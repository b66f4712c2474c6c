// Package cli implements the linguabird command line: offline rendering of
// word lists and inspection of the registered directions.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"linguabird/internal/audio"
	"linguabird/internal/config"
	"linguabird/internal/domain"
	"linguabird/internal/service"
	"linguabird/internal/settings"
	"linguabird/internal/speech"
)

// cliUser is the settings key used for command line renders
const cliUser int64 = 0

// Factory builds the assembler used by the render command.
// wav selects uncompressed output instead of MP3.
type Factory func(cfg *config.Config, dirs *domain.Directions, wav bool, logger *zap.Logger) (service.Assembler, error)

// DefaultFactory wires the configured speech provider, the MP3 decoder and
// an ffmpeg (or WAV) exporter.
func DefaultFactory(cfg *config.Config, dirs *domain.Directions, wav bool, logger *zap.Logger) (service.Assembler, error) {
	synth, err := speech.New(cfg.TTS, logger)
	if err != nil {
		return nil, err
	}

	var exporter audio.Exporter
	if wav {
		exporter = &audio.WAVExporter{}
	} else {
		ff := audio.NewFFmpegExporter(cfg.Audio.FFmpegPath, cfg.Audio.Bitrate)
		if err := ff.CheckInstalled(); err != nil {
			return nil, err
		}
		exporter = ff
	}

	return audio.NewAssembler(synth, audio.MP3Decoder{}, exporter, dirs, logger), nil
}

type rootOptions struct {
	directionsFile string
}

// NewRootCommand builds the linguabird command tree
func NewRootCommand(build Factory) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "linguabird",
		Short: "Turn word lists into spoken vocabulary audio",
		Long: `Turn word lists into spoken vocabulary audio.

Every line of the input is a pair such as "apple - яблоко". The source word
is spoken several times, then its translation once, with pauses in between.

Configuration is read from the environment (and .env), the same way the bot
reads it: TTS_PROVIDER, OPENAI_API_KEY, FFMPEG_PATH, DIRECTIONS_FILE, ...`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.directionsFile, "directions-file", "",
		"TOML file with extra [[direction]] profiles (default $DIRECTIONS_FILE)")

	root.AddCommand(newRenderCommand(opts, build))
	root.AddCommand(newDirectionsCommand(opts))
	return root
}

// loadDirections resolves the directions file from the flag or the environment
func (o *rootOptions) loadDirections(cfg *config.Config) (*domain.Directions, error) {
	path := o.directionsFile
	if path == "" {
		path = cfg.DirectionsFile
	}
	return config.LoadDirections(path)
}

type renderOptions struct {
	input     string
	output    string
	direction string
	repeat    int
	pause     int
}

func newRenderCommand(root *rootOptions, build Factory) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a word list file to audio",
		Long: `Render a word list file to audio.

Use "-" as input to read from stdin and as output to write to stdout.
An output ending in .wav is written as WAV and does not need ffmpeg.

Example:
  linguabird render -i words.txt -o words.mp3 --direction en-uk --repeat 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts, build)
		},
	}

	defaults := domain.DefaultSettings()
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "word list file, - for stdin (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (required)")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", string(defaults.Direction), "translation direction code")
	cmd.Flags().IntVarP(&opts.repeat, "repeat", "r", defaults.RepeatCount, "times each source word is spoken")
	cmd.Flags().IntVarP(&opts.pause, "pause", "p", defaults.PauseMs, "short pause in milliseconds")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions, build Factory) error {
	cfg, err := config.LoadRender()
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	dirs, err := root.loadDirections(cfg)
	if err != nil {
		return err
	}
	if _, err := dirs.Lookup(domain.Direction(opts.direction)); err != nil {
		return err
	}

	text, err := readInput(cmd.InOrStdin(), opts.input)
	if err != nil {
		return err
	}

	store, err := settings.NewStore(1)
	if err != nil {
		return err
	}
	store.SetDirection(cliUser, domain.Direction(opts.direction))
	store.SetRepeatCount(cliUser, opts.repeat)
	store.SetPause(cliUser, opts.pause)

	asm, err := build(cfg, dirs, strings.HasSuffix(strings.ToLower(opts.output), ".wav"), logger)
	if err != nil {
		return err
	}

	svc := service.NewRenderService(asm, store, dirs, nil, cfg.RenderTimeout, logger)
	r, err := svc.Render(cmd.Context(), cliUser, text)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), opts.output, r.Audio); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %d pairs (%s, %d×, %dms) to %s\n",
		len(r.Pairs), r.Profile.Code, r.Settings.RepeatCount, r.Settings.PauseMs, opts.output)
	return nil
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func newDirectionsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "directions",
		Short: "List the registered translation directions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadRender()
			if err != nil {
				return err
			}
			dirs, err := root.loadDirections(cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tLANGUAGES\tFILE")
			for _, p := range dirs.All() {
				fmt.Fprintf(w, "%s\t%s\t%s → %s\t%s\n", p.Code, p.DisplayName(cfg.UIFlags), p.Source, p.Target, p.FileName())
			}
			return w.Flush()
		},
	}
}
