package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/tui"
	"github.com/sheikhrachel/go-life/utils"
)

const usage = `Usage: go-life [flags] [width height [pattern.rle|rand]]

Keys: q quit, s save BMP snapshot, space pause, n step while paused, r reseed.

`

// parseArgs builds the configuration from defaults, an optional -config JSON
// file, flags and the positional width/height/pattern arguments, in that order
func parseArgs(args []string, output io.Writer) (utils.Config, error) {
	newFlagSet := func(config *utils.Config, configPath *string) *flag.FlagSet {
		fs := flag.NewFlagSet("go-life", flag.ContinueOnError)
		fs.SetOutput(output)
		fs.Usage = func() {
			fmt.Fprint(output, usage)
			fs.PrintDefaults()
		}
		fs.StringVar(configPath, "config", *configPath, "JSON configuration file")
		config.Bind(fs)
		return fs
	}

	var (
		config     = utils.DefaultConfig()
		configPath string
	)
	fs := newFlagSet(&config, &configPath)
	if err := fs.Parse(args); err != nil {
		return config, err
	}

	if configPath != "" {
		loaded, err := utils.LoadConfig(configPath)
		if err != nil {
			return config, err
		}
		config = loaded
		fs = newFlagSet(&config, &configPath)
		if err = fs.Parse(args); err != nil {
			return config, err
		}
	}

	if err := applyPositional(&config, fs.Args()); err != nil {
		return config, err
	}
	return config, config.Validate()
}

// applyPositional handles the short form: width height [pattern|rand]
func applyPositional(config *utils.Config, rest []string) error {
	if len(rest) == 0 {
		return nil
	}
	if len(rest) < 2 || len(rest) > 3 {
		return errors.Errorf("[applyPositional] expected width height [pattern|rand], got %d arguments", len(rest))
	}

	width, err := strconv.Atoi(rest[0])
	if err != nil {
		return errors.Wrapf(err, "[applyPositional] bad width: %+v", rest[0])
	}
	height, err := strconv.Atoi(rest[1])
	if err != nil {
		return errors.Wrapf(err, "[applyPositional] bad height: %+v", rest[1])
	}
	config.Width, config.Height = width, height

	if len(rest) == 3 {
		if rest[2] == "rand" {
			config.Pattern = ""
		} else {
			config.Pattern = rest[2]
		}
	}
	return nil
}

func run(ctx context.Context, config utils.Config) error {
	logFile, err := utils.SetupLogging(config.Debug, config.LogFile)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	g, err := initializeGame(config)
	if err != nil {
		return err
	}

	switch {
	case config.Headless:
		return runHeadless(ctx, g, model.NewTerminalRenderer(os.Stdout))
	case config.Window:
		return runWindow(g)
	}

	driver, err := tui.New(g, config.FrameRate)
	if err != nil {
		return err
	}
	if err = driver.Run(ctx); err != nil {
		return err
	}
	log.Printf("stopped after %d generations in %.1fs, average population %.1f",
		g.generation, g.stats.Runtime().Seconds(), g.stats.AveragePopulation)
	return nil
}

func main() {
	config, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, config); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
