// Package main runs the overtype text delivery tool.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/frudas24/overtype/internal/app"
	"github.com/frudas24/overtype/internal/config"
	"github.com/frudas24/overtype/internal/delivery"
	"github.com/frudas24/overtype/internal/diag"
	"github.com/frudas24/overtype/internal/presets"
	"github.com/frudas24/overtype/internal/session"
	"github.com/frudas24/overtype/internal/target"
	"github.com/frudas24/overtype/internal/uia"
	"github.com/frudas24/overtype/internal/window"
	"github.com/frudas24/overtype/internal/wininput"
)

// options holds the command line flags.
type options struct {
	file    string
	text    string
	speed   float64
	mistake float64
	preset  string
	keep    bool
	debug   bool

	listPresets bool
	savePreset  string
}

// run wires the application and blocks until the delivery ends or the user quits.
func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	diag.SetDebug(opts.debug)
	if diag.Debug() {
		log.Printf("debug: enabled")
	}
	logStartup(cfg)

	set, err := presets.Load(cfg.PresetsPath)
	if err != nil {
		return err
	}
	if opts.listPresets {
		for _, line := range describePresets(set) {
			log.Printf("preset %s", line)
		}
		return nil
	}
	params, err := resolveParams(cfg, set, opts)
	if err != nil {
		return err
	}
	if opts.savePreset != "" {
		if err := savePreset(cfg.PresetsPath, set, opts.savePreset, params); err != nil {
			return err
		}
		log.Printf("presets: saved %q to %s", opts.savePreset, cfg.PresetsPath)
		return nil
	}
	log.Printf("params: %.0f chars/s, %.0f%% mistakes", params.SpeedCharsPerSecond, params.MistakePercent)

	text, err := readText(opts)
	if err != nil {
		return err
	}

	injector, err := wininput.NewInjector()
	if err != nil {
		return err
	}
	tracker, err := window.NewTracker()
	if err != nil {
		return err
	}
	attacher, err := uia.NewAttacher()
	if err != nil {
		return err
	}
	prober, err := target.NewProber(attacher, tracker)
	if err != nil {
		return err
	}
	automaton, err := delivery.New(injector, tracker, delivery.Options{
		PausePoll: cfg.PausePoll(),
		FocusPoll: cfg.FocusPoll(),
		Settle:    cfg.Settle(),
	})
	if err != nil {
		return err
	}

	sess := session.New(params)
	sess.SetText(text)
	appInstance, err := app.New(sess, tracker, prober, automaton, cfg.StopWait(), logStatus)
	if err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("capture: focus the target window, capturing in %s", cfg.CaptureDelay())
	select {
	case <-ctx.Done():
		return nil
	case <-time.After(cfg.CaptureDelay()):
	}
	if _, err := appInstance.Capture(); err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}
	log.Printf("commands: p = pause/resume, s = stop, c = recapture, r = restart, q = quit")

	commands := readCommands(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			appInstance.Stop()
			return nil
		case out := <-appInstance.Outcomes():
			log.Printf("run: %s", out)
			if !opts.keep {
				return outcomeErr(out)
			}
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			if quit := dispatch(appInstance, cmd); quit {
				return nil
			}
		}
	}
}

// dispatch applies one operator command and reports whether to quit.
func dispatch(a *app.App, cmd string) bool {
	switch cmd {
	case "p":
		a.TogglePause()
	case "s":
		a.Stop()
	case "c":
		if _, err := a.Capture(); err != nil {
			log.Printf("capture: %v", err)
		}
	case "r":
		if err := a.Start(); err != nil {
			log.Printf("start: %v", err)
		}
	case "q":
		a.Stop()
		return true
	case "":
	default:
		log.Printf("commands: unknown %q", cmd)
	}
	return false
}

// readCommands streams trimmed stdin lines until EOF.
func readCommands(r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			out <- strings.ToLower(strings.TrimSpace(scanner.Text()))
		}
	}()
	return out
}

// readText returns the text to deliver from -file or -text.
func readText(opts options) (string, error) {
	if opts.file == "" {
		return opts.text, nil
	}
	data, err := os.ReadFile(opts.file)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return string(data), nil
}

// resolveParams layers flags over the preset over configured defaults.
func resolveParams(cfg config.Config, set presets.Set, opts options) (delivery.Params, error) {
	params := delivery.Params{
		SpeedCharsPerSecond: float64(cfg.DefaultSpeed),
		MistakePercent:      float64(cfg.DefaultMistake),
	}
	if opts.preset != "" {
		p, err := set.Lookup(opts.preset)
		if err != nil {
			return delivery.Params{}, err
		}
		params.SpeedCharsPerSecond = float64(p.Speed)
		params.MistakePercent = float64(p.Mistake)
	}
	if opts.speed > 0 {
		params.SpeedCharsPerSecond = opts.speed
	}
	if opts.mistake >= 0 {
		params.MistakePercent = opts.mistake
	}
	if err := params.Validate(); err != nil {
		return delivery.Params{}, err
	}
	return params, nil
}

// describePresets formats each preset in name order.
func describePresets(set presets.Set) []string {
	names := set.Names()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		p := set[name]
		lines = append(lines, fmt.Sprintf("%s: %d chars/s, %d%% mistakes", name, p.Speed, p.Mistake))
	}
	return lines
}

// savePreset stores params under name, replacing any preset with that name.
func savePreset(path string, set presets.Set, name string, params delivery.Params) error {
	p := presets.Preset{
		Speed:   int(math.Round(params.SpeedCharsPerSecond)),
		Mistake: int(math.Round(params.MistakePercent)),
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}
	next := presets.Set{}
	for k, v := range set {
		next[k] = v
	}
	next[name] = p
	return presets.Save(path, next)
}

// outcomeErr maps a run outcome to the process result.
func outcomeErr(out delivery.Outcome) error {
	switch out {
	case delivery.OutcomeFinished, delivery.OutcomeStopped:
		return nil
	default:
		return errors.New("delivery " + out.String())
	}
}

// logStatus prints operator status lines.
func logStatus(line string) {
	log.Printf("status: %s", line)
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	log.Printf("fatal: %v", err)
	os.Exit(1)
}

// logStartup prints startup checks.
func logStartup(cfg config.Config) {
	log.Printf("overtype starting")
	logEnvStatus(cfg)
	logPresetsStatus(cfg.PresetsPath)
}

// logEnvStatus reports whether a .env file was found.
func logEnvStatus(cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		log.Printf("env check: ok (%s)", envPath)
	} else {
		log.Printf("env check: missing (%s)", envPath)
	}
}

// logPresetsStatus reports whether the presets file exists.
func logPresetsStatus(path string) {
	if fileExists(path) {
		log.Printf("presets check: ok (%s)", path)
		return
	}
	log.Printf("presets check: none (%s)", path)
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
