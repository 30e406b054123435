package main

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tilewave/config"
	"github.com/katalvlaran/tilewave/render"
)

// watchDebounce groups the bursts of events editors emit on save.
const watchDebounce = 200 * time.Millisecond

// watch generates once, then again after every change to the example or
// config file, until the command context is cancelled. Failed regenerations
// are logged and do not stop the loop.
func (a *app) watch(cmd *cobra.Command, load func() (config.Run, error), configPath string,
	mode render.ColorMode, metricsFile string) error {
	run, err := load()
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Directories are watched so that files replaced by rename are still seen.
	targets := map[string]bool{}
	for _, p := range []string{run.Example, configPath} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		if err = w.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}

	regenerate := func() {
		run, err := load()
		if err == nil {
			err = a.generate(cmd, run, mode, metricsFile)
		}
		if err != nil {
			a.log.Error("regeneration failed", slog.Any("error", err))
		}
	}
	regenerate()

	ctx := cmd.Context()
	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(ev.Name)
			if !targets[abs] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watch error", slog.Any("error", err))

		case <-fire:
			a.log.Info("input changed, regenerating")
			regenerate()
		}
	}
}
