package main

import (
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounce window for editors that write descriptor sets in several
// syscalls.
const watchSettle = 200 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the descriptor set changes",
	RunE:  runWatch,
}

func init() {
	addGenerateFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := runGenerate(cmd, args); err != nil {
		logger.Error().Err(err).Msg("initial generation failed")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(flagDescriptorSet); err != nil {
		return err
	}
	logger.Info().Str("path", flagDescriptorSet).Msg("watching")

	var settle *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if settle != nil {
				settle.Stop()
			}
			settle = time.AfterFunc(watchSettle, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watch error")
		case <-pending:
			logger.Info().Msg("descriptor set changed, regenerating")
			if err := runGenerate(cmd, args); err != nil {
				logger.Error().Err(err).Msg("generation failed")
			}
			// Some build tools replace the file, which drops the watch.
			watcher.Add(flagDescriptorSet)
		}
	}
}
