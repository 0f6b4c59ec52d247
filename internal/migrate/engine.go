package migrate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/modshift/modshift/internal/constants"
	"github.com/modshift/modshift/internal/diskspace"
	"github.com/modshift/modshift/internal/events"
	"github.com/modshift/modshift/internal/format"
	"github.com/modshift/modshift/internal/logging"
	"github.com/modshift/modshift/internal/progress"
)

// Engine orchestrates migrations between two instances and feeds
// progress payloads to whichever front end is attached.
type Engine struct {
	logger   *logging.Logger
	eventBus *events.EventBus
}

// Summary describes a finished migration.
type Summary struct {
	Mods    int64
	Files   int64
	Bytes   int64
	Elapsed time.Duration
}

// NewEngine creates a new engine instance.
func NewEngine(logger *logging.Logger) *Engine {
	return &Engine{
		logger:   logger,
		eventBus: events.NewEventBus(constants.EventBusDefaultBuffer),
	}
}

// Events returns the engine's event bus.
func (e *Engine) Events() *events.EventBus {
	return e.eventBus
}

// Migrate copies every mod of src into dst, reporting through sink.
// The payloads carry overall bytes on the primary indicator, the mod
// counter ("name (i/n)") on the secondary text, and per-file lines on
// the tertiary text, which is what the loading dialog expects.
func (e *Engine) Migrate(ctx context.Context, src, dst *Instance, sink progress.Sink) (*Summary, error) {
	if sink == nil {
		sink = progress.NoOpSink{}
	}

	start := time.Now()

	sink.UpdateProgress(progress.Update{
		Text1: progress.Ptr("Scanning source instance..."),
	})

	mods, err := src.Mods()
	if err != nil {
		return nil, err
	}
	if len(mods) == 0 {
		return nil, fmt.Errorf("no mods found in %s", src.Root)
	}

	totalBytes := TotalSize(mods)

	if err := diskspace.CheckAvailableSpace(dst.Root, totalBytes, constants.DiskSpaceSafetyMargin); err != nil {
		return nil, err
	}

	e.logger.Info().
		Int("mods", len(mods)).
		Str("size", format.Bytes(totalBytes)).
		Str("source", src.Root).
		Str("destination", dst.Root).
		Msg("Starting migration")
	e.eventBus.PublishLog(events.InfoLevel, fmt.Sprintf("Migrating %d %s (%s)",
		len(mods), format.Pluralize("mod", int64(len(mods))), format.Bytes(totalBytes)), "migrate", nil)

	summary := &Summary{Mods: int64(len(mods))}
	var copied int64

	for i, mod := range mods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sink.UpdateProgress(progress.Update{
			Text1:  progress.Ptr("Migrating mods..."),
			Value1: progress.Ptr(copied),
			Max1:   progress.Ptr(totalBytes),
			Text2:  progress.Ptr(fmt.Sprintf("%s (%d/%d)", mod.Name, i+1, len(mods))),
			Value2: progress.Ptr(int64(i)),
			Max2:   progress.Ptr(int64(len(mods))),
		})

		modBytes, files, err := e.copyMod(ctx, mod, filepath.Join(dst.Root, mod.Name), copied, totalBytes, sink)
		copied += modBytes
		summary.Files += files
		summary.Bytes += modBytes
		if err != nil {
			return nil, fmt.Errorf("failed to migrate mod %s: %w", mod.Name, err)
		}
	}

	summary.Elapsed = time.Since(start)

	sink.UpdateProgress(progress.Update{
		Text1:  progress.Ptr("Migration complete"),
		Value1: progress.Ptr(copied),
		Max1:   progress.Ptr(totalBytes),
		Text2:  progress.Ptr(fmt.Sprintf("%s (%d/%d)", "All mods migrated", len(mods), len(mods))),
	})

	e.logger.Info().
		Int64("files", summary.Files).
		Str("size", format.Bytes(summary.Bytes)).
		Str("elapsed", format.Clock(summary.Elapsed)).
		Msg("Migration finished")
	e.eventBus.PublishLog(events.InfoLevel, fmt.Sprintf("Migrated %d %s (%s) in %s",
		summary.Files, format.Pluralize("file", summary.Files),
		format.Bytes(summary.Bytes), format.Clock(summary.Elapsed)), "migrate", nil)

	return summary, nil
}

// copyMod copies one mod tree, bumping the primary indicator as bytes land.
func (e *Engine) copyMod(ctx context.Context, mod Mod, dstRoot string, baseBytes, totalBytes int64, sink progress.Sink) (int64, int64, error) {
	var modBytes, files int64

	err := filepath.Walk(mod.Path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		rel, err := filepath.Rel(mod.Path, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dstRoot, rel)

		if info.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		if err := copyFile(path, target, info.Mode()); err != nil {
			return err
		}

		modBytes += info.Size()
		files++

		sink.UpdateProgress(progress.Update{
			Value1: progress.Ptr(baseBytes + modBytes),
			Max1:   progress.Ptr(totalBytes),
			Text3:  progress.Ptr(fmt.Sprintf("Copied %s/%s (%s)", mod.Name, rel, format.Bytes(info.Size()))),
		})
		return nil
	})

	return modBytes, files, err
}

func copyFile(src, dst string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	buf := make([]byte, constants.CopyBufferSize)
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
