package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"backup-pipeline/internal/s3"
	"backup-pipeline/internal/settings"
)

// Store is the object-store surface the backuper needs. *s3.Store satisfies it.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader) error
	Copy(ctx context.Context, srcKey, dstKey string) error
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]s3.Object, error)
	Delete(ctx context.Context, key string) error
}

// Options control a backup run.
type Options struct {
	// Overwrite replaces existing daily/monthly/yearly copies instead of
	// skipping them.
	Overwrite bool
	// DryRun logs every action without dumping, uploading or deleting.
	DryRun bool
}

// Backuper dumps each configured database, uploads the compressed dump under
// the hourly path and fans it out to the coarser retention paths, then prunes
// expired objects and writes a status summary to its output stream.
type Backuper struct {
	store     Store
	settings  *settings.Settings
	overwrite bool
	dryRun    bool
	now       time.Time

	// out receives the human-readable result lines; in the pipeline this is
	// stdout, which feeds the reporter.
	out io.Writer
}

// NewBackuper creates a Backuper writing its result lines to out.
func NewBackuper(store Store, s *settings.Settings, out io.Writer, opts Options) (*Backuper, error) {
	const op = "backup.NewBackuper"

	if store == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilStore)
	}
	if s == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilSettings)
	}

	return &Backuper{
		store:     store,
		settings:  s,
		overwrite: opts.Overwrite,
		dryRun:    opts.DryRun,
		now:       time.Now(),
		out:       out,
	}, nil
}

// Run performs a full backup pass: dump every connection, prune expired
// objects, report status. Per-connection failures do not stop the pass;
// they are joined into the returned error.
func (b *Backuper) Run(ctx context.Context) error {
	const op = "backup.Backuper.Run"

	conns, err := ParseConnections(b.settings.Databases)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var joinedErrs error
	created := make([]string, 0, len(conns))

	for _, conn := range conns {
		slog.Debug("dumping database", "host", conn.Host, "database", conn.Name)
		if err := b.backupConnection(ctx, conn); err != nil {
			joinedErrs = errors.Join(joinedErrs, fmt.Errorf("%s: %s/%s: %w", op, conn.Folder, conn.Name, err))
			continue
		}
		created = append(created, conn.Folder+"/"+conn.Name)
	}

	fmt.Fprintf(b.out, "Backups created for: %s\n", strings.Join(created, ", "))

	if err := b.houseKeeping(ctx); err != nil {
		joinedErrs = errors.Join(joinedErrs, err)
	}

	if err := b.reportStatus(ctx); err != nil {
		joinedErrs = errors.Join(joinedErrs, err)
	}

	return joinedErrs
}

// backupConnection creates and uploads the hourly dump for one connection,
// then copies it server-side to the daily/monthly/yearly keys.
func (b *Backuper) backupConnection(ctx context.Context, conn Connection) error {
	const op = "backup.Backuper.backupConnection"

	hourlyKey := Key(FrequencyHourly, conn.Folder, conn.Name, b.now)

	if !b.dryRun {
		if err := b.uploadDump(ctx, conn, hourlyKey); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	slog.Debug("dump uploaded", "key", hourlyKey, "dry_run", b.dryRun)

	for _, freq := range frequencies[1:] {
		key := Key(freq, conn.Folder, conn.Name, b.now)

		if !b.overwrite {
			exists, err := b.store.Exists(ctx, key)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			if exists {
				slog.Debug("copy already exists, skipping it", "key", key)
				continue
			}
		}

		slog.Debug("copying dump", "src", hourlyKey, "dst", key, "dry_run", b.dryRun)
		if !b.dryRun {
			if err := b.store.Copy(ctx, hourlyKey, key); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	return nil
}

// uploadDump dumps, compresses and uploads one connection under key.
func (b *Backuper) uploadDump(ctx context.Context, conn Connection, key string) error {
	const op = "backup.Backuper.uploadDump"

	dir, err := os.MkdirTemp("", "backuper-")
	if err != nil {
		return fmt.Errorf("%s: failed to create work dir: %w", op, err)
	}
	defer os.RemoveAll(dir)

	archivePath, err := createDumpArchive(ctx, conn, dir)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	archive, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("%s: failed to open archive: %w", op, err)
	}
	defer archive.Close()

	if err := b.store.Put(ctx, key, archive); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// houseKeeping deletes objects whose age exceeds their frequency's retention
// window. Yearly backups are never pruned. Everything under a pruned prefix
// is fair game, so nothing else must be stored there.
func (b *Backuper) houseKeeping(ctx context.Context) error {
	const op = "backup.Backuper.houseKeeping"

	windows := []struct {
		frequency string
		window    time.Duration
	}{
		{FrequencyHourly, time.Duration(b.settings.HoursToKeep()) * time.Hour},
		{FrequencyDaily, time.Duration(b.settings.DaysToKeep()) * 24 * time.Hour},
		{FrequencyMonthly, time.Duration(b.settings.MonthsToKeep()) * 30 * 24 * time.Hour},
	}

	var joinedErrs error

	for _, w := range windows {
		slog.Debug("inspecting backups", "frequency", w.frequency)

		objects, err := b.store.List(ctx, w.frequency+"/")
		if err != nil {
			joinedErrs = errors.Join(joinedErrs, fmt.Errorf("%s: %w", op, err))
			continue
		}

		for _, obj := range objects {
			if !expired(b.now, obj, w.window) {
				continue
			}

			slog.Info("deleting expired backup", "key", obj.Key, "last_modified", obj.LastModified, "dry_run", b.dryRun)
			if b.dryRun {
				continue
			}
			if err := b.store.Delete(ctx, obj.Key); err != nil {
				joinedErrs = errors.Join(joinedErrs, fmt.Errorf("%s: %w", op, err))
			}
		}
	}

	return joinedErrs
}

// expired reports whether an object's age exceeds the retention window.
func expired(now time.Time, obj s3.Object, window time.Duration) bool {
	return now.Sub(obj.LastModified) > window
}

// reportStatus writes a per-database summary of the surviving backups.
func (b *Backuper) reportStatus(ctx context.Context) error {
	const op = "backup.Backuper.reportStatus"

	objects, err := b.store.List(ctx, "")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	fmt.Fprintln(b.out, "# Status:")
	for _, line := range statusLines(objects) {
		fmt.Fprintln(b.out, line)
	}

	return nil
}

// statusLines groups dump objects by folder/database and summarizes each
// frequency's count and most recent object.
func statusLines(objects []s3.Object) []string {
	type bucket struct {
		counts map[string]int
		latest map[string]time.Time
	}

	groups := make(map[string]*bucket)
	for _, obj := range objects {
		parts, ok := ParseKey(obj.Key)
		if !ok {
			continue
		}

		name := parts.Folder + "/" + parts.Database
		g, ok := groups[name]
		if !ok {
			g = &bucket{counts: make(map[string]int), latest: make(map[string]time.Time)}
			groups[name] = g
		}

		g.counts[parts.Frequency]++
		if obj.LastModified.After(g.latest[parts.Frequency]) {
			g.latest[parts.Frequency] = obj.LastModified
		}
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		g := groups[name]
		fields := make([]string, 0, len(frequencies))
		for _, freq := range frequencies {
			if g.counts[freq] == 0 {
				continue
			}
			fields = append(fields, fmt.Sprintf("%s: %d (%s)",
				freq, g.counts[freq], g.latest[freq].Format(timestampLayouts[freq])))
		}
		lines = append(lines, name+" "+strings.Join(fields, " "))
	}

	return lines
}
