package backup

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// dumpArgs builds the mysqldump invocation for a connection, writing the
// dump into resultFile.
func dumpArgs(conn Connection, resultFile string) []string {
	args := []string{"-h", conn.Host}
	if conn.Port != "" {
		args = append(args, "-P", conn.Port)
	}
	args = append(args,
		"-u", conn.User,
		"--password="+conn.Password,
		"--result-file="+resultFile,
		conn.Name,
	)
	return args
}

// createDumpArchive runs mysqldump for the connection and gzips the result,
// returning the path of the compressed archive inside dir. The caller owns
// dir's lifetime.
func createDumpArchive(ctx context.Context, conn Connection, dir string) (string, error) {
	const op = "backup.createDumpArchive"

	dumpFile, err := os.CreateTemp(dir, "dump-*.sql")
	if err != nil {
		return "", fmt.Errorf("%s: failed to create dump file: %w", op, err)
	}
	defer dumpFile.Close()

	cmd := exec.CommandContext(ctx, "mysqldump", dumpArgs(conn, dumpFile.Name())...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%s: mysqldump %s/%s: %w: %s", op, conn.Host, conn.Name, err, out)
	}

	archivePath, err := compressFile(dumpFile.Name(), dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return archivePath, nil
}

// compressFile gzips src into a new file inside dir and returns its path.
func compressFile(src, dir string) (string, error) {
	const op = "backup.compressFile"

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("%s: failed to open %s: %w", op, src, err)
	}
	defer in.Close()

	out, err := os.CreateTemp(dir, "dump-*.sql.gz")
	if err != nil {
		return "", fmt.Errorf("%s: failed to create archive: %w", op, err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		return "", fmt.Errorf("%s: failed to compress %s: %w", op, src, err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("%s: failed to finish archive: %w", op, err)
	}

	return out.Name(), nil
}
