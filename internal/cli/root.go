// Package cli implements fileverify command-line parsing and execution.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"fileverify/internal/config"
	apperrors "fileverify/internal/errors"
	"fileverify/internal/hash"
	"fileverify/internal/logging"
	"fileverify/internal/progress"
	"fileverify/internal/verify"
)

// RootCommand handles argument parsing for the fileverify CLI.
type RootCommand struct {
	out    io.Writer
	errOut io.Writer
	args   []string

	loadConfig func() (*config.Config, error)
	stat       func(string) (os.FileInfo, error)
	hashFile   func(string, hash.Algorithm, hash.Options) (hash.Digest, error)
}

type options struct {
	path      string
	algorithm hash.Algorithm
	compare   string
	chunkSize int
	maxRate   int
	progress  bool
	logLevel  slog.Level
}

// NewRootCommand creates the fileverify root command. Log lines go to errOut.
func NewRootCommand(out io.Writer, errOut io.Writer) *RootCommand {
	return &RootCommand{
		out:        out,
		errOut:     errOut,
		loadConfig: config.Load,
		stat:       os.Stat,
		hashFile:   hash.File,
	}
}

// SetArgs sets command arguments.
func (r *RootCommand) SetArgs(args []string) { r.args = args }

// Execute parses arguments and runs the verification.
func (r *RootCommand) Execute() error {
	fv, err := parseFlags(r.args)
	if errors.Is(err, flag.ErrHelp) {
		return r.printHelp()
	}
	if err != nil {
		return err
	}
	if fv.version {
		return writeVersion(r.out)
	}
	// An explicit algorithm is checked before config touches the filesystem.
	if fv.set["algorithm"] {
		if _, err := hash.ParseAlgorithm(fv.algorithm); err != nil {
			return fmt.Errorf("parse --algorithm: %w", err)
		}
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w: %w", err, apperrors.ErrUsage)
	}
	opts, err := resolveOptions(fv, cfg)
	if err != nil {
		return err
	}

	return r.run(logging.New(r.errOut, opts.logLevel), opts)
}

// flagValues holds raw command-line values before config defaults apply.
type flagValues struct {
	algorithm  string
	compare    string
	chunkSize  int
	maxRate    int
	logLevel   string
	progress   bool
	version    bool
	positional []string
	set        map[string]bool
}

var flagAliases = map[string]string{"a": "algorithm", "c": "compare_hash"}

func parseFlags(args []string) (flagValues, error) {
	var fv flagValues
	fs := flag.NewFlagSet("fileverify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&fv.algorithm, "algorithm", "", "hash algorithm")
	fs.StringVar(&fv.algorithm, "a", "", "hash algorithm")
	fs.StringVar(&fv.compare, "compare_hash", "", "expected hash value")
	fs.StringVar(&fv.compare, "c", "", "expected hash value")
	fs.IntVar(&fv.chunkSize, "chunk-size", 0, "read chunk size in bytes")
	fs.IntVar(&fv.maxRate, "max-rate", 0, "read rate limit in bytes per second")
	fs.BoolVar(&fv.progress, "progress", false, "print hashing progress")
	fs.StringVar(&fv.logLevel, "log-level", "", "log level")
	fs.BoolVar(&fv.version, "version", false, "print version information")

	// Flags may follow the positional argument, so parse until args are exhausted.
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return flagValues{}, err
			}
			return flagValues{}, fmt.Errorf("parse flags: %w: %w", err, apperrors.ErrUsage)
		}
		// "--" is never a valid flag value; treating it as one would swallow the terminator.
		if fv.compare == "--" {
			return flagValues{}, fmt.Errorf("parse flags: flag needs an argument: -c: %w", apperrors.ErrUsage)
		}
		consumed := len(args) - fs.NArg()
		rest := fs.Args()
		if consumed > 0 && args[consumed-1] == "--" {
			fv.positional = append(fv.positional, rest...)
			break
		}
		if len(rest) == 0 {
			break
		}
		fv.positional = append(fv.positional, rest[0])
		args = rest[1:]
	}

	fv.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := flagAliases[name]; ok {
			name = long
		}
		fv.set[name] = true
	})
	return fv, nil
}

// resolveOptions applies config defaults to flags the user did not set and validates the result.
func resolveOptions(fv flagValues, cfg *config.Config) (options, error) {
	algorithm, chunkSize, maxRate, logLevel := cfg.Algorithm, cfg.ChunkSize, cfg.MaxRate, cfg.LogLevel
	if fv.set["algorithm"] {
		algorithm = fv.algorithm
	}
	if fv.set["chunk-size"] {
		chunkSize = fv.chunkSize
	}
	if fv.set["max-rate"] {
		maxRate = fv.maxRate
	}
	if fv.set["log-level"] {
		logLevel = fv.logLevel
	}

	opts := options{compare: fv.compare, progress: fv.progress}
	alg, err := hash.ParseAlgorithm(algorithm)
	if err != nil {
		return options{}, fmt.Errorf("parse --algorithm: %w", err)
	}
	opts.algorithm = alg

	if chunkSize <= 0 {
		return options{}, fmt.Errorf("--chunk-size must be greater than zero: %w", apperrors.ErrUsage)
	}
	opts.chunkSize = chunkSize
	if maxRate < 0 {
		return options{}, fmt.Errorf("--max-rate must not be negative: %w", apperrors.ErrUsage)
	}
	opts.maxRate = maxRate

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return options{}, fmt.Errorf("parse --log-level: %w: %w", err, apperrors.ErrUsage)
	}
	opts.logLevel = level

	if len(fv.positional) != 1 {
		return options{}, fmt.Errorf("expected exactly one file path argument, got %d: %w", len(fv.positional), apperrors.ErrUsage)
	}
	opts.path = filepath.Clean(fv.positional[0])
	return opts, nil
}

func (r *RootCommand) run(logger *slog.Logger, opts options) error {
	info, err := r.stat(opts.path)
	if err != nil {
		return fmt.Errorf("the file %q does not exist: %w: %w", opts.path, err, apperrors.ErrPathNotFound)
	}
	if info.IsDir() {
		return fmt.Errorf("%q is a directory, not a file: %w", opts.path, apperrors.ErrPathNotFound)
	}

	size := uint64(info.Size())
	hashOpts := hash.Options{ChunkSize: opts.chunkSize, BytesPerSecond: opts.maxRate}
	var reporter *progress.Reporter
	if opts.progress {
		reporter = progress.NewReporter(r.errOut, opts.algorithm.String(), size)
		hashOpts.Progress = reporter.Update
	}

	logger.Debug("hashing file", "path", opts.path, "algorithm", opts.algorithm, "chunk_size", opts.chunkSize, "max_rate", opts.maxRate)
	digest, err := r.hashFile(opts.path, opts.algorithm, hashOpts)
	if err != nil {
		if reporter != nil {
			reporter.Abort()
		}
		return fmt.Errorf("calculate %s hash: %w", opts.algorithm, err)
	}
	if reporter != nil {
		reporter.Done(size)
	}

	logger.Info("calculated hash", "algorithm", opts.algorithm, "path", opts.path, "hash", digest, "size", humanize.IBytes(size))

	if opts.compare == "" {
		return nil
	}
	switch verify.Compare(digest.String(), opts.compare) {
	case verify.Match:
		logger.Info("hash values match, file integrity verified")
	default:
		logger.Warn("hash values do not match, file integrity check failed", "expected", verify.Normalize(opts.compare), "actual", digest)
	}
	return nil
}

func (r *RootCommand) printHelp() error {
	const help = "fileverify verifies file integrity by comparing hashes\n\nUsage:\n  fileverify [flags] <filepath>\n\nFlags:\n  -a, --algorithm string     hash algorithm: sha256, sha1, md5 (default sha256)\n  -c, --compare_hash string  hash value to compare against; if omitted only the hash is calculated\n      --chunk-size int       read chunk size in bytes (default 4096)\n      --max-rate int         limit reads to this many bytes per second (0 = unlimited)\n      --progress             print hashing progress to stderr\n      --log-level string     debug, info, warn, error (default info)\n      --version              print version information\n  -h, --help                 help for fileverify\n\nEnvironment:\n  FILEVERIFY_ALGORITHM, FILEVERIFY_CHUNK_SIZE, FILEVERIFY_MAX_RATE, FILEVERIFY_LOG_LEVEL\n  (also read from ./.env)\n"
	if _, err := fmt.Fprint(r.out, help); err != nil {
		return fmt.Errorf("write help output: %w", err)
	}
	return nil
}
