package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"github.com/dshills/trilex/internal/app"
	"github.com/dshills/trilex/internal/config"
	"github.com/dshills/trilex/internal/dictionary"
	"github.com/dshills/trilex/internal/export"
	"github.com/dshills/trilex/internal/store"
	"github.com/dshills/trilex/internal/translate"
)

// session is the configuration, logger and store shared by the batch
// commands. Batch commands log to stderr.
type session struct {
	cfg    *config.Config
	logger *app.Logger
	store  store.Store
}

func openSession() (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	if debug {
		level = "debug"
	}
	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(level),
		Output: os.Stderr,
		Prefix: "trilex",
	})
	app.SetLogger(logger)

	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, store: st}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.WithComponent("store").Error("%v", err)
	}
}

func (s *session) timeout(ctx context.Context) (context.Context, context.CancelFunc) {
	d := time.Duration(s.cfg.Store.TimeoutSeconds) * time.Second
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func (s *session) load(ctx context.Context) (dictionary.Sequence, error) {
	ctx, cancel := s.timeout(ctx)
	defer cancel()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, app.NewOperationError("load", s.store.Name(), err)
	}
	seq := dictionary.FromSnapshot(snap)
	s.logger.Debug("loaded %d rows from %s", len(seq), s.store.Name())
	return seq, nil
}

func (s *session) save(ctx context.Context, seq dictionary.Sequence) error {
	if readOnly || s.cfg.Editor.ReadOnly {
		return app.NewOperationError("save", s.store.Name(), app.ErrReadOnly)
	}
	ctx, cancel := s.timeout(ctx)
	defer cancel()

	if err := s.store.Save(ctx, seq.Snapshot()); err != nil {
		return app.NewOperationError("save", s.store.Name(), err)
	}
	s.logger.Info("saved %d rows to %s", len(seq), s.store.Name())
	return nil
}

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate every unverified row and save the result",
	Args:  cobra.NoArgs,
	RunE:  runTranslate,
}

func runTranslate(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	seq, err := s.load(ctx)
	if err != nil {
		return err
	}

	t, script, err := app.OpenTranslator(ctx, s.cfg)
	if err != nil {
		return err
	}
	if script != nil {
		defer script.Close()
	}

	todo := seq.Unverified()
	if len(todo) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to translate")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "translating %d rows with %s (%s)\n", len(todo), t.Provider().Name(), t.Provider().Model())

	uiprogress.Start()
	bar := uiprogress.AddBar(len(todo)).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return fmt.Sprintf("rows %d/%d ", b.Current(), b.Total)
	})

	out, bulkErr := translate.Bulk(ctx, t, seq, translate.BulkOptions{
		Concurrency: s.cfg.Translate.Concurrency,
		Progress: func(done, total int) {
			_ = bar.Set(done)
		},
	})
	uiprogress.Stop()

	// Rows that succeeded are kept even when others failed.
	if err := s.save(ctx, out); err != nil {
		return errors.Join(bulkErr, err)
	}
	return bulkErr
}

var (
	exportLang   string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write per-language {key: text} files or a spreadsheet",
	Long: `Export writes one {key: text} file per language as JSON or YAML, or the
whole dictionary as a spreadsheet. Without --lang every language is
written. --out - writes a single language to stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportLang, "lang", "l", "", "language to export (ko, en, ar); default all")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format (json, yaml, xlsx)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "output directory, or - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	langs := dictionary.Langs
	if exportLang != "" {
		lang, err := dictionary.ParseLang(exportLang)
		if err != nil {
			return err
		}
		langs = []dictionary.Lang{lang}
	}
	if format == export.FormatXLSX {
		// The spreadsheet carries every language.
		langs = langs[:1]
	}
	if exportOut == "-" && len(langs) > 1 {
		return errors.New("--out - needs --lang or --format xlsx")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	seq, err := s.load(cmd.Context())
	if err != nil {
		return err
	}

	for _, lang := range langs {
		if exportOut == "-" {
			if err := writeExport(cmd.OutOrStdout(), seq, lang, format); err != nil {
				return err
			}
			continue
		}
		path := filepath.Join(exportOut, export.FileName(lang, format))
		if err := exportFile(path, seq, lang, format); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func writeExport(w io.Writer, seq dictionary.Sequence, lang dictionary.Lang, format export.Format) error {
	if format == export.FormatXLSX {
		return export.WriteXLSX(w, seq)
	}
	return export.Language(w, seq, lang, format)
}

func exportFile(path string, seq dictionary.Sequence, lang dictionary.Lang, format export.Format) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeExport(f, seq, lang, format)
}

var importCmd = &cobra.Command{
	Use:   "import FILE.xlsx",
	Short: "Merge a spreadsheet into the dictionary and save",
	Long: `Import reads a spreadsheet written by export (columns are matched by
header). Rows whose key matches an unverified row update it, verified rows
are left alone, and new keys are appended.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	imported, err := export.ReadXLSX(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	seq, err := s.load(ctx)
	if err != nil {
		return err
	}
	merged, updated, added := export.Merge(seq, imported)
	if updated == 0 && added == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to import")
		return nil
	}
	if err := s.save(ctx, merged); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d updated, %d added\n", updated, added)
	return nil
}

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Print the configured translation provider and model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.Translate.Provider, translate.ModelName(cfg.Translate))
		return nil
	},
}
