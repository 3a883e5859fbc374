package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	app "github.com/soumyadeepdutta/tamperproof-users/internal/application/dataset"
	"github.com/soumyadeepdutta/tamperproof-users/internal/bootstrap"
	"github.com/soumyadeepdutta/tamperproof-users/internal/config"
	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
	infrafile "github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/file"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/gateway"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/repository"
	"github.com/soumyadeepdutta/tamperproof-users/internal/observability"
)

// session is what the commands need from the record store. It is opened only
// once a command actually runs.
type session struct {
	candidates *repository.CandidateRepository
	close      func(context.Context)
}

type sessionOpener func(ctx context.Context, cfg config.Config) (*session, error)

func openSession(ctx context.Context, cfg config.Config) (*session, error) {
	shutdownTracing, err := observability.InitTracing(ctx, cfg.ServiceName+"-importer", cfg.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, err
	}

	return &session{
		candidates: repository.NewCandidateRepository(gateway.Instrument(store, nil)),
		close: func(ctx context.Context) {
			store.Close()
			_ = shutdownTracing(ctx)
		},
	}, nil
}

func newRootCommand(cfg config.Config, open sessionOpener) *cobra.Command {
	root := &cobra.Command{
		Use:           "importer",
		Short:         "Bulk-load the candidate dataset into the record store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCommand(cfg, open), newVerifyCommand(cfg, open))
	return root
}

func newRunCommand(cfg config.Config, open sessionOpener) *cobra.Command {
	var (
		batchSize  int
		sampleSize int
		baseDir    string
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "run <dataset.csv|dataset.json>",
		Short: "Import a CSV or JSON dataset in sequential batches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if batchSize < 1 {
				return app.ErrInvalidBatchSize
			}

			ctx := cmd.Context()
			rt, err := open(ctx, cfg)
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			pipeline := app.NewPipeline(
				infrafile.NewDatasetReader(infrafile.NewLocalSource(baseDir)),
				rt.candidates,
				app.NewImportDataset(rt.candidates, nil),
				app.NewVerify(rt.candidates),
			)

			out, err := pipeline.Run(ctx, app.PipelineInput{
				SourcePath: args[0],
				BatchSize:  batchSize,
				SampleSize: sampleSize,
			})
			if err != nil {
				return err
			}

			if err := writeSummary(cmd.OutOrStdout(), out.Result, out.Report); err != nil {
				return err
			}
			if strict && !out.Result.Succeeded() {
				return fmt.Errorf("%d of %d batches failed", len(out.Result.Failed), out.Result.Batches)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", cfg.BatchSize, "Records per bulk insert statement")
	cmd.Flags().IntVar(&sampleSize, "sample-size", cfg.VerifySampleSize, "Records to read back after the import")
	cmd.Flags().StringVar(&baseDir, "base-dir", cfg.ImportBaseDir, "Directory relative dataset paths resolve against")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any batch failed")
	return cmd
}

func newVerifyCommand(cfg config.Config, open sessionOpener) *cobra.Command {
	var sampleSize int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Count imported records and print a sample",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := open(ctx, cfg)
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			report := app.NewVerify(rt.candidates).Execute(ctx, app.VerifyInput{SampleSize: sampleSize})
			return writeReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().IntVar(&sampleSize, "sample-size", cfg.VerifySampleSize, "Records to read back")
	return cmd
}

type sampleRow struct {
	ApplicationID string `json:"application_id"`
	CandidateName string `json:"candidate_name,omitempty"`
	Email         string `json:"email,omitempty"`
}

type summary struct {
	Result *dataset.RunResult   `json:"result,omitempty"`
	Verify dataset.VerifyReport `json:"verify"`
	Sample []sampleRow          `json:"sample,omitempty"`
}

func writeSummary(w io.Writer, result dataset.RunResult, report dataset.VerifyReport) error {
	return writeJSON(w, summary{Result: &result, Verify: report, Sample: sampleRows(report.Sample)})
}

func writeReport(w io.Writer, report dataset.VerifyReport) error {
	return writeJSON(w, summary{Verify: report, Sample: sampleRows(report.Sample)})
}

func sampleRows(records []dataset.Record) []sampleRow {
	rows := make([]sampleRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, sampleRow{
			ApplicationID: rec.ApplicationID(),
			CandidateName: deref(rec.Get("candidate_name")),
			Email:         deref(rec.Get("email")),
		})
	}
	return rows
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
