package dataset

import (
	"context"
	"fmt"

	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
	"github.com/soumyadeepdutta/tamperproof-users/internal/observability"
)

type DatasetReader interface {
	Read(ctx context.Context, sourcePath string) ([]domain.Record, error)
}

type SchemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

type PipelineInput struct {
	SourcePath string
	BatchSize  int
	SampleSize int
}

type PipelineOutput struct {
	Result domain.RunResult
	Report domain.VerifyReport
}

// Pipeline is one full import: read the source, ensure the schema, submit the
// batches and verify. It is shared by the HTTP runner and the importer CLI.
type Pipeline struct {
	reader   DatasetReader
	schema   SchemaEnsurer
	importer ImportDataset
	verify   Verify
}

func NewPipeline(reader DatasetReader, schema SchemaEnsurer, importer ImportDataset, verify Verify) *Pipeline {
	return &Pipeline{
		reader:   reader,
		schema:   schema,
		importer: importer,
		verify:   verify,
	}
}

// Run returns an error only when the dataset never reached the importer.
// Failed batches are part of a successful result.
func (p *Pipeline) Run(ctx context.Context, in PipelineInput) (PipelineOutput, error) {
	records, err := p.reader.Read(ctx, in.SourcePath)
	if err != nil {
		return PipelineOutput{}, fmt.Errorf("read dataset: %w", err)
	}
	observability.Logf(ctx, "read %d records from %s", len(records), in.SourcePath)

	if err := p.schema.EnsureSchema(ctx); err != nil {
		return PipelineOutput{}, fmt.Errorf("ensure schema: %w", err)
	}

	result, err := p.importer.Execute(ctx, ImportDatasetInput{Records: records, BatchSize: in.BatchSize})
	if err != nil {
		return PipelineOutput{}, err
	}

	report := p.verify.Execute(ctx, VerifyInput{SampleSize: in.SampleSize})
	return PipelineOutput{Result: result, Report: report}, nil
}
