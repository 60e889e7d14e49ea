package layoutview

import (
	"context"
	"fmt"
	"io"

	"github.com/ukaji3/layoutview/pkg/layoutview/classifier"
	"github.com/ukaji3/layoutview/pkg/layoutview/models"
	"github.com/ukaji3/layoutview/pkg/layoutview/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Classify classifies every sheet of the workbook at path.
//
// Results follow the sheet order declared in the workbook. Either every
// sheet is classified or an error is returned; there are no partial results.
func Classify(ctx context.Context, path string, opts Options) ([]models.SheetClassification, error) {
	th := opts.EffectiveThresholds()
	if err := th.Validate(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()

	return classifyWorkbook(ctx, f, path, th, opts)
}

// ClassifyReader classifies every sheet of a workbook read from r.
func ClassifyReader(ctx context.Context, r io.Reader, opts Options) ([]models.SheetClassification, error) {
	th := opts.EffectiveThresholds()
	if err := th.Validate(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, openError("stream", err)
	}
	defer f.Close()

	return classifyWorkbook(ctx, f, "stream", th, opts)
}

func classifyWorkbook(ctx context.Context, f *excelize.File, name string, th classifier.Thresholds, opts Options) ([]models.SheetClassification, error) {
	log := opts.logger().With(zap.String("workbook", name))

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, &WorkbookError{Path: name, Op: "read", Kind: ErrInvalidFormat, Err: fmt.Errorf("workbook declares no sheets")}
	}
	log.Debug("workbook opened", zap.Int("sheets", len(sheetList)))

	// Loading shares one excelize handle, so it stays sequential.
	sheets := make([]*models.Sheet, 0, len(sheetList))
	for _, sheetName := range sheetList {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sheet, err := parser.LoadSheet(f, sheetName)
		if err != nil {
			return nil, &WorkbookError{Path: name, Op: "read", Kind: ErrInvalidFormat, Err: NewSheetError(sheetName, "load", err)}
		}
		if opts.SkipHidden && !sheet.Visible {
			log.Debug("skipping hidden sheet", zap.String("sheet", sheetName))
			continue
		}
		sheets = append(sheets, sheet)
	}

	results := make([]models.SheetClassification, len(sheets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, sheet := range sheets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := classifySheet(sheet, th)
			if err != nil {
				return err
			}
			results[i] = res
			log.Debug("sheet classified",
				zap.String("sheet", res.SheetName),
				zap.String("layout", string(res.Layout)),
				zap.Float64("sparsity", res.Metrics.Sparsity))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("workbook classified", zap.Int("sheets", len(results)))
	return results, nil
}

// classifySheet runs the classifier and reports a panic as ErrInternal.
func classifySheet(sheet *models.Sheet, th classifier.Thresholds) (res models.SheetClassification, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewSheetError(sheet.Name, "classify", fmt.Errorf("%w: %v", ErrInternal, r))
		}
	}()
	return classifier.Classify(sheet, th), nil
}
