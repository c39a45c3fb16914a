/*
 *     Copyright 2026 The Pricer Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

//go:generate mockgen -destination mocks/training_mock.go -source training.go -package mocks

package training

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/sjwhitworth/golearn/base"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/mobileprice/pricer/internal/artifact"
	"github.com/mobileprice/pricer/internal/logger"
	"github.com/mobileprice/pricer/pkg/digest"
	"github.com/mobileprice/pricer/pkg/feature"
	"github.com/mobileprice/pricer/pkg/models"
	"github.com/mobileprice/pricer/trainer/config"
	"github.com/mobileprice/pricer/trainer/dataset"
	"github.com/mobileprice/pricer/trainer/metrics"
)

var tracer = otel.Tracer("trainer")

// Span names and attributes of a training run.
const (
	SpanTrain       = "train"
	SpanLoadDataset = "load-dataset"
	SpanFit         = "fit-model"

	AttributeDatasetSource = attribute.Key("pricer.dataset.source")
	AttributeRowsKept      = attribute.Key("pricer.dataset.rows.kept")
	AttributeModelDigest   = attribute.Key("pricer.model.digest")
)

// Stages of a training run, used as failure metric labels.
const (
	StageLoad       = "load"
	StagePreprocess = "preprocess"
	StageFit        = "fit"
	StageEvaluate   = "evaluate"
	StageExport     = "export"
	StageSave       = "save"
)

// Training defines the interface to train the price model.
type Training interface {
	// Train runs the pipeline from the raw dataset to the persisted artifacts.
	Train(context.Context) (*Result, error)
}

// Result describes a finished training run.
type Result struct {
	// Model is the fitted regressor.
	Model *models.GradientBoostingRegressor

	// Columns is the schema the model was fitted on.
	Columns feature.ColumnSchema

	// Evaluation holds the held-out metrics.
	Evaluation Evaluation

	// Loaded is the number of dataset rows read.
	Loaded int

	// Kept is the number of rows left after filtering.
	Kept int

	// TrainRows and TestRows are the sizes of the split.
	TrainRows int
	TestRows  int

	// ModelDigest is the digest of the persisted model file.
	ModelDigest string
}

// training implements Training interface.
type training struct {
	// Trainer service config.
	config *config.Config

	// Directory of the artifacts and exports.
	dataDir string

	// Dataset interface.
	dataset dataset.Dataset

	// Artifact store.
	store artifact.Store
}

// New returns a new Training.
func New(cfg *config.Config, dataDir string, dataset dataset.Dataset, store artifact.Store) Training {
	return &training{
		config:  cfg,
		dataDir: dataDir,
		dataset: dataset,
		store:   store,
	}
}

// Train runs the pipeline from the raw dataset to the persisted artifacts.
func (t *training) Train(ctx context.Context) (*Result, error) {
	ctx, span := tracer.Start(ctx, SpanTrain)
	defer span.End()
	span.SetAttributes(AttributeDatasetSource.String(t.dataset.Source()))

	result, err := t.train(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(AttributeRowsKept.Int(result.Kept), AttributeModelDigest.String(result.ModelDigest))
	return result, nil
}

func (t *training) train(ctx context.Context) (*Result, error) {
	start := time.Now()
	metrics.TrainingCount.Inc()
	log := logger.WithDataset(t.dataset.Source())

	// Load raw records.
	loadCtx, loadSpan := tracer.Start(ctx, SpanLoadDataset)
	records, err := t.dataset.Load(loadCtx)
	loadSpan.End()
	if err != nil {
		metrics.TrainingFailureCount.WithLabelValues(StageLoad).Inc()
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	metrics.DatasetRowsGauge.WithLabelValues("loaded").Set(float64(len(records)))
	log.Infof("loaded %d rows", len(records))

	// Derive and filter features.
	e, err := newExtractor(&t.config.Dataset)
	if err != nil {
		metrics.TrainingFailureCount.WithLabelValues(StagePreprocess).Inc()
		return nil, err
	}

	samples, err := e.preprocess(t.dataset.Source(), records, t.config.Pipeline.FilterMode)
	if err != nil {
		metrics.TrainingFailureCount.WithLabelValues(StagePreprocess).Inc()
		return nil, fmt.Errorf("preprocess dataset: %w", err)
	}
	metrics.DatasetRowsGauge.WithLabelValues("kept").Set(float64(len(samples)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Encode features aligned to the schema, the target is log1p(price).
	vectors := make([]feature.Vector, len(samples))
	for i, sample := range samples {
		vectors[i] = sample.Vector
	}
	columns := feature.NewColumnSchema(vectors)

	x := make([][]float64, len(samples))
	y := make([]float64, len(samples))
	for i, sample := range samples {
		x[i] = columns.Encode(sample.Vector)
		y[i] = math.Log1p(sample.Price)
	}

	trainRows, testRows, err := split(len(samples), t.config.Pipeline.TestPercent, t.config.Pipeline.Seed)
	if err != nil {
		metrics.TrainingFailureCount.WithLabelValues(StagePreprocess).Inc()
		return nil, fmt.Errorf("split %d rows: %w", len(samples), err)
	}
	metrics.DatasetRowsGauge.WithLabelValues("train").Set(float64(len(trainRows)))
	metrics.DatasetRowsGauge.WithLabelValues("test").Set(float64(len(testRows)))

	trainInst, err := newInstances(columns, x, y, trainRows)
	if err != nil {
		metrics.TrainingFailureCount.WithLabelValues(StageFit).Inc()
		return nil, err
	}

	testInst, err := newInstances(columns, x, y, testRows)
	if err != nil {
		metrics.TrainingFailureCount.WithLabelValues(StageEvaluate).Inc()
		return nil, err
	}

	// Fit the model.
	model := models.NewGradientBoostingRegressor(
		models.WithNumEstimators(t.config.Model.NumEstimators),
		models.WithLearningRate(t.config.Model.LearningRate),
		models.WithMaxDepth(t.config.Model.MaxDepth),
		models.WithMinSamplesSplit(t.config.Model.MinSamplesSplit),
		models.WithMinSamplesLeaf(t.config.Model.MinSamplesLeaf),
	)
	log.Infof("fitting %d trees on %d rows with columns %v", t.config.Model.NumEstimators, len(trainRows), columns)
	_, fitSpan := tracer.Start(ctx, SpanFit)
	err = model.Fit(trainInst)
	fitSpan.End()
	if err != nil {
		metrics.TrainingFailureCount.WithLabelValues(StageFit).Inc()
		return nil, fmt.Errorf("fit model: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Evaluate on the held-out rows.
	evaluation, err := t.evaluate(model, testInst)
	if err != nil {
		metrics.TrainingFailureCount.WithLabelValues(StageEvaluate).Inc()
		return nil, fmt.Errorf("evaluate model: %w", err)
	}
	metrics.EvaluationGauge.WithLabelValues("mae").Set(evaluation.MAE)
	metrics.EvaluationGauge.WithLabelValues("mse").Set(evaluation.MSE)
	metrics.EvaluationGauge.WithLabelValues("rmse").Set(evaluation.RMSE)
	metrics.EvaluationGauge.WithLabelValues("r2").Set(evaluation.R2)
	metrics.EvaluationGauge.WithLabelValues("price_mae").Set(evaluation.PriceMAE)
	log.Infof("evaluation mae %.4f, mse %.4f, rmse %.4f, r2 %.4f, price mae %.2f",
		evaluation.MAE, evaluation.MSE, evaluation.RMSE, evaluation.R2, evaluation.PriceMAE)

	// Export cleaned features.
	if t.config.Dataset.ExportFeatures != "" {
		path := t.exportPath()
		if err := exportFeatures(path, samples); err != nil {
			metrics.TrainingFailureCount.WithLabelValues(StageExport).Inc()
			return nil, fmt.Errorf("export features: %w", err)
		}
		log.Infof("exported %d feature rows to %s", len(samples), path)
	}

	// Persist model and schema.
	if err := t.store.SaveModel(model); err != nil {
		metrics.TrainingFailureCount.WithLabelValues(StageSave).Inc()
		return nil, fmt.Errorf("save model: %w", err)
	}

	if err := t.store.SaveColumns(columns); err != nil {
		metrics.TrainingFailureCount.WithLabelValues(StageSave).Inc()
		return nil, fmt.Errorf("save columns: %w", err)
	}

	modelDigest, err := digest.HashFile(t.store.ModelPath(), digest.AlgorithmSHA256)
	if err != nil {
		metrics.TrainingFailureCount.WithLabelValues(StageSave).Inc()
		return nil, fmt.Errorf("hash model: %w", err)
	}
	log.Infof("saved model to %s with digest %s and columns to %s", t.store.ModelPath(), modelDigest, t.store.ColumnsPath())

	metrics.TrainingDurationGauge.Set(time.Since(start).Seconds())
	return &Result{
		Model:       model,
		Columns:     columns,
		Evaluation:  evaluation,
		Loaded:      len(records),
		Kept:        len(samples),
		TrainRows:   len(trainRows),
		TestRows:    len(testRows),
		ModelDigest: modelDigest.String(),
	}, nil
}

// evaluate predicts the held-out grid and scores it.
func (t *training) evaluate(model *models.GradientBoostingRegressor, testInst *base.DenseInstances) (Evaluation, error) {
	predictions, err := model.Predict(testInst)
	if err != nil {
		return Evaluation{}, err
	}

	predicted, err := classValues(predictions)
	if err != nil {
		return Evaluation{}, err
	}

	actual, err := classValues(testInst)
	if err != nil {
		return Evaluation{}, err
	}

	if len(actual) == 0 {
		return Evaluation{}, errors.New("no rows to evaluate")
	}

	return evaluate(actual, predicted)
}

// exportPath resolves a relative export path against the data directory.
func (t *training) exportPath() string {
	path := t.config.Dataset.ExportFeatures
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(t.dataDir, path)
}
