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

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mitchellh/mapstructure"
	"github.com/sjwhitworth/golearn/base"

	"github.com/mobileprice/pricer/internal/logger"
)

const (
	// DefaultNumEstimators is the default number of boosting stages.
	DefaultNumEstimators = 600

	// DefaultLearningRate is the default shrinkage applied to every tree.
	DefaultLearningRate = 0.05

	// DefaultMaxDepth is the default depth limit of every tree.
	DefaultMaxDepth = 4

	// DefaultMinSamplesSplit is the default minimum rows required to split a node.
	DefaultMinSamplesSplit = 2

	// DefaultMinSamplesLeaf is the default minimum rows kept in each leaf.
	DefaultMinSamplesLeaf = 1
)

var (
	// ErrNotFitted is returned when predicting with a model that was never trained.
	ErrNotFitted = errors.New("no fitted model")
)

// GradientBoostingRegressor is an ensemble of regression trees fitted
// stage-wise on the residuals of squared loss.
type GradientBoostingRegressor struct {
	Fitted            bool              `json:"fitted" mapstructure:"fitted"`
	NumEstimators     int               `json:"n_estimators" mapstructure:"n_estimators"`
	LearningRate      float64           `json:"learning_rate" mapstructure:"learning_rate"`
	MaxDepth          int               `json:"max_depth" mapstructure:"max_depth"`
	MinSamplesSplit   int               `json:"min_samples_split" mapstructure:"min_samples_split"`
	MinSamplesLeaf    int               `json:"min_samples_leaf" mapstructure:"min_samples_leaf"`
	InitialPrediction float64           `json:"initial_prediction" mapstructure:"initial_prediction"`
	FeatureNames      []string          `json:"feature_names" mapstructure:"feature_names"`
	ClassName         string            `json:"class_name" mapstructure:"class_name"`
	Trees             []*RegressionTree `json:"trees" mapstructure:"trees"`
}

// Option is a functional option for configuring the regressor.
type Option func(gb *GradientBoostingRegressor)

// WithNumEstimators sets the number of boosting stages.
func WithNumEstimators(n int) Option {
	return func(gb *GradientBoostingRegressor) {
		gb.NumEstimators = n
	}
}

// WithLearningRate sets the shrinkage of every stage.
func WithLearningRate(rate float64) Option {
	return func(gb *GradientBoostingRegressor) {
		gb.LearningRate = rate
	}
}

// WithMaxDepth sets the depth limit of every tree.
func WithMaxDepth(depth int) Option {
	return func(gb *GradientBoostingRegressor) {
		gb.MaxDepth = depth
	}
}

// WithMinSamplesSplit sets the minimum rows required to split a node.
func WithMinSamplesSplit(n int) Option {
	return func(gb *GradientBoostingRegressor) {
		gb.MinSamplesSplit = n
	}
}

// WithMinSamplesLeaf sets the minimum rows kept in each leaf.
func WithMinSamplesLeaf(n int) Option {
	return func(gb *GradientBoostingRegressor) {
		gb.MinSamplesLeaf = n
	}
}

// NewGradientBoostingRegressor returns an unfitted regressor.
func NewGradientBoostingRegressor(options ...Option) *GradientBoostingRegressor {
	gb := &GradientBoostingRegressor{
		NumEstimators:   DefaultNumEstimators,
		LearningRate:    DefaultLearningRate,
		MaxDepth:        DefaultMaxDepth,
		MinSamplesSplit: DefaultMinSamplesSplit,
		MinSamplesLeaf:  DefaultMinSamplesLeaf,
	}

	for _, opt := range options {
		opt(gb)
	}

	return gb
}

// Fit trains the ensemble on the float attributes of inst against its single class attribute.
func (gb *GradientBoostingRegressor) Fit(inst base.FixedDataGrid) error {
	if gb.NumEstimators <= 0 || gb.LearningRate <= 0 || gb.MaxDepth <= 0 {
		return fmt.Errorf("invalid hyperparameters: n_estimators=%d learning_rate=%v max_depth=%d",
			gb.NumEstimators, gb.LearningRate, gb.MaxDepth)
	}

	_, rows := inst.Size()
	if rows == 0 {
		return errors.New("no rows to fit")
	}

	classAttrs := inst.AllClassAttributes()
	if len(classAttrs) != 1 {
		return errors.New("only 1 class variable is permitted")
	}

	cls, ok := classAttrs[0].(*base.FloatAttribute)
	if !ok {
		return errors.New("class variable must be a float attribute")
	}
	classAttrSpecs := base.ResolveAttributes(inst, classAttrs)

	// AllAttributes keeps insertion order, the feature order of the model.
	attrs := make([]base.Attribute, 0)
	for _, a := range inst.AllAttributes() {
		if _, ok := a.(*base.FloatAttribute); !ok || a.Equals(cls) {
			continue
		}
		attrs = append(attrs, a)
	}
	if len(attrs) == 0 {
		return errors.New("no float attributes to fit")
	}
	attrSpecs := base.ResolveAttributes(inst, attrs)

	x := make([][]float64, rows)
	y := make([]float64, rows)
	if err := inst.MapOverRows(attrSpecs, func(row [][]byte, i int) (bool, error) {
		x[i] = make([]float64, len(row))
		for j, r := range row {
			x[i][j] = base.UnpackBytesToFloat(r)
		}
		y[i] = base.UnpackBytesToFloat(inst.Get(classAttrSpecs[0], i))
		return true, nil
	}); err != nil {
		return err
	}

	featureNames := make([]string, len(attrs))
	for i, a := range attrs {
		featureNames[i] = a.GetName()
	}

	gb.fit(x, y)
	gb.FeatureNames = featureNames
	gb.ClassName = cls.GetName()
	gb.Fitted = true
	return nil
}

// fit runs the boosting stages over a dense sample matrix.
func (gb *GradientBoostingRegressor) fit(x [][]float64, y []float64) {
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	current := make([]float64, len(y))
	for i := range current {
		current[i] = mean
	}

	residuals := make([]float64, len(y))
	trees := make([]*RegressionTree, 0, gb.NumEstimators)
	for stage := 0; stage < gb.NumEstimators; stage++ {
		for i := range residuals {
			residuals[i] = y[i] - current[i]
		}

		tree := buildTree(x, residuals, gb.MaxDepth, gb.MinSamplesSplit, gb.MinSamplesLeaf)
		for i := range current {
			current[i] += gb.LearningRate * tree.Predict(x[i])
		}
		trees = append(trees, tree)
	}

	gb.InitialPrediction = mean
	gb.Trees = trees
}

// Predict writes the prediction of every row of X into a new class vector.
func (gb *GradientBoostingRegressor) Predict(X base.FixedDataGrid) (base.FixedDataGrid, error) {
	if !gb.Fitted {
		logger.Info("no fitted model")
		return nil, ErrNotFitted
	}

	attrSpecs := make([]base.AttributeSpec, len(gb.FeatureNames))
	for i, name := range gb.FeatureNames {
		spec, err := X.GetAttribute(base.NewFloatAttribute(name))
		if err != nil {
			return nil, fmt.Errorf("resolve feature %s: %w", name, err)
		}
		attrSpecs[i] = spec
	}

	ret := base.GeneratePredictionVector(X)
	clsSpec, err := ret.GetAttribute(base.NewFloatAttribute(gb.ClassName))
	if err != nil {
		logger.Infof("GradientBoostingRegressor error happens, error is %v", err)
		return nil, err
	}

	x := make([]float64, len(attrSpecs))
	if err := X.MapOverRows(attrSpecs, func(row [][]byte, i int) (bool, error) {
		for j, r := range row {
			x[j] = base.UnpackBytesToFloat(r)
		}

		ret.Set(clsSpec, i, base.PackFloatToBytes(gb.predict(x)))
		return true, nil
	}); err != nil {
		logger.Infof("GradientBoostingRegressor error happens, error is %v", err)
		return nil, err
	}

	return ret, nil
}

// PredictRow predicts a single feature vector laid out in FeatureNames order.
func (gb *GradientBoostingRegressor) PredictRow(x []float64) (float64, error) {
	if !gb.Fitted {
		return 0, ErrNotFitted
	}

	if len(x) != len(gb.FeatureNames) {
		return 0, fmt.Errorf("expected %d features, got %d", len(gb.FeatureNames), len(x))
	}

	return gb.predict(x), nil
}

func (gb *GradientBoostingRegressor) predict(x []float64) float64 {
	out := gb.InitialPrediction
	for _, tree := range gb.Trees {
		out += gb.LearningRate * tree.Predict(x)
	}

	return out
}

// Validate checks that a decoded model is usable for prediction.
func (gb *GradientBoostingRegressor) Validate() error {
	if !gb.Fitted {
		return ErrNotFitted
	}

	if len(gb.FeatureNames) == 0 {
		return errors.New("model has no features")
	}

	if len(gb.Trees) == 0 {
		return errors.New("model has no trees")
	}

	if math.IsNaN(gb.InitialPrediction) || math.IsInf(gb.InitialPrediction, 0) {
		return errors.New("model has a non-finite initial prediction")
	}

	for i, tree := range gb.Trees {
		if tree == nil {
			return fmt.Errorf("tree %d is missing", i)
		}

		if err := tree.validate(len(gb.FeatureNames)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}

	return nil
}

func (gb *GradientBoostingRegressor) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"fitted":             gb.Fitted,
		"n_estimators":       gb.NumEstimators,
		"learning_rate":      gb.LearningRate,
		"max_depth":          gb.MaxDepth,
		"min_samples_split":  gb.MinSamplesSplit,
		"min_samples_leaf":   gb.MinSamplesLeaf,
		"initial_prediction": gb.InitialPrediction,
		"feature_names":      gb.FeatureNames,
		"class_name":         gb.ClassName,
		"trees":              gb.Trees,
	})
}

func (gb *GradientBoostingRegressor) UnmarshalJSON(data []byte) error {
	var d map[string]any
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}

	return mapstructure.Decode(d, gb)
}
