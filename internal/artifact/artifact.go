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

package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mobileprice/pricer/pkg/feature"
	"github.com/mobileprice/pricer/pkg/models"
	"github.com/mobileprice/pricer/pkg/slices"
)

const (
	// ModelFileName is the file name of the persisted model.
	ModelFileName = "mobile_price_model.json"

	// ColumnsFileName is the file name of the persisted column schema.
	ColumnsFileName = "model_columns.json"

	// fileMode is the permission of written artifacts.
	fileMode = 0644
)

var (
	// ErrNotFound is returned when an artifact file does not exist.
	ErrNotFound = errors.New("artifact not found")
)

// Store is the interface used for persisting the model and its column schema.
type Store interface {
	// SaveModel writes the model.
	SaveModel(*models.GradientBoostingRegressor) error

	// SaveColumns writes the column schema.
	SaveColumns(feature.ColumnSchema) error

	// LoadModel reads and validates the model.
	LoadModel() (*models.GradientBoostingRegressor, error)

	// LoadColumns reads the column schema.
	LoadColumns() (feature.ColumnSchema, error)

	// ModelPath returns the model file path.
	ModelPath() string

	// ColumnsPath returns the column schema file path.
	ColumnsPath() string
}

type store struct {
	baseDir string
}

// New returns a new Store rooted at baseDir.
func New(baseDir string) Store {
	return &store{baseDir: baseDir}
}

// SaveModel writes the model.
func (s *store) SaveModel(model *models.GradientBoostingRegressor) error {
	if model == nil || !model.Fitted {
		return models.ErrNotFitted
	}

	return writeJSON(s.ModelPath(), model)
}

// SaveColumns writes the column schema.
func (s *store) SaveColumns(columns feature.ColumnSchema) error {
	if len(columns) == 0 {
		return errors.New("empty column schema")
	}

	if column, ok := slices.FindDuplicate(columns); ok {
		return fmt.Errorf("duplicate column %q", column)
	}

	return writeJSON(s.ColumnsPath(), []string(columns))
}

// LoadModel reads and validates the model.
func (s *store) LoadModel() (*models.GradientBoostingRegressor, error) {
	model := &models.GradientBoostingRegressor{}
	if err := readJSON(s.ModelPath(), model); err != nil {
		return nil, err
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model %s: %w", s.ModelPath(), err)
	}

	return model, nil
}

// LoadColumns reads the column schema.
func (s *store) LoadColumns() (feature.ColumnSchema, error) {
	var columns []string
	if err := readJSON(s.ColumnsPath(), &columns); err != nil {
		return nil, err
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("empty column schema %s", s.ColumnsPath())
	}

	if column, ok := slices.FindDuplicate(columns); ok {
		return nil, fmt.Errorf("duplicate column %q in %s", column, s.ColumnsPath())
	}

	return feature.ColumnSchema(columns), nil
}

// ModelPath returns the model file path.
func (s *store) ModelPath() string {
	return filepath.Join(s.baseDir, ModelFileName)
}

// ColumnsPath returns the column schema file path.
func (s *store) ColumnsPath() string {
	return filepath.Join(s.baseDir, ColumnsFileName)
}

// writeJSON encodes v into a temporary file next to path and renames it over
// path, readers never observe a partial file.
func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmp.Name(), fileMode); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}
