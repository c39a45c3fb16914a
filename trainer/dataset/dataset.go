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

//go:generate mockgen -destination mocks/dataset_mock.go -source dataset.go -package mocks

package dataset

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/mobileprice/pricer/internal/logger"
	"github.com/mobileprice/pricer/pkg/digest"
	"github.com/mobileprice/pricer/pkg/net/url"
	"github.com/mobileprice/pricer/pkg/retry"
	"github.com/mobileprice/pricer/pkg/unit"
	"github.com/mobileprice/pricer/trainer/config"
)

const (
	// downloadInitBackoff is the initial backoff in seconds between download attempts.
	downloadInitBackoff = 0.5

	// downloadMaxBackoff is the maximum backoff in seconds between download attempts.
	downloadMaxBackoff = 5
)

var (
	// ErrEmptyDataset is returned when the source holds no data row.
	ErrEmptyDataset = errors.New("dataset has no rows")

	// ErrDatasetTooLarge is returned when the source exceeds the configured size.
	ErrDatasetTooLarge = errors.New("dataset exceeds max size")
)

// missingMarkers are cell values read as missing.
var missingMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-NaN":     {},
	"-nan":     {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RawRecord is one dataset row projected through the column mapping. Missing
// cells are empty strings.
type RawRecord struct {
	// Line is the line number of the row in the source, the header is line 1.
	Line int

	Price         string
	RAMAndStorage string
	Display       string
	Camera        string
	Battery       string
	Processor     string
	Features      string
	Rating        string
	SIM           string
}

// Dataset is the interface used for reading the raw dataset.
type Dataset interface {
	// Load reads every record of the dataset source.
	Load(context.Context) ([]RawRecord, error)

	// Source returns the configured source.
	Source() string
}

type dataset struct {
	config     *config.DatasetConfig
	httpClient *http.Client
}

// Option is a functional option for configuring the dataset.
type Option func(d *dataset)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(client *http.Client) Option {
	return func(d *dataset) {
		d.httpClient = client
	}
}

// New returns a new Dataset instance.
func New(cfg *config.DatasetConfig, options ...Option) Dataset {
	d := &dataset{
		config:     cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
	}

	for _, opt := range options {
		opt(d)
	}

	return d
}

// Source returns the configured source.
func (d *dataset) Source() string {
	return d.config.Source
}

// Load reads every record of the dataset source.
func (d *dataset) Load(ctx context.Context) ([]RawRecord, error) {
	rc, err := d.open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r, err := d.newDigestReader(limitReader(rc, d.config.MaxSize))
	if err != nil {
		return nil, err
	}

	rows, err := gocsv.CSVToMaps(skipBOM(r))
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", d.config.Source, err)
	}
	logger.WithDataset(d.config.Source).Infof("read %d rows with digest %s", len(rows), r.Digest())

	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	if err := d.checkColumns(rows[0]); err != nil {
		return nil, err
	}

	columns := d.config.Columns
	records := make([]RawRecord, len(rows))
	for i, row := range rows {
		records[i] = RawRecord{
			Line:          i + 2,
			Price:         cell(row, columns.Price),
			RAMAndStorage: cell(row, columns.RAMAndStorage),
			Display:       cell(row, columns.Display),
			Camera:        cell(row, columns.Camera),
			Battery:       cell(row, columns.Battery),
			Processor:     cell(row, columns.Processor),
			Features:      cell(row, columns.Features),
			Rating:        cell(row, columns.Rating),
			SIM:           cell(row, columns.SIM),
		}
	}

	return records, nil
}

// open returns a reader of the local file or of the http(s) response body.
func (d *dataset) open(ctx context.Context) (io.ReadCloser, error) {
	source := d.config.Source
	if !url.IsHTTP(source) {
		return os.Open(source)
	}

	log := logger.WithDataset(source)
	body, _, err := retry.Run(ctx, downloadInitBackoff, downloadMaxBackoff, d.config.RetryLimit, func() (io.ReadCloser, bool, error) {
		body, cancel, err := d.download(ctx)
		if err != nil && !cancel {
			log.Warnf("download dataset failed, retrying: %s", err.Error())
		}

		return body, cancel, err
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

// download requests the source once, cancel reports whether a retry is useless.
func (d *dataset) download(ctx context.Context) (io.ReadCloser, bool, error) {
	source := d.config.Source
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, true, err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() != nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel := resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError
		return nil, cancel, fmt.Errorf("download dataset %s: unexpected status %s", source, resp.Status)
	}

	return resp.Body, false, nil
}

// newDigestReader hashes the content, verifying it against the configured digest.
func (d *dataset) newDigestReader(r io.Reader) (digest.Reader, error) {
	options := []digest.Option{digest.WithLogger(logger.WithDataset(d.config.Source))}
	algorithm := digest.AlgorithmSHA256
	if d.config.Digest != "" {
		expected, err := digest.Parse(d.config.Digest)
		if err != nil {
			return nil, err
		}

		algorithm = expected.Algorithm()
		options = append(options, digest.WithExpected(expected))
	}

	return digest.NewReader(algorithm, r, options...)
}

// checkColumns verifies that the header holds every configured column.
func (d *dataset) checkColumns(row map[string]string) error {
	columns := d.config.Columns
	for _, column := range []string{
		columns.Price,
		columns.RAMAndStorage,
		columns.Display,
		columns.Camera,
		columns.Battery,
		columns.Processor,
		columns.Features,
		columns.Rating,
		columns.SIM,
	} {
		if column == "" {
			continue
		}

		if _, ok := row[column]; !ok {
			return fmt.Errorf("dataset %s has no column %q", d.config.Source, column)
		}
	}

	return nil
}

// cell returns the trimmed value of column, missing markers and unmapped
// columns read as empty.
func cell(row map[string]string, column string) string {
	if column == "" {
		return ""
	}

	value := strings.TrimSpace(row[column])
	if IsMissing(value) {
		return ""
	}

	return value
}

// IsMissing reports whether a cell value is a missing marker.
func IsMissing(value string) bool {
	_, ok := missingMarkers[strings.TrimSpace(value)]
	return ok
}

// sizeLimitedReader fails with ErrDatasetTooLarge once more than n bytes are read.
type sizeLimitedReader struct {
	r io.Reader
	n int64
}

// limitReader limits r to max bytes, zero means no limit.
func limitReader(r io.Reader, max unit.Bytes) io.Reader {
	if max <= 0 {
		return r
	}

	// One extra byte tells an exact fit from an overflow.
	return &sizeLimitedReader{r: io.LimitReader(r, max.ToNumber()+1), n: max.ToNumber()}
}

func (l *sizeLimitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n < 0 {
		return n, ErrDatasetTooLarge
	}

	return n, err
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	return br
}
