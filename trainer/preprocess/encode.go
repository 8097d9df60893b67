/*
 *     Copyright 2026 The Valvesense Authors
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

package preprocess

import (
	"gonum.org/v1/gonum/mat"

	"github.com/valvesense/valvesense/internal/vserrors"
	"github.com/valvesense/valvesense/pkg/container/set"
	"github.com/valvesense/valvesense/trainer/dataset"
)

// OneHotEncode removes the label column from the dataset and returns it as one-hot rows.
// The vocabulary is sorted, column j of the label matrix is vocabulary[j].
func OneHotEncode(d *dataset.Dataset, labelColumn string) (*dataset.Dataset, *mat.Dense, []string, error) {
	c, err := d.MustColumn(labelColumn)
	if err != nil {
		return nil, nil, nil, err
	}

	if c.Kind != dataset.String {
		return nil, nil, nil, vserrors.Newf(vserrors.CodeSchemaError, "label column %s is %s, want string", labelColumn, c.Kind)
	}

	if d.Len() == 0 {
		return nil, nil, nil, vserrors.Newf(vserrors.CodeSchemaError, "label column %s is empty", labelColumn)
	}

	labels := set.New[string]()
	for _, v := range c.Strings {
		labels.Add(v)
	}

	vocabulary := set.Sorted(labels)
	index := make(map[string]int, len(vocabulary))
	for i, v := range vocabulary {
		index[v] = i
	}

	encoded := mat.NewDense(d.Len(), len(vocabulary), nil)
	for i, v := range c.Strings {
		encoded.Set(i, index[v], 1)
	}

	features, err := d.Drop(labelColumn)
	if err != nil {
		return nil, nil, nil, err
	}

	return features, encoded, vocabulary, nil
}

// Features returns the numeric columns of the dataset as a row-major matrix.
func Features(d *dataset.Dataset) (*mat.Dense, error) {
	columns := d.Columns()
	if d.Len() == 0 || len(columns) == 0 {
		return nil, vserrors.New(vserrors.CodeSchemaError, "dataset has no features")
	}

	x := mat.NewDense(d.Len(), len(columns), nil)
	for j, name := range columns {
		c, _ := d.Column(name)
		values, err := c.AsFloats()
		if err != nil {
			return nil, err
		}

		x.SetCol(j, values)
	}

	return x, nil
}
