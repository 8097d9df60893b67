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

package storage

import (
	"time"

	"github.com/valvesense/valvesense/trainer/classifier"
	"github.com/valvesense/valvesense/trainer/preprocess"
)

// Model is the artifact written after training and loaded by the simulator.
type Model struct {
	// ID is the unique id of the training run.
	ID string `json:"id" validate:"required"`

	// CreatedAt is the time training finished.
	CreatedAt time.Time `json:"createdAt"`

	// Labels is the vocabulary, index i names output i of the classifier.
	Labels []string `json:"labels" validate:"required,unique,dive,required"`

	// Normalization is the range of each pressure column in the training dataset.
	Normalization []preprocess.Bounds `json:"normalization" validate:"dive"`

	// History is the per epoch training record.
	History []Epoch `json:"history" validate:"dive"`

	// Evaluation is the report on the validation partition.
	Evaluation *Evaluation `json:"evaluation,omitempty"`

	// Classifier holds the trained parameters.
	Classifier *classifier.Classifier `json:"classifier"`
}

// Epoch is the record of one pass over the training set.
type Epoch struct {
	Epoch       int     `json:"epoch" validate:"gte=1"`
	Loss        float64 `json:"loss"`
	Accuracy    float64 `json:"accuracy"`
	ValLoss     float64 `json:"valLoss"`
	ValAccuracy float64 `json:"valAccuracy"`
}

// Evaluation is the classification report of a trained classifier.
type Evaluation struct {
	Loss      float64                   `json:"loss"`
	Accuracy  float64                   `json:"accuracy"`
	Classes   []ClassReport             `json:"classes"`
	Confusion map[string]map[string]int `json:"confusion"`
}

// ClassReport is the per class precision, recall and f1 score.
type ClassReport struct {
	Label     string  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}
