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

package training

import (
	"math"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"
	"gonum.org/v1/gonum/mat"

	"github.com/valvesense/valvesense/internal/vserrors"
	pkgmath "github.com/valvesense/valvesense/pkg/math"
	"github.com/valvesense/valvesense/trainer/classifier"
	"github.com/valvesense/valvesense/trainer/storage"
)

const (
	// classAttributeName is name of the class attribute of evaluation instances.
	classAttributeName = "label"
)

// Evaluate classifies every row of x and reports loss, accuracy, the confusion
// matrix and per class precision, recall and f1 against the one-hot labels y.
func Evaluate(c *classifier.Classifier, x, y mat.Matrix, labels []string) (*storage.Evaluation, error) {
	if len(labels) != c.Outputs() {
		return nil, vserrors.Newf(vserrors.CodeShapeError, "%d labels for %d outputs", len(labels), c.Outputs())
	}

	if err := checkShape(c, x, y, "evaluation"); err != nil {
		return nil, err
	}

	p, err := c.Forward(x, false)
	if err != nil {
		return nil, err
	}

	rows, _ := p.Dims()
	reference, referenceAttr, referenceSpec, err := newInstances(labels, rows)
	if err != nil {
		return nil, err
	}

	generated, generatedAttr, generatedSpec, err := newInstances(labels, rows)
	if err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		reference.Set(referenceSpec, i, referenceAttr.GetSysValFromString(labels[pkgmath.Argmax(mat.Row(nil, i, y)...)]))
		generated.Set(generatedSpec, i, generatedAttr.GetSysValFromString(labels[pkgmath.Argmax(mat.Row(nil, i, p)...)]))
	}

	confusion, err := evaluation.GetConfusionMatrix(reference, generated)
	if err != nil {
		return nil, err
	}

	e := &storage.Evaluation{
		Loss:      CrossEntropy(p, y),
		Accuracy:  finite(evaluation.GetAccuracy(confusion)),
		Confusion: confusion,
	}

	for _, label := range labels {
		var support int
		for _, count := range confusion[label] {
			support += count
		}

		e.Classes = append(e.Classes, storage.ClassReport{
			Label:     label,
			Precision: finite(evaluation.GetPrecision(label, confusion)),
			Recall:    finite(evaluation.GetRecall(label, confusion)),
			F1:        finite(evaluation.GetF1Score(label, confusion)),
			Support:   support,
		})
	}

	return e, nil
}

// Summary renders the confusion matrix and the per class scores.
func Summary(e *storage.Evaluation) string {
	confusion := evaluation.ConfusionMatrix(e.Confusion)
	return evaluation.ShowConfusionMatrix(confusion) + "\n" + evaluation.GetSummary(confusion)
}

// newInstances returns instances with a single categorical class attribute over labels.
func newInstances(labels []string, rows int) (*base.DenseInstances, *base.CategoricalAttribute, base.AttributeSpec, error) {
	attr := base.NewCategoricalAttribute()
	attr.SetName(classAttributeName)
	for _, label := range labels {
		attr.GetSysValFromString(label)
	}

	instances := base.NewDenseInstances()
	attrSpec := instances.AddAttribute(attr)
	if err := instances.AddClassAttribute(attr); err != nil {
		return nil, nil, base.AttributeSpec{}, err
	}

	if err := instances.Extend(rows); err != nil {
		return nil, nil, base.AttributeSpec{}, err
	}

	return instances, attr, attrSpec, nil
}

// finite maps the NaN of an empty ratio to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}

	return v
}
