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
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/valvesense/valvesense/internal/vserrors"
)

// splitEpsilon absorbs the rounding of testFraction*n before ceil.
const splitEpsilon = 1e-9

// Split partitions the rows of x and y with the same random permutation.
// The test partition has ceil(testFraction*n) rows and neither partition may be empty.
func Split(x, y mat.Matrix, testFraction float64, r *rand.Rand) (xTrain, xTest, yTrain, yTest *mat.Dense, err error) {
	if testFraction <= 0 || testFraction >= 1 || math.IsNaN(testFraction) {
		return nil, nil, nil, nil, vserrors.Newf(vserrors.CodeInvalidArgument, "test fraction %v not in (0,1)", testFraction)
	}

	n, _ := x.Dims()
	if m, _ := y.Dims(); m != n {
		return nil, nil, nil, nil, vserrors.Newf(vserrors.CodeShapeError, "features have %d rows, labels have %d", n, m)
	}

	nTest := TestSize(n, testFraction)
	if nTest == 0 || nTest == n {
		return nil, nil, nil, nil, vserrors.Newf(vserrors.CodeInvalidArgument, "test fraction %v leaves an empty partition of %d rows", testFraction, n)
	}

	perm := r.Perm(n)
	xTest, yTest = SelectRows(x, perm[:nTest]), SelectRows(y, perm[:nTest])
	xTrain, yTrain = SelectRows(x, perm[nTest:]), SelectRows(y, perm[nTest:])
	return xTrain, xTest, yTrain, yTest, nil
}

// TestSize returns the number of test rows for n rows.
func TestSize(n int, testFraction float64) int {
	return int(math.Ceil(testFraction*float64(n) - splitEpsilon))
}

// SelectRows returns a matrix whose row i is row index[i] of m.
func SelectRows(m mat.Matrix, index []int) *mat.Dense {
	_, c := m.Dims()
	out := mat.NewDense(len(index), c, nil)
	for i, j := range index {
		for k := 0; k < c; k++ {
			out.Set(i, k, m.At(j, k))
		}
	}

	return out
}
