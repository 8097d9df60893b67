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

package types

const (
	// TrainerName is name of trainer.
	TrainerName = "trainer"

	// SimulatorName is name of simulator.
	SimulatorName = "simulator"
)

const (
	// MetricsNamespace is namespace of metrics.
	MetricsNamespace = "valvesense"

	// TrainerMetricsName is name of trainer metrics.
	TrainerMetricsName = "trainer"

	// SimulatorMetricsName is name of simulator metrics.
	SimulatorMetricsName = "simulator"
)

const (
	// EnvPrefix is the prefix of environment variables overriding config keys.
	EnvPrefix = "VALVESENSE"
)
