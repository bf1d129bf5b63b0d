// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serializer reads and writes sparrowctl documents as JSON, YAML or a
// flattened table.
//
// Output destinations are chosen by path:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "")         // stdout
//	w := serializer.NewFileWriterOrStdout(serializer.FormatJSON, "eval.json") // file
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "cm://ci/sparrow-eval")
//	defer serializer.Close(w)
//	err := w.Serialize(ctx, evaluation)
//
// Inputs come from files, HTTP(S) URLs or ConfigMaps, with the format taken
// from the extension:
//
//	p, err := serializer.FromFile[profile.Profile](ctx, "https://example.com/gcc13.yaml")
//
// ConfigMaps store the payload under "document.<ext>" next to a "format" key.
// Writes use server-side apply so repeated runs update the same object.
//
// RespondJSON writes HTTP responses, encoding before headers are sent so an
// encoding failure never leaves a partial body.
package serializer
