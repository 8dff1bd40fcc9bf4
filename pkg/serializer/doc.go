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

// Package serializer writes values as JSON, YAML or a text table.
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatTable, path)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	return w.Serialize(ctx, snapshots)
//
// Values implementing Tabular are rendered one row per element; anything else
// is flattened into sorted FIELD/VALUE pairs.
//
// HTTP handlers use RespondJSON, which buffers the encoded body so an encoding
// failure becomes a clean 500 rather than a truncated response.
package serializer
