// Copyright 2025 Florian Zenker (flo@znkr.io)
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

// Package textpatch provides text differencing, fuzzy matching, and patching for
// synchronizing Unicode strings.
//
// Three engines compose into a layered library:
//
//   - [znkr.io/textpatch/diff] computes and reshapes edit scripts between two strings.
//   - [znkr.io/textpatch/match] locates a pattern in a haystack near an expected offset,
//     tolerating errors.
//   - [znkr.io/textpatch/patch] builds, serializes, and fuzzily applies patches, driving the
//     other two engines.
//
// This package is the façade: [Compare], [Locate], [Make], and [Apply] forward to the
// engines, and the core types are re-exported so that simple uses need only one import. The
// engines accept functional options ([diff.Timeout], [match.Threshold], [Margin], ...) to
// adjust their behavior per call; the zero configuration is suitable for interactive use.
//
// The library holds no global state and performs no I/O. Every operation is synchronous and
// deterministic for fixed inputs and options, except that diffs computed under the default
// deadline may be valid but non-minimal; pass diff.Timeout(0) and diff.Linewise(false) for
// reproducible minimal scripts.
//
// [diff.Timeout]: https://pkg.go.dev/znkr.io/textpatch/diff#Timeout
// [match.Threshold]: https://pkg.go.dev/znkr.io/textpatch/match#Threshold
// [Margin]: https://pkg.go.dev/znkr.io/textpatch/patch#Margin
package textpatch
