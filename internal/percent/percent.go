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

// Package percent implements the percent-escape dialect shared by the diff delta format and the
// patch text format.
//
// The dialect is RFC 3986 escaping with a twist inherited from the wire format: the characters
// that are legible in a patch body stay literal, and a space is emitted as a space rather than
// %20, so that serialized edits remain human readable.
package percent

import (
	"net/url"
	"strings"
)

// legible restores the characters that the wire format keeps unescaped.
var legible = strings.NewReplacer(
	"+", " ",
	"%21", "!", "%7E", "~", "%27", "'",
	"%28", "(", "%29", ")", "%3B", ";",
	"%2F", "/", "%3F", "?", "%3A", ":",
	"%40", "@", "%26", "&", "%3D", "=",
	"%2B", "+", "%24", "$", "%2C", ",",
	"%23", "#", "%2A", "*",
)

// Escape encodes s for embedding in a delta token or patch body line. The result contains no
// tabs or newlines, so both formats can use them as structural separators.
func Escape(s string) string {
	return legible.Replace(url.QueryEscape(s))
}

// Unescape decodes a string produced by Escape. A malformed %-sequence is reported as an error;
// '+' is taken literally.
func Unescape(s string) (string, error) {
	return url.PathUnescape(s)
}
