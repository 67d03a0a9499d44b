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

package textpatch_test

import (
	"fmt"

	"znkr.io/textpatch"
	"znkr.io/textpatch/diff"
)

func ExampleCompare() {
	edits := textpatch.Compare(
		"The quick brown fox.",
		"The quick lazy fox.",
		diff.Timeout(0), // minimal diff for reproducible output
	)
	for _, e := range edits {
		fmt.Printf("%s %q\n", e.Op, e.Text)
	}
	// Output:
	// Equal "The quick "
	// Delete "brown"
	// Insert "lazy"
	// Equal " fox."
}

func ExampleLocate() {
	loc, err := textpatch.Locate("The quick brown fox jumps.", "fox", 0)
	if err != nil {
		panic(err)
	}
	fmt.Println(loc)
	// Output:
	// 16
}

func ExampleApply() {
	patches := textpatch.Make(
		"The quick brown fox jumps over the lazy dog.",
		"That quick brown fox jumped over a lazy dog.",
	)
	// The text to patch has drifted from the text the patches were made for.
	got, applied := textpatch.Apply(patches, "The quick red rabbit jumps over the tired tiger.")
	fmt.Println(got)
	fmt.Println(applied)
	// Output:
	// That quick red rabbit jumped over a tired tiger.
	// [true true]
}

func ExampleToText() {
	patches := textpatch.Make("stackoverflow", "smackoverflow")
	fmt.Print(textpatch.ToText(patches))
	// Output:
	// @@ -1,6 +1,6 @@
	//  s
	// -t
	// +m
	//  acko
}
