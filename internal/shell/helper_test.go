// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shell

import (
	"io"
	"reflect"

	"github.com/ktr0731/go-fuzzyfinder"
)

// fakeReader answers prompts from a fixed list of lines.
type fakeReader struct {
	answers []string
	prompts []string
}

func (r *fakeReader) SetPrompt(prompt string) {
	r.prompts = append(r.prompts, prompt)
}

func (r *fakeReader) ReadlineWithDefault(defaultValue string) (string, error) {
	if len(r.answers) == 0 {
		return "", io.EOF
	}

	answer := r.answers[0]
	r.answers = r.answers[1:]

	if answer == "<default>" {
		return defaultValue, nil
	}

	return answer, nil
}

func (r *fakeReader) HistoryDisable() {}
func (r *fakeReader) HistoryEnable()  {}

// fakeFinder selects fixed indices instead of showing a fuzzy finder.
type fakeFinder struct {
	index   int
	indices []int
	abort   bool
	labels  []string
}

func (f *fakeFinder) collect(slice interface{}, itemFunc func(int) string) {
	f.labels = nil

	for i := 0; i < reflect.ValueOf(slice).Len(); i++ {
		f.labels = append(f.labels, itemFunc(i))
	}
}

func (f *fakeFinder) Find(slice interface{}, itemFunc func(int) string, _ ...fuzzyfinder.Option) (int, error) {
	f.collect(slice, itemFunc)

	if f.abort {
		return 0, fuzzyfinder.ErrAbort
	}

	return f.index, nil
}

func (f *fakeFinder) FindMulti(slice interface{}, itemFunc func(int) string, _ ...fuzzyfinder.Option) ([]int, error) {
	f.collect(slice, itemFunc)

	if f.abort {
		return nil, fuzzyfinder.ErrAbort
	}

	return f.indices, nil
}
