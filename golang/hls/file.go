// Copyright 2025 Google LLC
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

package hls

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// File is a generated file.
type File interface {
	// Extension of the file, including the leading dot.
	Extension() string
	// Write the content of the file.
	Write(w io.Writer) error
}

// WriteFile creates a file at path and writes its content.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Errorf("cannot create %s: %v", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	if err := write(f); err != nil {
		return errors.WithMessagef(err, "cannot write %s", path)
	}
	return nil
}

// WriteFiles writes files in a folder. All the files share the same name
// and differ by their extensions.
func WriteFiles(dir, name string, files []File) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Errorf("cannot create folder %s: %v", dir, err)
	}
	var errs error
	for _, file := range files {
		errs = multierr.Append(errs, WriteFile(filepath.Join(dir, name+file.Extension()), file.Write))
	}
	return errs
}
