// Copyright (C) 2022  Shanhu Tech Inc.
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, either version 3 of the License, or (at your
// option) any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pack

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"shanhu.io/misc/errcode"
	"shanhu.io/text/lexing"
)

// Processed is a collection with its final content.
type Processed struct {
	*Collection

	Content []byte
	Stats   *Stats
}

// Processor turns the collections of a manifest into their final content.
type Processor struct {
	// Compressor compresses script collections in compress mode.
	Compressor Compressor

	// Ignore lists patterns of files that directory globs skip.
	Ignore []string

	// Log receives the progress messages. Nil means no logging.
	Log io.Writer
}

func (p *Processor) logf(format string, args ...interface{}) {
	if p.Log != nil {
		fmt.Fprintf(p.Log, format+"\n", args...)
	}
}

func readFiles(files []string) ([]byte, error) {
	buf := new(bytes.Buffer)
	for _, f := range files {
		bs, err := os.ReadFile(f)
		if err != nil {
			// Keeps the os error, so that a missing input can be told
			// apart with errors.Is.
			return nil, fmt.Errorf("read %q: %w", f, err)
		}
		buf.Write(bs)
	}
	return buf.Bytes(), nil
}

func (p *Processor) compress(c *Collection, content []byte) ([]byte, error) {
	if c.Type == TypeStylesheet {
		return []byte(MinifyCSS(string(content))), nil
	}

	if len(c.Files) == 0 {
		return nil, nil
	}
	if p.Compressor == nil {
		return nil, errcode.InvalidArgf("no script compressor")
	}
	// The compressor concatenates the files on its own.
	out, err := p.Compressor.Compress(c.Files)
	if err != nil {
		return nil, errcode.Annotate(err, "compress")
	}
	return out, nil
}

func (p *Processor) process1(c *Collection) (*Processed, error) {
	verb := "Combining"
	if c.Mode == ModeCompress {
		verb = "Compressing"
	}
	p.logf("%s %s...", verb, c.TargetDisplay)
	for _, f := range c.FilesDisplay {
		p.logf("  - %s", f)
	}

	content, err := readFiles(c.Files)
	if err != nil {
		return nil, err
	}
	ret := &Processed{Collection: c}
	if c.Mode != ModeCompress {
		ret.Content = content
		ret.Stats = Compare(content, content)
		return ret, nil
	}

	out, err := p.compress(c, content)
	if err != nil {
		return nil, err
	}
	ret.Content = out
	ret.Stats = Compare(content, out)
	p.logf("%s", ret.Stats)
	return ret, nil
}

// Process reads the manifest and processes all of its collections in order.
// Nothing is written to the disk. Any error aborts the whole manifest.
func (p *Processor) Process(manifest string) ([]*Processed, []*lexing.Error) {
	opts := &ManifestOptions{Ignore: p.Ignore}
	cs, errs := ReadManifest(manifest, opts)
	if errs != nil {
		return nil, errs
	}
	p.logf("Reading %s", manifest)

	var results []*Processed
	for _, c := range cs {
		r, err := p.process1(c)
		if err != nil {
			err = fmt.Errorf("process %q: %w", c.TargetDisplay, err)
			return nil, []*lexing.Error{{Pos: c.Pos, Err: err}}
		}
		results = append(results, r)
	}
	return results, nil
}
