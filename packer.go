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
	"fmt"
	"io"

	"shanhu.io/misc/errcode"
	"shanhu.io/text/lexing"
)

// Packer packs the collections of manifests into output files.
type Packer struct {
	proc  *Processor
	cache *CompressCache
	log   io.Writer
}

func newCompressor(config *Config, log io.Writer) Compressor {
	if config.DockerImage != "" {
		c := NewDockerCompressor(config.DockerImage, config.ClosureJar)
		c.Stderr = log
		return c
	}
	return &ClosureCompiler{
		Java:   config.Java,
		Jar:    config.ClosureJar,
		Stderr: log,
	}
}

// NewPacker creates a new packer. Progress messages are written into log,
// which can be nil.
func NewPacker(config *Config, log io.Writer) (*Packer, error) {
	compressor := newCompressor(config, log)

	var cache *CompressCache
	if config.Cache != "" {
		c, err := OpenCompressCache(config.Cache)
		if err != nil {
			return nil, errcode.Annotate(err, "open compress cache")
		}
		cache = c
		compressor = &CachedCompressor{
			Compressor: compressor,
			Cache:      cache,
			Log:        log,
		}
	}

	return NewPackerWith(compressor, config.Ignore, log, cache), nil
}

// NewPackerWith creates a new packer that uses the given script compressor.
// cache is optional, and is closed when the packer is closed.
func NewPackerWith(
	c Compressor, ignore []string, log io.Writer, cache *CompressCache,
) *Packer {
	return &Packer{
		proc: &Processor{
			Compressor: c,
			Ignore:     ignore,
			Log:        log,
		},
		cache: cache,
		log:   log,
	}
}

// Pack processes all collections of the manifest, and writes the outputs
// only after all of them are processed successfully.
func (p *Packer) Pack(manifest string) (*Report, []*lexing.Error) {
	results, errs := p.proc.Process(manifest)
	if errs != nil {
		return nil, errs
	}

	for _, r := range results {
		if err := writeOut(r.Target, r.Content); err != nil {
			err = errcode.Annotatef(err, "write %q", r.TargetDisplay)
			return nil, []*lexing.Error{{Pos: r.Pos, Err: err}}
		}
		if p.log != nil {
			fmt.Fprintf(p.log, "wrote %s\n", r.TargetDisplay)
		}
	}
	return newReport(manifest, results), nil
}

// List reads the manifest and returns its collections without reading any
// of the input files.
func (p *Packer) List(manifest string) ([]*Collection, []*lexing.Error) {
	return ReadManifest(manifest, &ManifestOptions{Ignore: p.proc.Ignore})
}

// Close releases the resources held by the packer.
func (p *Packer) Close() error {
	if p.cache == nil {
		return nil
	}
	return p.cache.Close()
}
