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
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"shanhu.io/misc/errcode"
	"shanhu.io/misc/idutil"

	_ "modernc.org/sqlite" // sqlite driver
)

var errNotFoundInCache = errors.New("not found in cache")

// CompressCache saves the output of script compression, keyed by the
// digest of the input files.
type CompressCache struct {
	db *sql.DB
}

// OpenCompressCache opens or creates a compression cache in a sqlite
// database file.
func OpenCompressCache(f string) (*CompressCache, error) {
	db, err := sql.Open("sqlite", f)
	if err != nil {
		return nil, errcode.Annotate(err, "open database")
	}
	const q = `create table if not exists compressed (
		digest text primary key not null,
		content blob,
		t integer not null
	)`
	if _, err := db.Exec(q); err != nil {
		db.Close()
		return nil, errcode.Annotate(err, "create table")
	}
	return &CompressCache{db: db}, nil
}

func (c *CompressCache) get(digest string) ([]byte, error) {
	row := c.db.QueryRow(
		`select content from compressed where digest=?`, digest,
	)
	var bs []byte
	if err := row.Scan(&bs); err != nil {
		if err == sql.ErrNoRows {
			return nil, errNotFoundInCache
		}
		return nil, err
	}
	return bs, nil
}

func (c *CompressCache) put(digest string, content []byte, t time.Time) error {
	_, err := c.db.Exec(
		`insert or replace into compressed (digest, content, t)
		values (?, ?, ?)`,
		digest, content, t.UnixNano(),
	)
	return err
}

// Close closes the cache database.
func (c *CompressCache) Close() error { return c.db.Close() }

// filesDigest computes a digest over the content of the files, in order.
func filesDigest(files []string) (string, error) {
	h := sha256.New()
	fmt.Fprintln(h, len(files))
	for _, f := range files {
		bs, err := os.ReadFile(f)
		if err != nil {
			return "", errcode.Annotatef(err, "read %q", f)
		}
		fmt.Fprintln(h, len(bs))
		h.Write(bs)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CachedCompressor looks up the compressed output in a cache before
// calling the compressor, and saves the compressor's output into the
// cache.
type CachedCompressor struct {
	Compressor Compressor
	Cache      *CompressCache

	Log io.Writer // Optional.
}

func (c *CachedCompressor) logf(format string, args ...interface{}) {
	if c.Log != nil {
		fmt.Fprintf(c.Log, format+"\n", args...)
	}
}

// Compress compresses the files, using the cached output when the content
// of the files is unchanged.
func (c *CachedCompressor) Compress(files []string) ([]byte, error) {
	digest, err := filesDigest(files)
	if err != nil {
		return nil, errcode.Annotate(err, "digest")
	}

	bs, err := c.Cache.get(digest)
	if err == nil {
		c.logf("cache hit %s", idutil.Short(digest))
		return bs, nil
	}
	if !errors.Is(err, errNotFoundInCache) {
		return nil, errcode.Annotate(err, "check compress cache")
	}

	out, err := c.Compressor.Compress(files)
	if err != nil {
		return nil, err
	}
	if err := c.Cache.put(digest, out, time.Now()); err != nil {
		return nil, errcode.Annotate(err, "save in compress cache")
	}
	return out, nil
}
