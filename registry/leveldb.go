// Copyright 2014 The Cayley Authors. All rights reserved.
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

package registry

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cayleygraph/quad"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/cayleygraph/owldoc/clog"
)

const (
	versionKey    = "__version"
	entryPrefix   = "e:"
	latestVersion = 1
)

var order = binary.LittleEndian

// LevelDB is a registry kept in a LevelDB database, one key per concept.
type LevelDB struct {
	db        *leveldb.DB
	path      string
	writeopts *opt.WriteOptions
	readopts  *opt.ReadOptions
}

// OpenLevelDB opens or creates the database at path.
func OpenLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		clog.Errorf("could not open registry database %s: %v", path, err)
		return nil, err
	}
	s := &LevelDB{
		db:        db,
		path:      path,
		writeopts: &opt.WriteOptions{Sync: true},
		readopts:  &opt.ReadOptions{},
	}
	vers, err := s.version()
	if err != nil {
		db.Close()
		return nil, err
	}
	switch vers {
	case 0:
		buf := make([]byte, 8)
		order.PutUint64(buf, latestVersion)
		if err := db.Put([]byte(versionKey), buf, s.writeopts); err != nil {
			db.Close()
			return nil, err
		}
	case latestVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("leveldb: registry version is unknown (%d vs %d)", vers, latestVersion)
	}
	return s, nil
}

func (s *LevelDB) version() (int64, error) {
	data, err := s.db.Get([]byte(versionKey), s.readopts)
	if err == leveldb.ErrNotFound {
		return 0, nil
	} else if err != nil {
		return 0, err
	} else if len(data) != 8 {
		return 0, fmt.Errorf("version value format is unknown")
	}
	return int64(order.Uint64(data)), nil
}

func (s *LevelDB) Load() ([]Entry, error) {
	it := s.db.NewIterator(util.BytesPrefix([]byte(entryPrefix)), s.readopts)
	defer it.Release()
	var out []Entry
	for it.Next() {
		iri := bytes.TrimPrefix(it.Key(), []byte(entryPrefix))
		kind, desc, _ := bytes.Cut(it.Value(), []byte{0})
		out = append(out, Entry{
			IRI:         quad.IRI(string(iri)),
			Kind:        Kind(kind),
			Description: string(desc),
		})
	}
	return out, it.Error()
}

func (s *LevelDB) Save(entries []Entry) error {
	b := &leveldb.Batch{}
	for _, e := range entries {
		val := make([]byte, 0, len(e.Kind)+1+len(e.Description))
		val = append(val, e.Kind...)
		val = append(val, 0)
		val = append(val, e.Description...)
		b.Put([]byte(entryPrefix+string(e.IRI)), val)
	}
	return s.db.Write(b, s.writeopts)
}

func (s *LevelDB) Close() error { return s.db.Close() }
