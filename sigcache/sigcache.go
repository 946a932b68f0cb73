// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sigcache caches the review signature aggregate of each paper in a
// LevelDB key-value database.
package sigcache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/decred/peerreview/review"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

const (
	// cacheDirname is the directory name the LevelDB database is saved
	// to.
	cacheDirname = "sigcache"
)

var (
	// ErrShutdown is returned by all methods once the cache has been
	// closed.
	ErrShutdown = errors.New("cache is shutdown")

	// ErrNotFound is returned when the cache does not contain the
	// signatures of a paper.
	ErrNotFound = errors.New("signatures not found")
)

// Cache provides a concurrency safe cache of review signature aggregates.
//
// Keys include the signature version so that entries written with an older
// signature layout are never decoded with a newer one.
type Cache struct {
	sync.Mutex
	db       *leveldb.DB
	shutdown bool
}

// key returns the cache key of a paper.
func key(paperID int) []byte {
	return []byte(fmt.Sprintf("sig%v/%v", review.SignatureVersion, paperID))
}

// New returns a new Cache that is saved to the provided data directory.
func New(dataDir string) (*Cache, error) {
	dir := filepath.Join(dataDir, cacheDirname)
	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return nil, err
	}

	log.Tracef("LevelDB: %v", dir)

	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Cache{
		db: db,
	}, nil
}

// Put saves the provided signature aggregates, keyed by paper id. Existing
// entries are overwritten. This operation is atomic.
func (c *Cache) Put(sigs map[int]string) error {
	log.Tracef("Put: %v papers", len(sigs))

	c.Lock()
	defer c.Unlock()
	if c.shutdown {
		return ErrShutdown
	}

	batch := new(leveldb.Batch)
	for paperID, agg := range sigs {
		batch.Put(key(paperID), []byte(agg))
	}

	return errors.WithStack(c.db.Write(batch, nil))
}

// PutRecords saves the signature aggregate of the provided reviews of a
// paper. Signatures are saved in review id order.
func (c *Cache) PutRecords(paperID int, records []*review.Record) error {
	sorted := make([]*review.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return review.CompareIdentity(sorted[i], sorted[j]) < 0
	})

	return c.Put(map[int]string{
		paperID: review.JoinSignatures(sorted),
	})
}

// Get returns the signature aggregate of a paper.
//
// An ErrNotFound error is returned if the paper is not cached.
func (c *Cache) Get(paperID int) (string, error) {
	log.Tracef("Get: %v", paperID)

	c.Lock()
	defer c.Unlock()
	if c.shutdown {
		return "", ErrShutdown
	}

	b, err := c.db.Get(key(paperID), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", errors.WithStack(ErrNotFound)
	} else if err != nil {
		return "", errors.WithStack(err)
	}

	return string(b), nil
}

// Records returns the cached reviews of a paper in display order.
//
// An ErrNotFound error is returned if the paper is not cached.
func (c *Cache) Records(p review.Paper) ([]*review.Record, error) {
	agg, err := c.Get(p.ID())
	if err != nil {
		return nil, err
	}
	records, err := review.HydrateSignatures(p, agg)
	if err != nil {
		return nil, err
	}
	review.SortDisplay(records)
	return records, nil
}

// Del deletes the cached signatures of the provided papers. This operation
// is atomic. Papers that are not cached are ignored.
func (c *Cache) Del(paperIDs []int) error {
	log.Tracef("Del: %v", paperIDs)

	c.Lock()
	defer c.Unlock()
	if c.shutdown {
		return ErrShutdown
	}

	batch := new(leveldb.Batch)
	for _, v := range paperIDs {
		batch.Delete(key(v))
	}

	return errors.WithStack(c.db.Write(batch, nil))
}

// Close closes the cache.
func (c *Cache) Close() error {
	log.Tracef("Close")

	c.Lock()
	defer c.Unlock()
	if c.shutdown {
		return nil
	}
	c.shutdown = true

	return c.db.Close()
}
