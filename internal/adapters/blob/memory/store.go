package memory

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"herptracker/internal/adapters/blob/core"
)

type object struct {
	data        []byte
	contentType string
	modified    time.Time
}

// Store mantiene los blobs en memoria. Pensado para tests y modo dev.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
}

func New() *Store {
	return &Store{objects: make(map[string]object)}
}

func (s *Store) Driver() core.Driver { return core.DriverMemory }

func (s *Store) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if strings.TrimSpace(key) == "" {
		return core.ErrInvalidKey
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = object{data: b, contentType: contentType, modified: time.Now().UTC()}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (core.Info, io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.objects[key]
	if !ok {
		return core.Info{}, nil, core.ErrNotFound
	}
	info := core.Info{Key: key, Size: int64(len(o.data)), ContentType: o.contentType, LastModified: o.modified}
	return info, io.NopCloser(bytes.NewReader(o.data)), nil
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return false, nil
	}
	delete(s.objects, key)
	return true, nil
}

// Keys devuelve las keys ordenadas.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.objects))
	for k := range s.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
