package array

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	mu sync.RWMutex
	d  = map[string]Method{}
)

var ErrMethodExists = errors.New("method exists")

// Register adds m to the methods available through Lookup.
func Register(m Method) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := d[m.String()]
	if present {
		return fmt.Errorf("%s: %w", m, ErrMethodExists)
	}
	d[m.String()] = m
	return nil
}

func init() {
	for _, m := range builtins() {
		if err := Register(m); err != nil {
			panic(err)
		}
	}
}

func Lookup(s string) Method {
	mu.RLock()
	defer mu.RUnlock()
	return d[s]
}

// Methods returns the registered methods sorted by name.
func Methods() []Method {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Method, 0, len(d))
	for _, m := range d {
		res = append(res, m)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].String() < res[j].String() })
	return res
}
