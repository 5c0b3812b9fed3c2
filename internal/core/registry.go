package core

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// The registry holds display information for every table, keyed by TableInfo.Key.
// Tables register themselves from init in the tables package.
var (
	registryMu sync.RWMutex
	registry   = map[string]TableInfo{}
)

// Register adds a table. An empty ExportName defaults to the key.
// Panics on a duplicate key.
func Register(info TableInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := registry[info.Key]; dup {
		panic(fmt.Sprintf("table already registered: %s", info.Key))
	}
	info.ExportName = cmp.Or(info.ExportName, info.Key)
	registry[info.Key] = info
}

// Get returns the table registered under key.
func Get(key string) (TableInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	info, ok := registry[key]
	return info, ok
}

// Lookup is like Get but returns ErrUnknownTable for unregistered keys.
func Lookup(key string) (TableInfo, error) {
	if info, ok := Get(key); ok {
		return info, nil
	}
	return TableInfo{}, fmt.Errorf("%w: %s", ErrUnknownTable, key)
}

func byGroupThenKey(a, b TableInfo) int {
	return cmp.Or(cmp.Compare(a.Group, b.Group), cmp.Compare(a.Key, b.Key))
}

// All returns every table sorted by group, then key.
func All() []TableInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.SortedFunc(maps.Values(registry), byGroupThenKey)
}

// ByGroup returns the tables in group, sorted by key.
func ByGroup(group string) []TableInfo {
	return slices.DeleteFunc(All(), func(info TableInfo) bool {
		return info.Group != group
	})
}

// Groups returns the distinct group names, sorted.
func Groups() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	groups := make([]string, 0, len(registry))
	for _, info := range registry {
		groups = append(groups, info.Group)
	}
	slices.Sort(groups)
	return slices.Compact(groups)
}

// TableCount returns the number of registered tables.
func TableCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear empties the registry. Tests only.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	clear(registry)
}
