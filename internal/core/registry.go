package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]ToolDefinition)
	registryMu sync.RWMutex
)

// Register adds a tool to the registry.
// Panics if a tool with the same key is already registered, or if a text
// tool has no Transform.
func Register(def ToolDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if def.Info.Key == "" {
		panic("tool registered without key")
	}
	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("tool already registered: %s", def.Info.Key))
	}
	if def.Info.Kind == "" {
		def.Info.Kind = KindText
	}
	if def.Info.Kind == KindText && def.Transform == nil {
		panic(fmt.Sprintf("text tool without transform: %s", def.Info.Key))
	}

	registry[def.Info.Key] = def
}

// Get returns a tool by key.
func Get(key string) (ToolDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns every tool sorted by group, then order, then key.
func All() []ToolDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]ToolDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Info, result[j].Info
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Key < b.Key
	})

	return result
}

// ByGroup returns the tools of one group in display order.
func ByGroup(group string) []ToolDefinition {
	var result []ToolDefinition
	for _, def := range All() {
		if def.Info.Group == group {
			result = append(result, def)
		}
	}
	return result
}

// Groups returns all group names, sorted.
func Groups() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	for _, def := range registry {
		seen[def.Info.Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// ToolCount returns the number of registered tools.
func ToolCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered tools. Tests use it to start from a known
// registry.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]ToolDefinition)
}
