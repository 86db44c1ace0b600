package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDecode is returned when a weather document is not valid JSON.
var ErrDecode = errors.New("weather document could not be decoded")

// Tree is a read-only key-path accessor over a parsed document.
// Paths look like "current.weather[0].icon" or "list[3].rain.3h".
// Absent or mistyped values yield zero values, never errors.
type Tree interface {
	Float(path string) float64
	Int(path string) int64
	String(path string) string
	Len(path string) int
}

type jsonTree struct {
	root any
}

// DecodeTree parses a JSON document into a Tree.
func DecodeTree(data []byte) (Tree, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return NewTree(root), nil
}

// NewTree wraps an already decoded value (maps, slices, float64, string).
func NewTree(root any) Tree {
	return &jsonTree{root: root}
}

func (t *jsonTree) Float(path string) float64 {
	switch v := t.lookup(path).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	}
	return 0
}

func (t *jsonTree) Int(path string) int64 {
	return int64(t.Float(path))
}

func (t *jsonTree) String(path string) string {
	if s, ok := t.lookup(path).(string); ok {
		return s
	}
	return ""
}

func (t *jsonTree) Len(path string) int {
	if arr, ok := t.lookup(path).([]any); ok {
		return len(arr)
	}
	return 0
}

func (t *jsonTree) lookup(path string) any {
	cur := t.root
	for _, part := range strings.Split(path, ".") {
		name, indexes := splitIndexes(part)
		if name != "" {
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			if cur, ok = obj[name]; !ok {
				return nil
			}
		}
		for _, i := range indexes {
			arr, ok := cur.([]any)
			if !ok || i < 0 || i >= len(arr) {
				return nil
			}
			cur = arr[i]
		}
	}
	return cur
}

// splitIndexes turns "weather[0]" into ("weather", [0]).
func splitIndexes(part string) (string, []int) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		return part, nil
	}
	name := part[:open]
	var indexes []int
	for rest := part[open:]; strings.HasPrefix(rest, "["); {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		i, err := strconv.Atoi(rest[1:end])
		if err != nil {
			i = -1
		}
		indexes = append(indexes, i)
		rest = rest[end+1:]
	}
	return name, indexes
}
