package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}

// Mesh-domain fields

// Mesh names the mesh being converted (usually its source path).
func Mesh(name string) Field {
	return String("mesh", name)
}

func Triangle(index int) Field {
	return Int("triangle", index)
}

func Triangles(n int) Field {
	return Int("triangles", n)
}

func Vertices(n int) Field {
	return Int("vertices", n)
}

func Groups(n int) Field {
	return Int("groups", n)
}

func Lines(n int) Field {
	return Int("lines", n)
}

// Edge records a canonical vertex-index pair.
func Edge(a, b int) Field {
	return Field{Key: "edge", Value: [2]int{a, b}}
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Worker(n int) Field {
	return Int("worker", n)
}
