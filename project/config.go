package project

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/paddle-build/paddle-plugin-go/spec/specpath"
)

// ConfigFile is the name of the instance configuration file in a project's
// working directory.
const ConfigFile = "paddle.yaml"

// Config is a parsed instance configuration. Mappings are
// map[string]any, sequences []any, and integers int64.
type Config struct {
	root any
}

// ParseConfig parses a YAML document. An empty document gives an empty
// configuration.
func ParseConfig(d []byte) (*Config, error) {
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	root, err := normalize(v)
	if err != nil {
		return nil, err
	}
	if root == nil {
		root = map[string]any{}
	}
	return &Config{root: root}, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	c, err := ParseConfig(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Root returns the whole document.
func (c *Config) Root() any {
	return c.root
}

// Get returns the value at key and whether it exists. Element steps must
// carry an index; "[*]" matches no single value. Only malformed keys are
// errors.
func (c *Config) Get(key string) (any, bool, error) {
	p, err := specpath.Parse(key)
	if err != nil {
		return nil, false, err
	}
	cur := c.root
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, false, nil
			}
			cur, ok = m[*x.Field]
			if !ok {
				return nil, false, nil
			}
		case x.Index != nil:
			s, ok := cur.([]any)
			if !ok || *x.Index >= len(s) {
				return nil, false, nil
			}
			cur = s[*x.Index]
		default:
			return nil, false, nil
		}
	}
	return cur, true, nil
}

func (c *Config) GetString(key string) (string, bool, error) {
	return getAs[string](c, key)
}

func (c *Config) GetInt(key string) (int64, bool, error) {
	return getAs[int64](c, key)
}

func (c *Config) GetBool(key string) (bool, bool, error) {
	return getAs[bool](c, key)
}

func getAs[T any](c *Config, key string) (T, bool, error) {
	var zero T
	v, ok, err := c.Get(key)
	if err != nil || !ok {
		return zero, false, err
	}
	res, ok := v.(T)
	if !ok {
		return zero, false, nil
	}
	return res, true, nil
}

func normalize(v any) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			n, err := normalize(e)
			if err != nil {
				return nil, err
			}
			x[k] = n
		}
		return x, nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string mapping key %v", k)
			}
			n, err := normalize(e)
			if err != nil {
				return nil, err
			}
			m[ks] = n
		}
		return m, nil
	case []any:
		for i, e := range x {
			n, err := normalize(e)
			if err != nil {
				return nil, err
			}
			x[i] = n
		}
		return x, nil
	case int:
		return int64(x), nil
	case uint64:
		if x > 1<<63-1 {
			return nil, fmt.Errorf("integer %d out of range", x)
		}
		return int64(x), nil
	default:
		return v, nil
	}
}
