package app

import (
	"flag"
	"strconv"
	"strings"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Map splits the entries into a map. Entries without '=' are skipped and
// later keys win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}

// Config represents the command-line parameters for the application.
type Config struct {
	Width   int
	Height  int
	Scale   int
	TPS     int
	Seed    int64
	Texture string
	Sets    KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Width: 300, Height: 300, Scale: 2, TPS: 60, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "canvas width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "canvas height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the procedural paper")
	fs.StringVar(&c.Texture, "texture", c.Texture, "optional paper texture image")
	fs.Var(&c.Sets, "set", "engine parameter override in key=value form (repeatable)")
}

// Overrides merges the explicit size and seed flags with any -set entries
// into the map form the engine config understands. -set entries win.
func (c *Config) Overrides() map[string]string {
	out := map[string]string{
		"w":    strconv.Itoa(c.Width),
		"h":    strconv.Itoa(c.Height),
		"seed": strconv.FormatInt(c.Seed, 10),
	}
	for k, v := range c.Sets.Map() {
		out[k] = v
	}
	return out
}
