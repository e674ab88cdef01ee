package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// envFlag collects repeated --env KEY=VALUE flags.
type envFlag map[string]string

var _ pflag.Value = envFlag(nil)

func (e envFlag) String() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+e[k])
	}
	return "[" + strings.Join(pairs, ",") + "]"
}

func (e envFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected KEY=VALUE, got %q", value)
	}
	e[strings.TrimSpace(key)] = val
	return nil
}

func (e envFlag) Type() string {
	return "KEY=VALUE"
}
