// Package flagx lets several independent flag sets share one command line.
//
// The config loader parses the JSON path, the environment file and the
// runtime flags in separate passes; each pass only sees the arguments it
// knows about, so an unknown flag in one pass never aborts another.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// name strips the leading dashes and any "=value" suffix, so "-c",
// "--c" and "--c=x" all resolve to "c".
func name(arg string) string {
	n := strings.TrimLeft(arg, "-")
	if i := strings.IndexByte(n, '='); i >= 0 {
		n = n[:i]
	}
	return n
}

// Select returns the subset of args that belongs to the named flags,
// together with their values. Names are given without dashes; both the
// single and double dash spellings are accepted on the command line.
//
// A value is taken from the next argument unless it starts with a dash,
// in which case the flag is kept alone (boolean style).
func Select(args []string, names ...string) []string {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[strings.TrimLeft(n, "-")] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || !known[name(arg)] {
			continue
		}
		out = append(out, arg)
		if strings.Contains(arg, "=") {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigPath extracts the JSON config file path given with -c or -config.
// It returns an empty string when neither flag is present.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-path", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(Select(args, "c", "config"))

	return path
}
