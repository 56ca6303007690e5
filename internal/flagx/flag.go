// Package flagx lets several components read their own flags from the same
// command line without tripping over each other's unknown flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// Set lists the flags a component owns. The value tells whether the flag
// consumes the following argument ("-d file.db") or stands alone ("-v").
type Set map[string]bool

// owns matches "-x", "--x" and the "=value" forms against s.
func (s Set) owns(arg string) (takesValue, ok bool) {
	if !strings.HasPrefix(arg, "-") {
		return false, false
	}
	name, _, _ := strings.Cut(arg, "=")
	name = "-" + strings.TrimLeft(name, "-")
	takesValue, ok = s[name]
	return takesValue, ok
}

// FilterArgs keeps only the arguments that belong to flags in set, plus the
// value argument of flags that take one. The result is never nil.
func FilterArgs(args []string, set Set) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		takesValue, ok := set.owns(arg)
		if !ok {
			continue
		}
		filtered = append(filtered, arg)

		if strings.Contains(arg, "=") || !takesValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// ConfigFileFlag returns the -c / -config value from os.Args, or "" when
// neither is given. The file may be JSON or YAML.
func ConfigFileFlag() string {
	return configFileFrom(os.Args[1:])
}

func configFileFrom(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, Set{"-c": true, "-config": true}))

	return path
}
