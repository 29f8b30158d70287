package runner

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLine turns one text script line into the generic command map, or nil
// for blank and comment lines.
func ParseLine(line string) (map[string]any, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	raw := map[string]any{"cmd": cmd}

	var args []string
	for _, f := range fields[1:] {
		switch strings.ToLower(f) {
		case "shift":
			raw["shift"] = true
		case "ctrl":
			raw["ctrl"] = true
		default:
			args = append(args, f)
		}
	}

	switch cmd {
	case "tool":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: tool <id>")
		}
		raw["tool"] = args[0]
	case "move", "click", "release":
		switch {
		case len(args) >= 2:
			raw["x"], raw["y"] = args[0], args[1]
			args = args[2:]
		case cmd == "move":
			return nil, fmt.Errorf("usage: move <x> <y>")
		}
		if len(args) == 1 && cmd != "move" {
			raw["button"] = args[0]
		} else if len(args) > 0 {
			return nil, fmt.Errorf("%s: unexpected %q", cmd, strings.Join(args, " "))
		}
	case "key":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: key <char|name>")
		}
		raw["key"] = args[0]
	case "type":
		text := strings.TrimSpace(line[len(fields[0]):])
		if text == "" {
			return nil, fmt.Errorf("usage: type <text>")
		}
		raw["text"] = text
	case "wheel":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: wheel <delta>")
		}
		raw["delta"] = args[0]
	case "select":
		if len(args) < 2 || len(args) > 3 {
			return nil, fmt.Errorf("usage: select <kind> <name> [index]")
		}
		raw["kind"], raw["name"] = args[0], args[1]
		if len(args) == 3 {
			raw["index"] = args[2]
		}
	case "exec", "execute":
		if len(args) < 1 {
			return nil, fmt.Errorf("usage: exec <tool> [prop=v,...] [State=kind:name]")
		}
		raw["tool"] = args[0]
		props := map[string]any{}
		ptrs := map[string]any{}
		for _, a := range args[1:] {
			key, val, ok := strings.Cut(a, "=")
			if !ok {
				return nil, fmt.Errorf("exec: expected key=value, got %q", a)
			}
			if kind, name, isPtr := strings.Cut(val, ":"); isPtr {
				ptr, err := parsePointer(kind, name)
				if err != nil {
					return nil, err
				}
				ptrs[key] = ptr
				continue
			}
			var nums []any
			for _, s := range strings.Split(val, ",") {
				nums = append(nums, s)
			}
			props[key] = nums
		}
		raw["properties"], raw["pointers"] = props, ptrs
	}
	return raw, nil
}

// parsePointer reads "name" or "name[index]".
func parsePointer(kind, name string) (map[string]any, error) {
	ptr := map[string]any{"kind": kind, "name": name, "index": -1}
	if open := strings.IndexByte(name, '['); open > 0 && strings.HasSuffix(name, "]") {
		idx, err := strconv.Atoi(name[open+1 : len(name)-1])
		if err != nil {
			return nil, fmt.Errorf("bad element index in %q", name)
		}
		ptr["name"], ptr["index"] = name[:open], idx
	}
	return ptr, nil
}
