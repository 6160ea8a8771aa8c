package gpu

import (
	"fmt"
	"strings"
)

// Usage is a set of buffer usage flags with WebGPU bit values.
type Usage uint32

const (
	UsageMapRead      Usage = 0x0001
	UsageMapWrite     Usage = 0x0002
	UsageCopySrc      Usage = 0x0004
	UsageCopyDst      Usage = 0x0008
	UsageIndex        Usage = 0x0010
	UsageVertex       Usage = 0x0020
	UsageUniform      Usage = 0x0040
	UsageStorage      Usage = 0x0080
	UsageIndirect     Usage = 0x0100
	UsageQueryResolve Usage = 0x0200
)

var usageNames = []struct {
	flag Usage
	name string
}{
	{UsageMapRead, "map_read"},
	{UsageMapWrite, "map_write"},
	{UsageCopySrc, "copy_src"},
	{UsageCopyDst, "copy_dst"},
	{UsageIndex, "index"},
	{UsageVertex, "vertex"},
	{UsageUniform, "uniform"},
	{UsageStorage, "storage"},
	{UsageIndirect, "indirect"},
	{UsageQueryResolve, "query_resolve"},
}

// Has reports whether all flags in f are set in u.
func (u Usage) Has(f Usage) bool {
	return u&f == f
}

// String returns the flag names joined by "|", for example "copy_dst|storage".
func (u Usage) String() string {
	if u == 0 {
		return "none"
	}

	var parts []string
	rest := u
	for _, n := range usageNames {
		if u.Has(n.flag) {
			parts = append(parts, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}

	return strings.Join(parts, "|")
}

// ParseUsage parses a "|" or "," separated list of flag names.
func ParseUsage(s string) (Usage, error) {
	var u Usage
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		field = strings.TrimSpace(field)
		found := false
		for _, n := range usageNames {
			if strings.EqualFold(field, n.name) {
				u |= n.flag
				found = true

				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown usage flag %q", field)
		}
	}

	return u, nil
}
