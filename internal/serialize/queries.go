package serialize

import (
	"fmt"
	"strings"

	"github.com/vk/sc2ta/internal/uppaal"
)

// EncodeQueries renders one reachability query per stable location, in
// template then location order:
//
//	E<> Template.Location && isStable
func EncodeQueries(index []uppaal.StableLocations) []byte {
	var sb strings.Builder
	for _, entry := range index {
		for _, loc := range entry.Locations {
			fmt.Fprintf(&sb, "E<> %s.%s && %s\n", entry.Template.Name, loc.Name, uppaal.StableFlag)
		}
	}
	return []byte(sb.String())
}
