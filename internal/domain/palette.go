package domain

// palette holds the colors auto-assigned to new categories, scanned in
// declaration order.
var palette = [...]string{
	"#10B981", "#3B82F6", "#8B5CF6", "#F59E0B", "#EF4444", "#6B7280",
	"#14B8A6", "#6366F1", "#A855F7", "#F97316", "#E11D48", "#64748B",
	"#22C55E", "#0EA5E9", "#D946EF", "#F43F5E", "#84CC16", "#A3A3A3",
}

// fallbackColor is returned when every palette entry is taken. It may collide
// with an existing category color.
const fallbackColor = "#6B7280"

// PickUnusedColor returns the first palette entry whose uppercased form is not
// in used. The scan is deterministic; exhaustion yields fallbackColor.
func PickUnusedColor(used map[string]struct{}) string {
	for _, c := range palette {
		if _, taken := used[c]; !taken {
			return c
		}
	}
	return fallbackColor
}
