package engine

// palette holds the username colors. Assignment must be stable across
// platforms, so hashing uses fixed-width int32 arithmetic.
var palette = [11]string{
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#FFA07A",
	"#98D8C8",
	"#F7DC6F",
	"#BB8FCE",
	"#85C1E9",
	"#F1948A",
	"#82E0AA",
	"#F8B500",
}

// ColorFor deterministically maps a display name to one of the palette
// entries using the classic (hash<<5 - hash) + char polynomial hash.
func ColorFor(name string) string {
	var hash int32
	for _, r := range name {
		hash = (hash << 5) - hash + int32(r)
	}
	h := int(hash)
	if h < 0 {
		h = -h
	}
	return palette[h%len(palette)]
}
