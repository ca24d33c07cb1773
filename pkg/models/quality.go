package models

// MemoryQuality is a coarse three-tier estimate of how much reliable
// historical signal exists for a user. It is derived per decision call and
// never persisted.
type MemoryQuality string

const (
	MemorySparse     MemoryQuality = "sparse"
	MemoryDeveloping MemoryQuality = "developing"
	MemoryRich       MemoryQuality = "rich"
)
