package domain

import "strings"

// Region is one of the supported geographic pricing regions
type Region string

const (
	RegionUSA    Region = "USA"
	RegionEurope Region = "Europe"
	RegionAsia   Region = "Asia"
	RegionTurkey Region = "Turkey"
)

// AllRegions returns the supported regions in display order
func AllRegions() []Region {
	return []Region{RegionUSA, RegionEurope, RegionAsia, RegionTurkey}
}

// Valid reports whether r is a supported region (exact spelling)
func (r Region) Valid() bool {
	switch r {
	case RegionUSA, RegionEurope, RegionAsia, RegionTurkey:
		return true
	}
	return false
}

func (r Region) String() string { return string(r) }

// ParseRegion resolves a region case-insensitively and returns its canonical spelling
func ParseRegion(s string) (Region, bool) {
	s = strings.TrimSpace(s)
	for _, r := range AllRegions() {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return "", false
}
