package utils

import (
	"time"

	"github.com/bradfitz/latlong"
)

// LocationFor resolves an IANA timezone for a building. An explicit
// override wins; otherwise the lat/lng is looked up, falling back to
// fallbackTZ and finally UTC. Billing "today" is local to the building.
func LocationFor(tzOverride string, lat, lng float64, fallbackTZ string) *time.Location {
	if tzOverride != "" {
		if loc, err := time.LoadLocation(tzOverride); err == nil {
			return loc
		}
		Logger.Warnf("Invalid timezone override %q, falling back", tzOverride)
	}
	if lat != 0 || lng != 0 {
		if zone := latlong.LookupZoneName(lat, lng); zone != "" {
			if loc, err := time.LoadLocation(zone); err == nil {
				return loc
			}
		}
	}
	if fallbackTZ != "" {
		if loc, err := time.LoadLocation(fallbackTZ); err == nil {
			return loc
		}
	}
	return time.UTC
}
