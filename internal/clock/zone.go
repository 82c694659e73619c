package clock

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// LocalLabel is the selector label for the host's local timezone.
const LocalLabel = "Local Time"

var ErrUnsupportedZone = errors.New("unsupported timezone")

// supportedZones lists the IANA names offered next to local time, in selector order.
var supportedZones = []string{
	"Europe/Rome",
	"UTC",
	"America/New_York",
	"Asia/Tokyo",
	"Australia/Sydney",
}

// Zone is a timezone selection. The zero value is local time.
type Zone struct {
	name string
	loc  *time.Location
}

// Local is the host timezone selection.
var Local = Zone{}

func (z Zone) IsLocal() bool { return z.loc == nil }

// Name returns the IANA identifier, or "Local" for local time.
func (z Zone) Name() string {
	if z.IsLocal() {
		return "Local"
	}
	return z.name
}

// Label returns the selector text for the zone.
func (z Zone) Label() string {
	if z.IsLocal() {
		return LocalLabel
	}
	return z.name
}

func (z Zone) String() string { return z.Label() }

// Location returns the zone's location; time.Local for local time.
func (z Zone) Location() *time.Location {
	if z.IsLocal() {
		return time.Local
	}
	return z.loc
}

// ParseZone resolves a selector label, an IANA name from the supported set,
// or "local". Matching ignores case and surrounding space.
func ParseZone(value string) (Zone, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "local") || strings.EqualFold(value, LocalLabel) {
		return Local, nil
	}
	for _, name := range supportedZones {
		if !strings.EqualFold(name, value) {
			continue
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return Local, fmt.Errorf("load timezone %s: %w", name, err)
		}
		return Zone{name: name, loc: loc}, nil
	}
	return Local, fmt.Errorf("%w: %q", ErrUnsupportedZone, value)
}

// ZoneLabels lists the selector options, local time first.
func ZoneLabels() []string {
	labels := make([]string, 0, len(supportedZones)+1)
	labels = append(labels, LocalLabel)
	return append(labels, supportedZones...)
}

// Zones returns every supported selection in selector order.
func Zones() ([]Zone, error) {
	zones := make([]Zone, 0, len(supportedZones)+1)
	for _, label := range ZoneLabels() {
		z, err := ParseZone(label)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}
