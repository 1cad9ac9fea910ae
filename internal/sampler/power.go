package sampler

import (
	"strings"

	"github.com/sidecar-sh/sidecar/internal/model"
)

// isACSupply matches device types and names that identify an AC adapter.
func isACSupply(ps model.PowerSupply) bool {
	return ps.Type == "Mains" || ps.Type == "ADP1" ||
		strings.Contains(ps.Name, "ADP") || strings.Contains(ps.Name, "AC")
}

// samplePower scans the enumerated power supplies. The first battery with a
// readable capacity and the first online AC-type device are authoritative.
// Many battery-only sysfs layouts have no separate AC node, so when no AC
// device matched but a battery did, the battery's status stands in: a battery
// reporting "Charging" has to be on external power.
func (s *Sampler) samplePower() (model.Power, error) {
	supplies, err := s.provider.PowerSupplies()
	if err != nil {
		return model.Power{}, err
	}
	pw := model.Power{BatteryPercent: model.NoBattery}
	foundBattery := false
	foundAC := false
	for _, ps := range supplies {
		switch {
		case ps.Type == "Battery" && !foundBattery:
			if ps.Capacity >= 0 {
				pw.BatteryPercent = ps.Capacity
				foundBattery = true
			}
		case isACSupply(ps) && !foundAC:
			if ps.Online > 0 {
				pw.OnAC = true
				foundAC = true
			}
		}
	}
	if !foundAC && foundBattery {
		for _, ps := range supplies {
			if ps.Type == "Battery" {
				if ps.Status == "Charging" {
					pw.OnAC = true
				}
				break
			}
		}
	}
	return pw, nil
}
