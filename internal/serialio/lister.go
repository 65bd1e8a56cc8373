// internal/serialio/lister.go
package serialio

import (
	"go.bug.st/serial/enumerator"

	"github.com/quadlink/linkmon/internal/discovery"
)

// Lister enumerates host serial ports with USB descriptions.
// Implements discovery.PortLister.
type Lister struct{}

func (Lister) List() ([]discovery.Endpoint, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	eps := make([]discovery.Endpoint, 0, len(ports))
	for _, p := range ports {
		desc := p.Product
		if desc == "" && p.IsUSB {
			desc = "USB " + p.VID + ":" + p.PID
		}
		eps = append(eps, discovery.Endpoint{
			ID:          p.Name,
			Description: desc,
		})
	}

	return eps, nil
}
