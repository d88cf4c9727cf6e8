package timezone

import (
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"
)

// TzfProvider resolves IANA timezone names from coordinates using tzf's
// bundled polygon data.
type TzfProvider struct {
	finder tzf.F
}

var (
	instance *TzfProvider
	initErr  error
	once     sync.Once
)

// NewTzfProvider returns the shared provider. The finder keeps its polygon
// data in memory, so it is loaded once per process.
func NewTzfProvider() (*TzfProvider, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("new tzf provider: initialize timezone finder: %w", err)
			return
		}
		instance = &TzfProvider{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns names like "Asia/Hong_Kong" for the given coordinates.
func (p *TzfProvider) GetTimezone(latitude, longitude float64) (string, error) {
	name := p.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("get timezone: no timezone for lat=%f, lon=%f", latitude, longitude)
	}
	return name, nil
}
