// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"

	"github.com/rosy-lang/rubylink/pkg/chruby"
	"github.com/rosy-lang/rubylink/pkg/client"
	"github.com/rosy-lang/rubylink/pkg/rbenv"
	"github.com/rosy-lang/rubylink/pkg/rvm"
	"github.com/rosy-lang/rubylink/pkg/system"
)

// Platform reports which Ruby version managers are present on this system
type Platform struct {
	OS        string        // linux, darwin, windows
	Arch      string        // amd64, arm64, 386, arm
	Available []client.Type // Managers with at least one rubies directory
	Preferred client.Type   // Manager auto mode tries first
}

// Detect probes the conventional directory layout of each supported manager.
// Version managers are preferred over the system Ruby because their
// installations carry headers and static libraries more reliably.
func Detect() (*Platform, error) {
	p := &Platform{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if rvm.NewManager(nil).IsAvailable() {
		p.Available = append(p.Available, client.TypeRvm)
	}
	if rbenv.NewManager(nil).IsAvailable() {
		p.Available = append(p.Available, client.TypeRbenv)
	}
	if chruby.NewManager(nil).IsAvailable() {
		p.Available = append(p.Available, client.TypeChruby)
	}
	if system.NewManager(nil).IsAvailable() {
		p.Available = append(p.Available, client.TypeSystem)
	}

	if len(p.Available) > 0 {
		p.Preferred = p.Available[0]
	}

	return p, nil
}

// Has reports whether a manager was detected
func (p *Platform) Has(t client.Type) bool {
	for _, a := range p.Available {
		if a == t {
			return true
		}
	}
	return false
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (available: %v, preferred: %s)",
		p.OS, p.Arch, p.Available, p.Preferred)
}
