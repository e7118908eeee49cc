// Package scheduler runs the ordered list of systems once per variable tick.
package scheduler

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"

	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
)

// System is a stateless update function run once per variable tick.
type System func(data *gamedata.GameData)

// Scheduler holds the systems in registration order. Execution is strictly sequential and a
// panicking system aborts the whole frame.
type Scheduler struct {
	systems []System
	names   []string
	current string
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Add appends systems after the ones already registered.
func (s *Scheduler) Add(systems ...System) {
	for _, sys := range systems {
		if sys == nil {
			panic("cannot register a nil system")
		}
		s.systems = append(s.systems, sys)
		s.names = append(s.names, systemName(sys))
	}
}

// Names returns the registered system names in execution order.
func (s *Scheduler) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of registered systems.
func (s *Scheduler) Len() int { return len(s.systems) }

// Current returns the name of the running system, empty outside Execute.
func (s *Scheduler) Current() string { return s.current }

// Execute runs every system once, in registration order. A panic is re-raised with the name of
// the failing system prepended.
//
// Parameters:
//   - data: the simulation state passed to each system
func (s *Scheduler) Execute(data *gamedata.GameData) {
	defer func() {
		if r := recover(); r != nil {
			name := s.current
			s.current = ""
			panic(fmt.Sprintf("system %s: %v", name, r))
		}
	}()

	for i, sys := range s.systems {
		s.current = s.names[i]
		sys(data)
	}
	s.current = ""
}

func systemName(sys System) string {
	return filepath.Base(runtime.FuncForPC(reflect.ValueOf(sys).Pointer()).Name())
}
