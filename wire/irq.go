package wire

import (
	"sync"

	"github.com/ardnew/softwire/pkg"
)

// MaxIRQLines is the number of interrupt lines in the binding table.
const MaxIRQLines = 8

var (
	irqMutex sync.Mutex
	irqTable [MaxIRQLines]*Controller
)

// BindIRQ binds a controller to an interrupt line so that ServiceIRQ of
// that line runs the controller's slave event dispatcher. Each line holds
// at most one controller, bound once at initialization; rebinding requires
// an explicit UnbindIRQ first.
func BindIRQ(line int, c *Controller) error {
	if line < 0 || line >= MaxIRQLines || c == nil {
		return pkg.ErrInvalidParameter
	}

	irqMutex.Lock()
	defer irqMutex.Unlock()

	if irqTable[line] != nil {
		return pkg.ErrAlreadyBound
	}
	irqTable[line] = c

	pkg.LogDebug(pkg.ComponentController, "interrupt line bound", "line", line)
	return nil
}

// UnbindIRQ releases an interrupt line binding.
func UnbindIRQ(line int) {
	if line < 0 || line >= MaxIRQLines {
		return
	}

	irqMutex.Lock()
	irqTable[line] = nil
	irqMutex.Unlock()
}

// ServiceIRQ runs the slave event dispatcher of the controller bound to
// the given line. A spurious interrupt on an unbound or out-of-range line
// is ignored.
//
// The table slot is read under the binding lock; the dispatcher itself
// runs outside it, so a callback may rebind other lines.
func ServiceIRQ(line int) {
	if line < 0 || line >= MaxIRQLines {
		return
	}

	irqMutex.Lock()
	c := irqTable[line]
	irqMutex.Unlock()

	if c != nil {
		c.Service()
	}
}
