// Context tracks the two monotonic counters an Emitter needs while
// lowering a function: fresh SSA register names and fresh block
// labels. It is constructed once per Emit call and passed explicitly
// rather than held as package or global state.

package emitter

import (
	"strconv"

	"github.com/mrudula/yalcc/pkg/llvmir"
)

// Context owns a function's register and label counters.
type Context struct {
	nextReg   int
	nextLabel int
}

// NewContext returns a zeroed counter pair, ready for a new function.
func NewContext() *Context {
	return &Context{}
}

// Fresh allocates the next unnamed SSA register, e.g. "%1", "%2".
func (c *Context) Fresh() llvmir.Reg {
	c.nextReg++
	return llvmir.Reg("%" + strconv.Itoa(c.nextReg))
}

// FreshLabel allocates the next block label under the given prefix,
// e.g. FreshLabel("if_then") -> "if_then_1", then "if_then_2".
func (c *Context) FreshLabel(prefix string) string {
	c.nextLabel++
	return prefix + "_" + strconv.Itoa(c.nextLabel)
}
