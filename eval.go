package calcline

import (
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// DefaultPrecision is the number of significant digits to which results are
// rounded when no Prec option is given.
const DefaultPrecision = 50

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	stack []*apd.Decimal
	nums  map[string]*apd.Decimal
	dc    apd.Context
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint32

func (precopt) ctxOption() {}

// Prec sets the number of significant digits of calculations. Every operation
// rounds its result half up to that many digits.
func Prec(digits uint32) ContextOption {
	return precopt(digits)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is DefaultPrecision.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		nums: make(map[string]*apd.Decimal),
		dc:   *apd.BaseContext.WithPrecision(DefaultPrecision),
	}
	ctx.dc.Rounding = apd.RoundHalfUp
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
		case precopt:
			if opt > 0 {
				ctx.dc.Precision = uint32(opt)
			}
		default:
			panic("calcline: unknown option type")
		}
	}
	return &ctx
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. a division by zero, then the result is nil and ctx.Err returns the
// error.
func (ctx *Context) Eval(e *Expr) *apd.Decimal {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		ctx.stack[0] = new(apd.Decimal)
		ctx.stack = ctx.stack[:0]
	default:
		panic("calcline: Eval during Eval")
	}
	err := e.n.eval(ctx)
	ctx.err = err
	if err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *apd.Decimal {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("calcline: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("calcline: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
}

// Err returns the error that occurred while evaluating the last expression
// with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Prec returns the number of significant digits to which values are computed
// in the context.
func (ctx *Context) Prec() uint32 {
	return ctx.dc.Precision
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *apd.Decimal {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(apd.Decimal)
		}
	} else {
		ctx.stack = append(ctx.stack, new(apd.Decimal))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *apd.Decimal {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *apd.Decimal {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its literal text. Literals are exact;
// they are not rounded to the context's precision. The only error is a
// literal whose exponent is out of range.
func (ctx *Context) num(s string) (*apd.Decimal, error) {
	if r := ctx.nums[s]; r != nil {
		return r, nil
	}
	t := s
	if len(t) > 0 && t[len(t)-1] == canonicalSeparator {
		// "5." is five.
		t = t[:len(t)-1]
	}
	r, _, err := apd.NewFromString(t)
	if err != nil {
		return nil, &NonFiniteError{Op: s}
	}
	ctx.nums[s] = r
	return r, nil
}

// binary evaluates both operands of n and leaves them on the stack.
func (n *node) binary(ctx *Context) (l, r *apd.Decimal, err error) {
	if err := n.left.eval(ctx); err != nil {
		return nil, nil, err
	}
	if err := n.right.eval(ctx); err != nil {
		return nil, nil, err
	}
	r = ctx.pop()
	l = ctx.top()
	return l, r, nil
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		x, err := ctx.num(n.name)
		if err != nil {
			return err
		}
		ctx.push().Set(x)
	case nodeNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
	case nodeNop:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
	case nodeAdd:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		c, err := ctx.dc.Add(l, l, r)
		return opError("+", l, c, err)
	case nodeSub:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		c, err := ctx.dc.Sub(l, l, r)
		return opError("-", l, c, err)
	case nodeMul:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		c, err := ctx.dc.Mul(l, l, r)
		return opError("*", l, c, err)
	case nodeDiv:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		if r.IsZero() {
			return &DivisionByZeroError{Op: "/"}
		}
		c, err := ctx.dc.Quo(l, l, r)
		return opError("/", l, c, err)
	case nodeMod:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		if r.IsZero() {
			return &DivisionByZeroError{Op: "%"}
		}
		c, err := ctx.dc.Rem(l, l, r)
		return opError("%", l, c, err)
	case nodePow:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		return ctx.pow(l, r)
	default:
		panic("calcline: invalid AST node " + n.kind.String())
	}
	return nil
}

var half = apd.New(5, -1)

// pow sets l to l ** r.
func (ctx *Context) pow(l, r *apd.Decimal) error {
	switch {
	case r.IsZero():
		// Including 0 ** 0.
		l.SetInt64(1)
		return nil
	case l.IsZero() && r.Negative:
		return &DivisionByZeroError{Op: "**"}
	case r.Cmp(half) == 0:
		if l.Negative {
			return DomainError{X: new(apd.Decimal).Set(l), Func: "**"}
		}
		c, err := ctx.dc.Sqrt(l, l)
		return opError("**", l, c, err)
	}
	if l.Negative {
		var integ, frac apd.Decimal
		r.Modf(&integ, &frac)
		if !frac.IsZero() {
			return DomainError{X: new(apd.Decimal).Set(l), Func: "**"}
		}
	}
	c, err := ctx.dc.Pow(l, l, r)
	return opError("**", l, c, err)
}

// opError converts the condition of a decimal operation that set x into an
// evaluation error.
func opError(op string, x *apd.Decimal, c apd.Condition, err error) error {
	switch {
	case c.DivisionByZero(), c.DivisionUndefined():
		return &DivisionByZeroError{Op: op}
	case c.InvalidOperation():
		return DomainError{X: new(apd.Decimal).Set(x), Func: op}
	case c.Overflow(), c.Underflow(), c.Subnormal(), c.SystemOverflow(), c.SystemUnderflow(), c.DivisionImpossible():
		return &NonFiniteError{Op: op}
	case err != nil:
		return err
	case x.Form != apd.Finite:
		return &NonFiniteError{Op: op}
	}
	return nil
}

// Evaluate parses and evaluates display text at DefaultPrecision. Errors
// resulting from malformed text implement InputError; see IsSyntaxError.
func Evaluate(text string) (*apd.Decimal, error) {
	return EvalString(text)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (*apd.Decimal, error) {
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return NewContext(opts...).Evaluate(a)
}

// Evaluate evaluates an expression with ctx and returns its result and error.
func (ctx *Context) Evaluate(e *Expr) (*apd.Decimal, error) {
	r := ctx.Eval(e)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return new(apd.Decimal).Set(r), nil
}

// DivisionByZeroError is an error from a division or remainder by zero, or
// from raising zero to a negative power.
type DivisionByZeroError struct {
	// Op is the operator that divided by zero.
	Op string
}

func (err *DivisionByZeroError) Error() string {
	return "division by zero in " + strconv.Quote(err.Op)
}

// DomainError is an error returned when an operator is applied to arguments
// outside its domain, such as a fractional power of a negative number.
type DomainError struct {
	// X is the out-of-domain argument.
	X *apd.Decimal
	// Func is a name identifying the operator.
	Func string
}

func (err DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

// NonFiniteError is an error indicating that a result is too large or too
// small to be represented.
type NonFiniteError struct {
	// Op is the operator whose result was not representable, or the literal
	// text of a number that was not.
	Op string
}

func (err *NonFiniteError) Error() string {
	return "result of " + strconv.Quote(err.Op) + " out of range"
}
