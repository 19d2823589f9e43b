package calcline

import "strings"

// A Rewrite transforms an entire expression into a derived one. Rewrites are
// purely textual; any failure is deferred to evaluation. The result is
// unformatted and should be passed through FormatDisplay before display.
type Rewrite func(expr string) string

// Rewrites lists the derived operations by name.
var Rewrites = map[string]Rewrite{
	"square":     Square,
	"sqrt":       Sqrt,
	"reciprocal": Reciprocal,
	"negate":     Negate,
}

// Square rewrites expr as (expr) ** 2. An empty expression stays empty.
func Square(expr string) string {
	return wrap(expr, "(", ") ** 2")
}

// Sqrt rewrites expr as (expr) ** (1/2). An empty expression stays empty.
func Sqrt(expr string) string {
	return wrap(expr, "(", ") ** (1/2)")
}

// Reciprocal rewrites expr as (1/(expr)). An empty expression stays empty.
func Reciprocal(expr string) string {
	return wrap(expr, "(1/(", "))")
}

// Negate toggles a leading minus sign on expr. Since unary minus binds
// tightest, the sign applies to the first term only. An empty expression
// becomes "-" so that the next number typed is negative.
func Negate(expr string) string {
	t := strings.TrimSpace(expr)
	if t == "" {
		return "-"
	}
	if rest := strings.TrimPrefix(t, "-"); rest != t {
		return rest
	}
	return "-" + t
}

func wrap(expr, open, close string) string {
	t := strings.TrimSpace(expr)
	if t == "" {
		return ""
	}
	return open + t + close
}
