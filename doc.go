// Package calcline implements the core of a single-line calculator input: a
// formatter that keeps the caret on the same digit while it regroups numbers
// and spaces operators, editing operations that understand operator chunks
// and parentheses, and a decimal evaluator.
//
// Display text uses a no-break space (U+00A0) to group integer digits by
// thousands and a comma as the decimal separator: "1 234 567,89". Binary
// operators are written with one space on each side, unary signs with none:
// "-2 ** -3 + 1". Every position in the API is a rune offset.
//
// The evaluator accepts + - * / % and ** with the usual precedence, where %
// is the remainder and ** groups right to left. Unary signs bind tighter than
// **, so "-2 ** 2" is 4. Results are rounded half up to 50 significant digits
// unless another precision is given with Prec.
package calcline
