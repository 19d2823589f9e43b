package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calcline"
)

func newEvalCmd(h *host) *cobra.Command {
	var (
		inname string
		echo   bool
	)
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate expressions",
		Long: `Evaluate each argument as an expression and print its result.
With no arguments, expressions are read one per line from --in or stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			exprs, err := expressions(cmd.InOrStdin(), inname, args)
			if err != nil {
				return err
			}
			return h.evalAll(cmd.OutOrStdout(), cmd.ErrOrStderr(), exprs, echo)
		},
	}
	cmd.Flags().StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	cmd.Flags().BoolVar(&echo, "echo", false, "print parse trees")
	return cmd
}

func newFormatCmd(h *host) *cobra.Command {
	var (
		inname  string
		rewrite string
	)
	cmd := &cobra.Command{
		Use:   "format [expression...]",
		Short: "Format expressions for display",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rw calcline.Rewrite
			if rewrite != "" {
				rw = calcline.Rewrites[rewrite]
				if rw == nil {
					return fmt.Errorf("unknown rewrite %q", rewrite)
				}
			}
			exprs, err := expressions(cmd.InOrStdin(), inname, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range exprs {
				if rw != nil {
					e = rw(e)
				}
				fmt.Fprintln(out, calcline.NewEditable(e).Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	cmd.Flags().StringVar(&rewrite, "rewrite", "", "rewrite each expression first: square, sqrt, reciprocal, or negate")
	return cmd
}

// evalAll evaluates each expression in order with one context, printing
// results to out and failures to errs.
func (h *host) evalAll(out, errs io.Writer, exprs []string, echo bool) error {
	ctx := calcline.NewContext(calcline.Prec(h.cfg.Precision))
	failed := 0
	for _, e := range exprs {
		log := h.log.WithField("expression", e)
		a, err := calcline.Parse(e)
		if err != nil {
			failed++
			log.WithError(err).Warn("parse failed")
			fmt.Fprintf(errs, "%s: %v\n", e, err)
			continue
		}
		if echo {
			fmt.Fprintf(out, "%v : ", a)
		}
		r, err := ctx.Evaluate(a)
		if err != nil {
			failed++
			log.WithError(err).Warn("evaluation failed")
			fmt.Fprintln(out, calcline.ErrorText)
			fmt.Fprintf(errs, "%s: %v\n", e, err)
			continue
		}
		result := calcline.FormatDecimal(r)
		log.WithFields(logrus.Fields{"result": result}).Debug("evaluated")
		fmt.Fprintln(out, result)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(exprs))
	}
	return nil
}

// expressions collects the expressions to process: the arguments, plus the
// non-blank lines of the input file. The input file defaults to stdin when
// there are no arguments, and "-" names stdin explicitly.
func expressions(stdin io.Reader, inname string, args []string) ([]string, error) {
	var exprs []string
	in, closer, err := infile(stdin, inname, len(args) == 0)
	if err != nil {
		return nil, err
	}
	if in != nil {
		defer closer()
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				exprs = append(exprs, line)
			}
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading expressions: %w", err)
		}
	}
	return append(exprs, args...), nil
}

func infile(stdin io.Reader, inname string, std bool) (io.Reader, func(), error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, nil, fmt.Errorf("opening input: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	case inname == "-", std:
		return stdin, func() {}, nil
	}
	return nil, nil, nil
}
