package checker

import (
	"github.com/cool-lang/coolc/internal/ast"
	"github.com/cool-lang/coolc/internal/type_system"
)

// Config bounds the cost of the AUTO_TYPE fixed point; it's threaded in
// from internal/config rather than hardcoded so a pathological program
// can't spin the inferencer forever.
type Config struct {
	MaxInferenceIterations int
}

// Analyze runs the whole semantic analysis core end to end: P1 collects
// class names and orders them parent-first, P2 resolves every signature,
// P4 resolves AUTO_TYPE slots to a fixed point, and P3 is the single
// diagnostic-emitting pass, run last, against a program with no AUTO_TYPE
// left to special-case.
//
// Running inference before the authoritative check, rather than
// interleaving narrowing into the checking pass itself, is deliberate:
// Inferencer reads P2's resolved signatures directly and doesn't need a
// prior check pass to set them up, and running the checker exactly once
// avoids reporting the same diagnostic twice. Checker still tolerates
// AUTO_TYPE reaching it (see checker.go) so it remains usable standalone,
// e.g. in tests that skip inference on purpose.
func Analyze(prog *ast.Program, cfg Config) (*type_system.Context, []Error) {
	errs := &ErrorList{}

	ctx := CollectTypes(prog, errs)
	BuildTypes(prog, ctx, errs)

	NewInferencer(ctx).Run(prog, cfg.MaxInferenceIterations)

	NewChecker(ctx, errs).CheckProgram(prog)

	return ctx, errs.Errors()
}
