// concurrency.go implements par: each direct child statement runs as its
// own goroutine against the SAME *Env as its siblings (shared by reference,
// per spec.md's concurrency model — a deliberate departure from an
// isolate-per-task design), joined with errgroup so the block blocks until
// every child finishes and the first runtime error, if any, wins.
package minipar

import "golang.org/x/sync/errgroup"

func (in *Interp) execPar(n *Par, env *Env) {
	var g errgroup.Group
	for _, stmt := range n.Body {
		stmt := stmt
		g.Go(func() error { return in.runAsGoroutine(stmt, env) })
	}
	if err := g.Wait(); err != nil {
		panic(rtErr{err.(*RuntimeError)})
	}
}

// runAsGoroutine executes stmt, turning an rtErr panic into a returned error
// so errgroup can collect it instead of crashing the process. break/continue/
// return panics are not expected to cross a par boundary and are re-panicked
// as-is (a child statement directly under par is not itself a loop body or
// function body).
func (in *Interp) runAsGoroutine(stmt Stmt, env *Env) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if re, ok := r.(rtErr); ok {
				err = re.err
				return
			}
			panic(r)
		}
	}()
	in.execStmt(stmt, env)
	return nil
}
