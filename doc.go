// Package argtree compiles annotated Go handlers into a tree of commands and
// dispatches command lines against it.
//
// A handler is registered with the parameters it declares:
//
//	d, _ := argtree.New(argtree.WithProg("demo"))
//	d.MustRegister(argtree.Command{
//		Name: "add",
//		Params: []argtree.Param{
//			{Name: "values", Annotation: "OneOrMore[float]"},
//			{Name: "squared", Annotation: "Option", Default: false},
//		},
//		Doc:     "Add numbers.\n:param squared: square every value first",
//		Handler: func(values []float64, squared bool) float64 { ... },
//	})
//	result, err := d.Execute(ctx, "add --squared 1 2 3")
//
// Underscores in a name separate subcommands, so "led_on" is reached as "led on".
package argtree
