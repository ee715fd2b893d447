// Listing
//
//	// Everything under /etc, in traversal order
//	_, err := walk.List(ctx, "/etc", walk.NewFilterConfig(false, false, false), nil, os.Stdout)
//
//	// Regular files and links, sorted by the user's locale
//	cmp, _ := walk.EnvComparer()
//	_, err := walk.List(ctx, "src", walk.NewFilterConfig(true, false, true), cmp, os.Stdout)
//
// Custom sinks
//
// Anything with an Emit(path string) error method can receive paths:
//
//	var n int
//	w := walk.New(walk.NewFilterConfig(false, true, false), sinkFunc(func(string) error {
//		n++
//		return nil
//	}), logger)
//	res, err := w.Walk(ctx, ".")
//
// A Sink error stops the walk and is returned as an *OutputError. Entries that
// cannot be read are logged and collected in Result.Errors; the walk goes on.

package walk
