// Package watcher reloads contacts when their source files change.
//
// Source files are watched through their parent directories so that editors
// and sync tools that replace a file by renaming a temporary one are still
// seen. Bursts of events are debounced into one batch per window, and the
// batch is handed to a reload callback.
//
// Usage:
//
//	w, err := watcher.New([]string{"/home/me/contacts.vcf"}, watcher.Options{})
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	err = w.Run(ctx, func(ctx context.Context, events []watcher.FileEvent) {
//	    // rebuild the snapshot
//	})
package watcher
