// Package store persists rendered virtual-host declarations.
//
// Declarations are write-once: a site that already has a declaration is
// rejected with ErrAlreadyExists, never overwritten, and there is no
// update or delete.
//
// # Implementations
//
//   - SitesAvailable (Linux-like): one file per site,
//     <sites-available>/<site-id>.conf, created exclusively.
//   - SharedFile (Windows-like): every declaration is appended to a single
//     file such as XAMPP's httpd-vhosts.conf. A site counts as present
//     when the file already contains the exact rendered stanza.
//
// New picks the implementation from the configured platform:
//
//	st, err := store.New(cfg)
//	if err != nil {
//	    return err // ErrUnsupportedPlatform
//	}
//	if err := st.Write(rec); errors.Is(err, errors.ErrAlreadyExists) {
//	    // declared before
//	}
//
// # Testing
//
// MockStore records every call and lets tests override each method:
//
//	st := store.NewMockStore("/tmp/sites-available")
//	st.WriteFunc = func(*vhost.Record) error { return errors.ErrAlreadyExists }
//
// # Concurrency
//
// Nothing is locked. Two processes writing to the same shared file at
// once can lose a declaration.
package store
