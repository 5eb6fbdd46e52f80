package mk

// FileSystem is the modification-time oracle (§ 4.4) plus the touch
// and unlink capabilities consumed by the executor, all abstracted
// from the host OS so that the driver can be tested without a real
// filesystem.
type FileSystem interface {
	// Modtime returns the file's modification time, or 0 if the file
	// does not exist (or is an archive member whose archive is
	// absent).
	Modtime(name string) Timestamp
	// Touch sets name's modification time to now, creating the file if
	// it does not already exist.
	Touch(name string) error
	// Unlink removes name.
	Unlink(name string) error
}

// probe consults fs.Modtime at most once per Name per invocation,
// caching the result in n.time (§ 4.4).
func probe(fs FileSystem, n *Name) Timestamp {
	if n.probed {
		return n.time
	}
	n.time = fs.Modtime(n.name)
	n.probed = true
	return n.time
}
