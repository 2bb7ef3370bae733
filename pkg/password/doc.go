// Package password wraps bcrypt hashing behind a small Hasher type so the
// rest of the codebase never touches raw bcrypt calls or cost factors.
//
//	hasher := password.New()
//
//	hash, err := hasher.Hash("s3cret")
//	if err != nil {
//	    // handle error
//	}
//
//	if hasher.Verify(hash, "s3cret") {
//	    // credentials accepted
//	}
//
// Hashing is deliberately slow and salted per call; the salt travels inside
// the produced hash, so Verify needs no extra state.
package password
