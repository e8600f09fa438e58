package domain

// Zero wipes b in place. It is used on raw field key bytes read from the key
// file, on Key.Bytes copies, and on KMS-unwrapped key plaintext.
func Zero(b []byte) {
	clear(b)
}
