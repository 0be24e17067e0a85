package app

import "math/rand"

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewSessionID returns a random 12-character session identifier.
func NewSessionID() string {
	b := make([]byte, 12)
	for i := range b {
		b[i] = idCharset[rand.Intn(len(idCharset))]
	}
	return string(b)
}
