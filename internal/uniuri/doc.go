// Package uniuri generates the random secrets of local API keys.
//
// Secrets are drawn from crypto/rand over an alphanumeric alphabet without modulo bias,
// so they never contain the "." separator of the API key format.
package uniuri
