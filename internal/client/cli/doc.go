// Package cli implements the interactive donation log client: a small REPL
// over the submission, decryption and export services. All plaintext lives in
// this process only; the chain never sees anything but ciphertext handles.
package cli
