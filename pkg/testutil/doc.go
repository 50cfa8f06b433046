// Package testutil provides test doubles for the synchronization core:
// an in-memory filesystem with error injection, fakes for the StateStore,
// ExtensionHost, Confirmer, and ProgressReporter interfaces, and an
// httptest-backed fake of the remote snippet store API.
package testutil
