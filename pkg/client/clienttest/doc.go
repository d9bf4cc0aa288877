// Package clienttest provides a conformance test suite for remote file
// transfer client implementations.
//
// Every backend (fsclient, sftp, s3) should pass these tests. The suite
// verifies that an implementation satisfies the client.Client behavioral
// contract, catching regressions when backend code changes. Operations a
// backend genuinely cannot support may return an UnsupportedFeature
// error; the suite skips those subtests instead of failing.
//
// Usage:
//
//	func TestConformance(t *testing.T) {
//	    clienttest.RunConformanceSuite(t, func(t *testing.T) client.Client {
//	        return fsclient.NewMemory()
//	    })
//	}
//
// The factory function receives *testing.T so it can call t.TempDir() for
// backends that need filesystem paths and t.Cleanup for teardown.
package clienttest
