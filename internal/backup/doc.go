// Package backup keeps point-in-time copies of the store file.
//
// The store snapshots its backing file before operations that discard saved
// records wholesale (clear, replacing import). Each snapshot lives in its own
// timestamped directory together with a manifest.json carrying the SHA-256 of
// the copy, which [Manager.Restore] verifies before writing anything back.
//
//	mgr := backup.NewManager(backup.WithRetentionCount(3))
//	m, err := mgr.Snapshot(storePath, "clear")
//	...
//	_, err = mgr.Restore(m.ID, "")
package backup
