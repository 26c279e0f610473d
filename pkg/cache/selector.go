package cache

// SelectVictim returns the identifier of the entry that should be evicted.
//
// The oldest LastAccess wins. Ties on LastAccess go to the smallest Cost, and
// ties on both keys go to the earliest entry in the slice. The slice is never
// modified. It reports false only when entries is empty.
func SelectVictim(entries []Entry) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}

	victim := entries[0]
	for _, e := range entries[1:] {
		if e.LastAccess < victim.LastAccess ||
			(e.LastAccess == victim.LastAccess && e.Cost < victim.Cost) {
			victim = e
		}
	}

	return victim.FileID, true
}
