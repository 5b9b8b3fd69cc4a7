package contact

import "fmt"

// assignIDs fills missing IDs with DeriveID and makes duplicates unique by
// suffixing "#2", "#3", ... in list order. The result depends only on the
// source name and the contacts, so an unchanged source keeps its IDs.
func assignIDs(source string, contacts []Contact) {
	seen := make(map[ID]int, len(contacts))
	for i := range contacts {
		if contacts[i].ID == "" {
			contacts[i].ID = DeriveID(source, contacts[i])
		}
		id := contacts[i].ID
		seen[id]++
		if n := seen[id]; n > 1 {
			contacts[i].ID = ID(fmt.Sprintf("%s#%d", id, n))
		}
	}
}
