package util

import "fmt"

// DocID returns the Firestore document ID of a source row. The padding keeps
// lexical ID order equal to row order.
func DocID(index int) string {
	return fmt.Sprintf("%06d", index)
}
