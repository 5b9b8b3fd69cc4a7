package dialer

// State is the query state that decides between the full list and a
// filtered one.
type State int

const (
	// StateEmpty shows every contact.
	StateEmpty State = iota
	// StateNonEmpty shows the filtered contacts.
	StateNonEmpty
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateNonEmpty:
		return "non-empty"
	default:
		return "unknown"
	}
}

// Query is the digit string typed on the keypad. There is no length limit.
// The zero value is empty.
type Query struct {
	digits []byte
}

// Append adds an ASCII digit. Anything else is ignored and reported false.
func (q *Query) Append(d rune) bool {
	if d < '0' || d > '9' {
		return false
	}
	q.digits = append(q.digits, byte(d))
	return true
}

// DeleteLast removes the last digit. It is a no-op on an empty query.
func (q *Query) DeleteLast() {
	if len(q.digits) > 0 {
		q.digits = q.digits[:len(q.digits)-1]
	}
}

// State returns StateEmpty or StateNonEmpty.
func (q *Query) State() State {
	if len(q.digits) == 0 {
		return StateEmpty
	}
	return StateNonEmpty
}

// String returns the digits typed so far.
func (q *Query) String() string {
	return string(q.digits)
}

// Len returns the number of digits.
func (q *Query) Len() int {
	return len(q.digits)
}
