package school

import "strconv"

// Ref is an entity ID exactly as it was typed. Malformed refs never resolve,
// so they surface as not-found errors carrying the raw token.
type Ref string

func RefOf(id int) Ref {
	return Ref(strconv.Itoa(id))
}

func (r Ref) ID() (int, bool) {
	n, err := strconv.Atoi(string(r))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (r Ref) String() string {
	return string(r)
}
