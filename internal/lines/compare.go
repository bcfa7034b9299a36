package lines

// AllPresentNotice is shown when every line of list 2 is already in list 1.
const AllPresentNotice = "Todos os elementos da Lista 2 estão presentes na Lista 1."

// Comparison is the result of comparing two lists of lines.
type Comparison struct {
	NotIn1 []string `json:"not_in_list1"` // in list 2 but not list 1, list 2 order
	NotIn2 []string `json:"not_in_list2"` // in list 1 but not list 2, list 1 order
	Common []string `json:"common"`       // in both, list 1 order, unique
}

// Compare diffs two lists by exact line equality. NotIn1 and NotIn2 keep
// repeated entries as they appear.
func Compare(list1, list2 []string) Comparison {
	set1 := toSet(list1)
	set2 := toSet(list2)

	var c Comparison
	for _, l := range list2 {
		if _, ok := set1[l]; !ok {
			c.NotIn1 = append(c.NotIn1, l)
		}
	}

	seen := make(map[string]struct{})
	for _, l := range list1 {
		if _, ok := set2[l]; !ok {
			c.NotIn2 = append(c.NotIn2, l)
			continue
		}
		if _, dup := seen[l]; !dup {
			seen[l] = struct{}{}
			c.Common = append(c.Common, l)
		}
	}
	return c
}

func toSet(list []string) map[string]struct{} {
	s := make(map[string]struct{}, len(list))
	for _, l := range list {
		s[l] = struct{}{}
	}
	return s
}
