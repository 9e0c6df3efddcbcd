package common

import "sort"

// UniqueSortedStrings returns the distinct non-empty values of ss, ascending.
func UniqueSortedStrings(ss []string) []string {
	seen := make(map[string]struct{}, len(ss))
	var out []string
	for _, s := range ss {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// UniqueSortedInts returns the distinct values of ns, ascending.
func UniqueSortedInts(ns []int) []int {
	seen := make(map[int]struct{}, len(ns))
	var out []int
	for _, n := range ns {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
