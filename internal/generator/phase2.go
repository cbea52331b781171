package generator

import "unicode"

// backrefEvilStrings produces, for each capturing group referenced by a
// backreference, three variants where the backreference text disagrees
// with the captured text: a single-character change, a case change, and an
// empty substitution (spec §4.6 Phase II). Each group id contributes its
// variants only once, the first time it is seen across the rendered paths
// (in path order), via the done set.
func backrefEvilStrings(renders []rendered) []string {
	done := make(map[int]bool)
	var out []string

	for _, r := range renders {
		for _, occ := range r.backrefs {
			if done[occ.GroupID] {
				continue
			}
			done[occ.GroupID] = true
			out = append(out, mutateBackref(r.sp, occ)...)
		}
	}
	return out
}

func mutateBackref(sp StringPath, occ backrefOcc) []string {
	original := sp.Segments[occ.SegIndex].Text

	variants := []string{
		spliceSegment(sp, occ.SegIndex, singleCharChange(original)),
		spliceSegment(sp, occ.SegIndex, caseChange(original)),
		spliceSegment(sp, occ.SegIndex, ""),
	}
	return variants
}

func spliceSegment(sp StringPath, index int, replacement string) string {
	var out string
	for i, seg := range sp.Segments {
		if i == index {
			out += replacement
		} else {
			out += seg.Text
		}
	}
	return out
}

// singleCharChange flips one rune of s to a value that is guaranteed to
// differ, so the backreference text disagrees with the captured text.
func singleCharChange(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return "x"
	}
	if runes[0] == 'a' {
		runes[0] = 'b'
	} else {
		runes[0] = 'a'
	}
	return string(runes)
}

// caseChange swaps the case of every letter in s.
func caseChange(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			runes[i] = unicode.ToLower(r)
		case unicode.IsLower(r):
			runes[i] = unicode.ToUpper(r)
		}
	}
	return string(runes)
}
