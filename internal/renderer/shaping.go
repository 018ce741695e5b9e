package renderer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/bidi"
)

// Contextual forms: isolated, final, initial, medial. Letters without
// initial/medial forms only join to the letter before them.
var arabicForms = map[rune][4]rune{
	0x0621: {0xFE80, 0, 0, 0},
	0x0622: {0xFE81, 0xFE82, 0, 0},
	0x0623: {0xFE83, 0xFE84, 0, 0},
	0x0624: {0xFE85, 0xFE86, 0, 0},
	0x0625: {0xFE87, 0xFE88, 0, 0},
	0x0626: {0xFE89, 0xFE8A, 0xFE8B, 0xFE8C},
	0x0627: {0xFE8D, 0xFE8E, 0, 0},
	0x0628: {0xFE8F, 0xFE90, 0xFE91, 0xFE92},
	0x0629: {0xFE93, 0xFE94, 0, 0},
	0x062A: {0xFE95, 0xFE96, 0xFE97, 0xFE98},
	0x062B: {0xFE99, 0xFE9A, 0xFE9B, 0xFE9C},
	0x062C: {0xFE9D, 0xFE9E, 0xFE9F, 0xFEA0},
	0x062D: {0xFEA1, 0xFEA2, 0xFEA3, 0xFEA4},
	0x062E: {0xFEA5, 0xFEA6, 0xFEA7, 0xFEA8},
	0x062F: {0xFEA9, 0xFEAA, 0, 0},
	0x0630: {0xFEAB, 0xFEAC, 0, 0},
	0x0631: {0xFEAD, 0xFEAE, 0, 0},
	0x0632: {0xFEAF, 0xFEB0, 0, 0},
	0x0633: {0xFEB1, 0xFEB2, 0xFEB3, 0xFEB4},
	0x0634: {0xFEB5, 0xFEB6, 0xFEB7, 0xFEB8},
	0x0635: {0xFEB9, 0xFEBA, 0xFEBB, 0xFEBC},
	0x0636: {0xFEBD, 0xFEBE, 0xFEBF, 0xFEC0},
	0x0637: {0xFEC1, 0xFEC2, 0xFEC3, 0xFEC4},
	0x0638: {0xFEC5, 0xFEC6, 0xFEC7, 0xFEC8},
	0x0639: {0xFEC9, 0xFECA, 0xFECB, 0xFECC},
	0x063A: {0xFECD, 0xFECE, 0xFECF, 0xFED0},
	0x0641: {0xFED1, 0xFED2, 0xFED3, 0xFED4},
	0x0642: {0xFED5, 0xFED6, 0xFED7, 0xFED8},
	0x0643: {0xFED9, 0xFEDA, 0xFEDB, 0xFEDC},
	0x0644: {0xFEDD, 0xFEDE, 0xFEDF, 0xFEE0},
	0x0645: {0xFEE1, 0xFEE2, 0xFEE3, 0xFEE4},
	0x0646: {0xFEE5, 0xFEE6, 0xFEE7, 0xFEE8},
	0x0647: {0xFEE9, 0xFEEA, 0xFEEB, 0xFEEC},
	0x0648: {0xFEED, 0xFEEE, 0, 0},
	0x0649: {0xFEEF, 0xFEF0, 0, 0},
	0x064A: {0xFEF1, 0xFEF2, 0xFEF3, 0xFEF4},
	0x067E: {0xFB56, 0xFB57, 0xFB58, 0xFB59},
	0x0686: {0xFB7A, 0xFB7B, 0xFB7C, 0xFB7D},
	0x0698: {0xFB8A, 0xFB8B, 0, 0},
	0x06A9: {0xFB8E, 0xFB8F, 0xFB90, 0xFB91},
	0x06AF: {0xFB92, 0xFB93, 0xFB94, 0xFB95},
	0x06CC: {0xFBFC, 0xFBFD, 0xFBFE, 0xFBFF},
}

// Lam followed by one of these alefs becomes a single ligature
// (isolated, final).
var lamAlef = map[rune][2]rune{
	0x0622: {0xFEF5, 0xFEF6},
	0x0623: {0xFEF7, 0xFEF8},
	0x0625: {0xFEF9, 0xFEFA},
	0x0627: {0xFEFB, 0xFEFC},
}

const (
	arabicLam = 0x0644
	tatweel   = 0x0640
)

func joinsBoth(r rune) bool {
	if r == tatweel {
		return true
	}
	forms, ok := arabicForms[r]
	return ok && forms[2] != 0
}

func joins(r rune) bool {
	_, ok := arabicForms[r]
	return ok || r == tatweel
}

// transparent marks (harakat) do not break joining.
func transparent(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// shapeArabic replaces Arabic letters with their contextual presentation
// forms, in logical order. Text without Arabic letters is returned as is.
func shapeArabic(text string) string {
	rs := []rune(text)
	neighbour := func(i, step int) rune {
		for j := i + step; j >= 0 && j < len(rs); j += step {
			if !transparent(rs[j]) {
				return rs[j]
			}
		}
		return 0
	}

	var out strings.Builder
	out.Grow(len(text))
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		forms, ok := arabicForms[r]
		if !ok {
			out.WriteRune(r)
			continue
		}

		joinPrev := joinsBoth(neighbour(i, -1))

		if r == arabicLam && i+1 < len(rs) {
			if lig, ok := lamAlef[rs[i+1]]; ok {
				if joinPrev {
					out.WriteRune(lig[1])
				} else {
					out.WriteRune(lig[0])
				}
				i++
				continue
			}
		}

		joinNext := forms[2] != 0 && joins(neighbour(i, 1))
		switch {
		case joinPrev && joinNext:
			out.WriteRune(forms[3])
		case joinPrev:
			out.WriteRune(forms[1])
		case joinNext:
			out.WriteRune(forms[2])
		default:
			out.WriteRune(forms[0])
		}
	}
	return out.String()
}

// visualOrder shapes text and reorders it for left-to-right drawing: runs
// are laid out in the paragraph direction taken from the first strong
// character, and right-to-left runs are reversed.
func visualOrder(text string) string {
	if text == "" {
		return text
	}
	shaped := shapeArabic(text)

	var p bidi.Paragraph
	if _, err := p.SetString(shaped); err != nil {
		return shaped
	}
	order, err := p.Order()
	if err != nil || order.NumRuns() == 0 {
		return shaped
	}

	runs := make([]string, order.NumRuns())
	for i := range runs {
		run := order.Run(i)
		if run.Direction() == bidi.RightToLeft {
			runs[i] = bidi.ReverseString(run.String())
		} else {
			runs[i] = run.String()
		}
	}
	if baseRightToLeft(shaped) {
		for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
			runs[i], runs[j] = runs[j], runs[i]
		}
	}
	return strings.Join(runs, "")
}

func baseRightToLeft(text string) bool {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return false
		case bidi.R, bidi.AL:
			return true
		}
	}
	return false
}
