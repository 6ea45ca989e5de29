package listing

import "strconv"

// PageLabel is one slot of the pager: a page number or an ellipsis.
type PageLabel struct {
	Number   int
	Ellipsis bool
	Current  bool
}

func (l PageLabel) String() string {
	if l.Ellipsis {
		return "..."
	}
	return strconv.Itoa(l.Number)
}

// Window computes the pager for current out of totalPages:
//
//	[first] [...] current-1 current current+1 [...] [last]
//
// The first page appears when current > 2 (with an ellipsis when current > 3)
// and the last page when current < totalPages-1 (with an ellipsis when
// current < totalPages-2). With one page or fewer there is no pager.
func Window(current, totalPages int) []PageLabel {
	if totalPages <= 1 {
		return nil
	}
	current = min(max(current, 1), totalPages)

	labels := make([]PageLabel, 0, 7)
	if current > 2 {
		labels = append(labels, PageLabel{Number: 1})
		if current > 3 {
			labels = append(labels, PageLabel{Ellipsis: true})
		}
	}

	for i := max(1, current-1); i <= min(totalPages, current+1); i++ {
		labels = append(labels, PageLabel{Number: i, Current: i == current})
	}

	if current < totalPages-1 {
		if current < totalPages-2 {
			labels = append(labels, PageLabel{Ellipsis: true})
		}
		labels = append(labels, PageLabel{Number: totalPages})
	}
	return labels
}

// Labels flattens a window into display strings.
func Labels(window []PageLabel) []string {
	out := make([]string, len(window))
	for i, l := range window {
		out[i] = l.String()
	}
	return out
}
