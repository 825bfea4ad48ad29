package state

import (
	"github.com/pders01/sietch/internal/validation"
)

// Reduce applies a to s. It returns at most one Effect; whenever it does,
// the returned state has Loading set, and every outcome action clears it.
//
// A successful mutation always yields exactly one FetchPage, which is how
// the client resynchronizes: nothing is patched locally.
func Reduce(s State, a Action) (State, Effect) {
	switch a := a.(type) {
	case Mounted:
		return s.fetch(s.PageNumber)

	case Refresh:
		return s.fetch(s.PageNumber)

	case PageRequested:
		return s.goTo(a.Page)

	case NextPage:
		if !s.HasNext() {
			return s, nil
		}
		return s.goTo(s.PageNumber + 1)

	case PrevPage:
		if !s.HasPrev() {
			return s, nil
		}
		return s.goTo(s.PageNumber - 1)

	case FirstPage:
		return s.goTo(1)

	case LastPage:
		return s.goTo(s.TotalPages)

	case SearchChanged:
		s.SearchTerm = a.Term
		return s, nil

	case DraftChanged:
		s.Draft = a.Text
		return s, nil

	case ThemeToggled:
		s.DarkTheme = !s.DarkTheme
		return s, nil

	case PageLoaded:
		// Responses for a page the user has already left are dropped.
		if a.Page.Number != s.PageNumber {
			return s, nil
		}
		s.Loading = false
		s.Items = a.Page.Items
		s.chart = Aggregate(a.Page.Items)
		s.TotalPages = a.Page.TotalPages
		s.TotalCount = a.Page.TotalCount
		if s.fetchFailed {
			s.fetchFailed = false
			s.Status = ""
		}
		return s, nil

	case PageFailed:
		if a.Page != s.PageNumber {
			return s, nil
		}
		s.Loading = false
		s.fetchFailed = true
		s.Status = failureStatus(a.Err, MsgFetchFailed)
		return s, nil

	case BreedSubmitted:
		name, err := validation.HarvesterName(a.Name)
		if err != nil {
			s.Status = validationStatus(err)
			return s, nil
		}
		s.Status = MsgSummoning
		return s.start(BreedRecord{Name: name})

	case BreedSettled:
		s.Loading = false
		if a.Err != nil {
			s.Status = failureStatus(a.Err, MsgBreedFailed)
			return s, nil
		}
		s.Draft = ""
		s.Status = MsgBred
		s.PageNumber = 1
		return s.fetch(1)

	case RenameSubmitted:
		if !a.Accepted {
			return s, nil
		}
		// A blank answer or the current name as stored is no change.
		name, err := validation.HarvesterName(a.NewName)
		if err != nil || a.NewName == a.Current || name == a.Current {
			return s, nil
		}
		s.Status = MsgRenaming
		return s.start(RenameRecord{ID: a.ID, Name: name})

	case RenameSettled:
		s.Loading = false
		if a.Err != nil {
			s.Status = failureStatus(a.Err, MsgRenameFailed)
			return s, nil
		}
		s.Status = MsgRenamed
		return s.fetch(s.PageNumber)

	case RecycleSubmitted:
		if !a.Confirmed || a.ID == "" {
			return s, nil
		}
		s.Status = MsgRecycling
		return s.start(RecycleRecord{ID: a.ID})

	case RecycleSettled:
		s.Loading = false
		if a.Err != nil {
			s.Status = failureStatus(a.Err, MsgRecycleFailed)
			return s, nil
		}
		// The page number is kept even if this emptied the page.
		s.Status = MsgRecycled
		return s.fetch(s.PageNumber)
	}

	return s, nil
}

func (s State) goTo(page int) (State, Effect) {
	if page < 1 || page == s.PageNumber {
		return s, nil
	}
	if s.TotalPages > 0 && page > s.TotalPages {
		return s, nil
	}
	s.PageNumber = page
	return s.fetch(page)
}

func (s State) fetch(page int) (State, Effect) {
	return s.start(FetchPage{Page: page, Limit: s.PageSize})
}

func (s State) start(e Effect) (State, Effect) {
	s.Loading = true
	return s, e
}
