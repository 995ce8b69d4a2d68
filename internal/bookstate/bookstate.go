// Package bookstate is the in-memory book-list container used by the demo
// client. State is reduced through pure functions; nothing is persisted.
package bookstate

import "github.com/google/uuid"

type Book struct {
	ID          string
	Title       string
	Author      string
	ISBN        string
	Date        string
	Description string
}

// State holds the book list, the currently selected book (nil when none) and
// the two UI visibility flags.
type State struct {
	Books      []Book
	Current    *Book
	ShowDialog bool
	ShowUpdate bool
}

type Action interface{ isAction() }

type AddBook struct{ Book Book }
type DeleteBook struct{ ID string }
type UpdateBook struct{ Book Book }
type SetCurrent struct{ Book Book }
type ClearCurrent struct{}
type SetDialog struct{}
type ClearDialog struct{}
type SetUpdate struct{}
type ClearUpdate struct{}

func (AddBook) isAction()      {}
func (DeleteBook) isAction()   {}
func (UpdateBook) isAction()   {}
func (SetCurrent) isAction()   {}
func (ClearCurrent) isAction() {}
func (SetDialog) isAction()    {}
func (ClearDialog) isAction()  {}
func (SetUpdate) isAction()    {}
func (ClearUpdate) isAction()  {}

// Reduce returns the next state without mutating the previous one. Unknown
// actions return the state unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddBook:
		books := make([]Book, 0, len(s.Books)+1)
		books = append(books, s.Books...)
		s.Books = append(books, a.Book)
	case DeleteBook:
		books := make([]Book, 0, len(s.Books))
		for _, b := range s.Books {
			if b.ID != a.ID {
				books = append(books, b)
			}
		}
		s.Books = books
	case UpdateBook:
		books := make([]Book, len(s.Books))
		for i, b := range s.Books {
			if b.ID == a.Book.ID {
				books[i] = a.Book
			} else {
				books[i] = b
			}
		}
		s.Books = books
	case SetCurrent:
		b := a.Book
		s.Current = &b
	case ClearCurrent:
		s.Current = nil
	case SetDialog:
		s.ShowDialog = true
	case ClearDialog:
		s.ShowDialog = false
	case SetUpdate:
		s.ShowUpdate = true
	case ClearUpdate:
		s.ShowUpdate = false
	}
	return s
}

// Store wraps a State and dispatches actions through Reduce. Id assignment
// happens here, in the action creator, so Reduce itself stays deterministic.
type Store struct {
	state State
}

func NewStore(initial State) *Store {
	return &Store{state: initial}
}

func (s *Store) State() State {
	return s.state
}

func (s *Store) Dispatch(a Action) State {
	s.state = Reduce(s.state, a)
	return s.state
}

// Add assigns a fresh unique id and appends the book.
func (s *Store) Add(b Book) Book {
	b.ID = uuid.NewString()
	s.Dispatch(AddBook{Book: b})
	return b
}

func (s *Store) Delete(id string)  { s.Dispatch(DeleteBook{ID: id}) }
func (s *Store) SetCurrent(b Book) { s.Dispatch(SetCurrent{Book: b}) }
func (s *Store) ClearCurrent()     { s.Dispatch(ClearCurrent{}) }
func (s *Store) SetDialog()        { s.Dispatch(SetDialog{}) }
func (s *Store) ClearDialog()      { s.Dispatch(ClearDialog{}) }
func (s *Store) SetUpdate()        { s.Dispatch(SetUpdate{}) }
func (s *Store) ClearUpdate()      { s.Dispatch(ClearUpdate{}) }
