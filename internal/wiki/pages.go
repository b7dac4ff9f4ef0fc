package wiki

import (
	"fmt"

	"wikitree/internal/db"
	"wikitree/internal/hierarchy"
)

// TreeView is one projection of the wiki.
type TreeView struct {
	Mode   hierarchy.Visibility `json:"mode"`
	Pages  []hierarchy.Page     `json:"-"`
	Forest []hierarchy.TreeNode `json:"forest"`
}

// Tree projects the pages of mode with the given nodes expanded. expanded is
// only read.
func (s *Service) Tree(mode hierarchy.Visibility, expanded hierarchy.ExpansionSet) (*TreeView, error) {
	pages, err := s.Pages(mode)
	if err != nil {
		return nil, err
	}
	s.warnMalformed(mode, pages)
	return &TreeView{
		Mode:   mode,
		Pages:  pages,
		Forest: hierarchy.Project(pages, expanded),
	}, nil
}

// Breadcrumb returns the root-to-page chain of id within its visibility.
func (s *Service) Breadcrumb(id string) ([]hierarchy.Page, error) {
	_, pages, err := s.siblingsOf(id)
	if err != nil {
		return nil, err
	}
	path, err := hierarchy.Breadcrumb(pages, id)
	if err != nil {
		s.log.Warn("breadcrumb walk did not terminate", "page", id, "err", err)
		return nil, err
	}
	return path, nil
}

// Children returns the ordered children of id within its visibility.
func (s *Service) Children(id string) ([]hierarchy.Page, error) {
	_, pages, err := s.siblingsOf(id)
	if err != nil {
		return nil, err
	}
	return hierarchy.Children(pages, id), nil
}

// Draft holds the fields of a new page.
type Draft struct {
	Title        string
	Content      string
	Description  string
	Icon         string
	ParentID     *string
	SortOrder    int
	ShowChildren bool
	ActionLabel  string
}

// Create stores a new page in mode. Private pages are stamped with the
// actor's scope. A parent must be readable and in the same visibility.
func (s *Service) Create(mode hierarchy.Visibility, d Draft) (hierarchy.Page, error) {
	np := db.NewPage{
		Title:        d.Title,
		Content:      d.Content,
		Description:  d.Description,
		Icon:         d.Icon,
		ParentID:     d.ParentID,
		SortOrder:    d.SortOrder,
		ShowChildren: d.ShowChildren,
		ActionLabel:  d.ActionLabel,
	}
	if mode == hierarchy.Private {
		if s.scope == "" {
			return hierarchy.Page{}, fmt.Errorf("create page: %w", ErrNoScope)
		}
		scope := s.scope
		np.ScopeID = &scope
	}
	if d.ParentID != nil {
		parent, err := s.Page(*d.ParentID)
		if err != nil {
			return hierarchy.Page{}, fmt.Errorf("create page: parent: %w", err)
		}
		if hierarchy.Classify(parent) != mode {
			return hierarchy.Page{}, fmt.Errorf("create page: %w", ErrCrossVisibility)
		}
	}

	row, err := s.store.InsertPage(s.actor, np)
	if err != nil {
		return hierarchy.Page{}, err
	}
	s.log.Info("created page", "page", row.ID, "mode", mode)
	return hierarchy.FromRecord(*row), nil
}

// Edit applies a partial update to a page the actor owns.
func (s *Service) Edit(id string, upd db.PageUpdate) error {
	if upd.Empty() {
		return nil
	}
	if err := s.store.UpdatePage(s.actor, id, upd); err != nil {
		return err
	}
	s.log.Info("updated page", "page", id)
	return nil
}

// Delete removes a page the actor owns. Its children stay and show up as
// roots until they are moved.
func (s *Service) Delete(id string) error {
	children, err := s.Children(id)
	if err != nil {
		return err
	}
	if err := s.store.DeletePage(s.actor, id); err != nil {
		return err
	}
	if len(children) > 0 {
		s.log.Warn("deleted page had children, they are now roots", "page", id, "children", len(children))
	}
	return nil
}

// MoveTargets lists the pages id may be moved under.
func (s *Service) MoveTargets(id string) ([]hierarchy.Page, error) {
	_, pages, err := s.siblingsOf(id)
	if err != nil {
		return nil, err
	}
	return hierarchy.MoveTargets(pages, id), nil
}

// Move reparents id under parent, or to the root when parent is nil. Moves
// that would close a cycle or cross visibilities are rejected.
func (s *Service) Move(id string, parent *string) error {
	p, pages, err := s.siblingsOf(id)
	if err != nil {
		return err
	}
	if parent != nil {
		target, err := s.Page(*parent)
		if err != nil {
			return fmt.Errorf("move page %s: target: %w", id, err)
		}
		if hierarchy.Classify(target) != hierarchy.Classify(p) {
			return fmt.Errorf("move page %s: %w", id, ErrCrossVisibility)
		}
		allowed := false
		for _, t := range hierarchy.MoveTargets(pages, id) {
			if t.ID == target.ID {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("move page %s under %s: %w", id, target.ID, ErrCycle)
		}
	}
	if err := s.store.MovePage(s.actor, id, parent); err != nil {
		return err
	}
	s.log.Info("moved page", "page", id)
	return nil
}

// TogglePublish publishes a private page or makes a published page private
// to the actor's scope, and returns the new visibility.
func (s *Service) TogglePublish(id string) (hierarchy.Visibility, error) {
	p, err := s.Page(id)
	if err != nil {
		return 0, err
	}
	if !hierarchy.IsPrivate(p) && s.scope == "" {
		return 0, fmt.Errorf("unpublish page %s: %w", id, ErrNoScope)
	}
	scope := hierarchy.TogglePublish(p, s.scope)
	if err := s.store.SetScope(s.actor, id, scope); err != nil {
		return 0, err
	}
	p.ScopeID = scope
	v := hierarchy.Classify(p)
	s.log.Info("changed page visibility", "page", id, "visibility", v)
	return v, nil
}

// Search runs a full-text search and keeps the readable hits.
func (s *Service) Search(query string) ([]hierarchy.Page, error) {
	rows, err := s.store.SearchPages(query)
	if err != nil {
		return nil, err
	}
	hits := []hierarchy.Page{}
	for _, p := range hierarchy.FromRecords(rows) {
		if s.canRead(p) {
			hits = append(hits, p)
		}
	}
	return hits, nil
}

// Check inspects the hierarchy of one visibility.
func (s *Service) Check(mode hierarchy.Visibility) (*hierarchy.Report, error) {
	pages, err := s.Pages(mode)
	if err != nil {
		return nil, err
	}
	return hierarchy.Inspect(pages), nil
}
