// Package wiki ties the page store to the hierarchy and visibility rules.
// A Service acts on behalf of one user within one scope.
package wiki

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"wikitree/internal/db"
	"wikitree/internal/hierarchy"
)

var (
	// ErrNoScope is returned when an operation needs the actor's scope and
	// none is configured.
	ErrNoScope = fmt.Errorf("no scope configured for private pages: %w", db.ErrInvalid)
	// ErrCycle is returned when a move would place a page under itself.
	ErrCycle = fmt.Errorf("move would create a parent cycle: %w", db.ErrInvalid)
	// ErrCrossVisibility is returned when a parent and child would end up
	// in different visibilities.
	ErrCrossVisibility = fmt.Errorf("parent is in the other visibility: %w", db.ErrInvalid)
)

// Service is the application layer behind the CLI.
type Service struct {
	store *db.DB
	actor string
	scope string
	log   *log.Logger
}

// New returns a Service acting as actor. scope is the actor's own scope id
// and may be empty, in which case private pages cannot be created.
func New(store *db.DB, actor, scope string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{store: store, actor: actor, scope: scope, log: logger}
}

// Actor returns the acting user id.
func (s *Service) Actor() string { return s.actor }

// Scope returns the actor's scope id.
func (s *Service) Scope() string { return s.scope }

// Pages loads the pages of one visibility that the actor may read.
func (s *Service) Pages(mode hierarchy.Visibility) ([]hierarchy.Page, error) {
	if mode == hierarchy.Private && s.scope == "" {
		return s.ownPrivate()
	}
	pages, err := hierarchy.LoadPages(s.store, mode, s.scope)
	if err != nil {
		return nil, fmt.Errorf("loading %s pages: %w", mode, err)
	}
	return pages, nil
}

// ownPrivate returns the private pages the actor owns. It backs the private
// view when no scope is configured.
func (s *Service) ownPrivate() ([]hierarchy.Page, error) {
	all, err := hierarchy.LoadPages(s.store, hierarchy.Private, "")
	if err != nil {
		return nil, fmt.Errorf("loading private pages: %w", err)
	}
	pages := []hierarchy.Page{}
	for _, p := range all {
		if p.OwnerID == s.actor {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

// canRead reports whether the actor may see p.
func (s *Service) canRead(p hierarchy.Page) bool {
	if !hierarchy.IsPrivate(p) || p.OwnerID == s.actor {
		return true
	}
	return s.scope != "" && *p.ScopeID == s.scope
}

// Page returns a single readable page. Pages in a foreign scope are reported
// as not found.
func (s *Service) Page(id string) (hierarchy.Page, error) {
	row, err := s.store.GetPage(id)
	if err != nil {
		return hierarchy.Page{}, err
	}
	p := hierarchy.FromRecord(*row)
	if !s.canRead(p) {
		return hierarchy.Page{}, fmt.Errorf("page %s: %w", id, db.ErrNotFound)
	}
	return p, nil
}

// siblingsOf loads the page and the page set it lives in. A private page is
// resolved against its own scope, not the actor's current one.
func (s *Service) siblingsOf(id string) (hierarchy.Page, []hierarchy.Page, error) {
	p, err := s.Page(id)
	if err != nil {
		return hierarchy.Page{}, nil, err
	}
	if !hierarchy.IsPrivate(p) {
		pages, err := s.Pages(hierarchy.Published)
		if err != nil {
			return hierarchy.Page{}, nil, err
		}
		return p, pages, nil
	}
	all, err := hierarchy.LoadPages(s.store, hierarchy.Private, *p.ScopeID)
	if err != nil {
		return hierarchy.Page{}, nil, fmt.Errorf("loading scope %s: %w", *p.ScopeID, err)
	}
	pages := []hierarchy.Page{}
	for _, q := range all {
		if s.canRead(q) {
			pages = append(pages, q)
		}
	}
	return p, pages, nil
}

// warnMalformed logs the conditions the projection works around.
func (s *Service) warnMalformed(mode hierarchy.Visibility, pages []hierarchy.Page) {
	for _, id := range hierarchy.Unreachable(pages) {
		s.log.Warn("page is unreachable from any root (parent cycle)", "mode", mode, "page", id)
	}
	known := make(map[string]bool, len(pages))
	for _, p := range pages {
		known[p.ID] = true
	}
	for _, p := range pages {
		if p.ParentID != nil && !known[*p.ParentID] {
			s.log.Debug("parent not in view, showing page as root", "mode", mode, "page", p.ID, "parent", *p.ParentID)
		}
	}
}

func isMalformed(err error) bool {
	return errors.Is(err, hierarchy.ErrMalformedHierarchy)
}
