package wiki

import (
	"fmt"
	"strings"

	"wikitree/internal/hierarchy"
)

// Reveal is what a viewer needs to bring a page into view: the visibility it
// lives in, the nodes to expand and its breadcrumb.
type Reveal struct {
	PageID     string                 `json:"page_id"`
	Mode       hierarchy.Visibility   `json:"mode"`
	Expanded   hierarchy.ExpansionSet `json:"-"`
	ExpandIDs  []string               `json:"expanded"`
	Breadcrumb []hierarchy.Page       `json:"breadcrumb"`
}

// Reveal expands every ancestor of id in the page's own visibility.
func (s *Service) Reveal(id string) (*Reveal, error) {
	p, pages, err := s.siblingsOf(id)
	if err != nil {
		return nil, err
	}
	expanded := hierarchy.NewExpansionSet()
	if err := expanded.ExpandTo(pages, id); err != nil {
		if isMalformed(err) {
			s.log.Warn("cannot reveal page on a parent cycle", "page", id)
		}
		return nil, err
	}
	path, err := hierarchy.Breadcrumb(pages, id)
	if err != nil {
		return nil, err
	}
	mode := hierarchy.Classify(p)
	return &Reveal{
		PageID:     id,
		Mode:       mode,
		Expanded:   expanded,
		ExpandIDs:  expanded.IDs(),
		Breadcrumb: path,
	}, nil
}

// ActionEvent is an external trigger asking the wiki to show a page and
// optionally record an achievement.
type ActionEvent struct {
	PageID           string `json:"page_id"`
	AchievementTopic string `json:"achievement_topic"`
}

// Accomplishment is emitted when an action event names an achievement topic.
type Accomplishment struct {
	Type            string  `json:"type"`
	SkillCategory   string  `json:"skill_category"`
	Keyword         string  `json:"accomplishment_keyword"`
	ErrorRatio      float64 `json:"error_ratio"`
	DurationMinutes int     `json:"duration_minutes"`
	Description     string  `json:"description"`
}

// ActionResult is the response to an ActionEvent.
type ActionResult struct {
	Reveal         *Reveal         `json:"reveal,omitempty"`
	Accomplishment *Accomplishment `json:"accomplishment,omitempty"`
}

// HandleAction reveals the requested page and records the achievement, if
// any. An event with neither field is an error.
func (s *Service) HandleAction(ev ActionEvent) (*ActionResult, error) {
	pageID := strings.TrimSpace(ev.PageID)
	topic := strings.TrimSpace(ev.AchievementTopic)
	if pageID == "" && topic == "" {
		return nil, fmt.Errorf("action event has neither page_id nor achievement_topic")
	}

	res := &ActionResult{}
	if pageID != "" {
		r, err := s.Reveal(pageID)
		if err != nil {
			return nil, fmt.Errorf("action: %w", err)
		}
		res.Reveal = r
	}
	if topic != "" {
		res.Accomplishment = &Accomplishment{
			Type:            "macro",
			SkillCategory:   "learning",
			Keyword:         topic,
			ErrorRatio:      0,
			DurationMinutes: 1,
			Description:     "Visited a wiki page",
		}
		s.log.Info("accomplishment", "keyword", topic)
	}
	return res, nil
}
