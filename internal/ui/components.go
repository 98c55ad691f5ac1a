// Package ui holds the view models of the presentation primitives rendered by
// the templates under web/templates/partials. They carry no business logic.
package ui

import "html/template"

// Tone colours KPI cards, pills and badges.
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	TonePositive Tone = "positive"
	ToneDanger   Tone = "danger"
)

// Link is a call to action.
type Link struct {
	Href      string
	Label     string
	Secondary bool
}

// Hero is the banner at the top of every page.
type Hero struct {
	Eyebrow     string
	Title       string
	Description string
	Actions     []Link
	Aside       template.HTML
}

// KPICard shows a single headline number.
type KPICard struct {
	Label    string
	Value    string
	Delta    string
	Tone     Tone
	Subtitle string
}

// ToneClass returns the card tone, defaulting to neutral.
func (k KPICard) ToneClass() Tone {
	if k.Tone == "" {
		return ToneNeutral
	}
	return k.Tone
}

// Panel frames a chart or table.
type Panel struct {
	Title    string
	Subtitle string
}

// NoticeKind selects the notice style.
type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeError   NoticeKind = "error"
	NoticeSuccess NoticeKind = "success"
)

// Notice is an inline status or alert region.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Role is "alert" for errors and "status" otherwise.
func (n Notice) Role() string {
	if n.Kind == NoticeError {
		return "alert"
	}
	return "status"
}

// KindClass returns the notice kind, defaulting to info.
func (n Notice) KindClass() NoticeKind {
	if n.Kind == "" {
		return NoticeInfo
	}
	return n.Kind
}

// ErrorNotice builds an alert notice. An empty message yields nil.
func ErrorNotice(message string) *Notice {
	if message == "" {
		return nil
	}
	return &Notice{Kind: NoticeError, Message: message}
}

// InfoNotice builds a status notice. An empty message yields nil.
func InfoNotice(message string) *Notice {
	if message == "" {
		return nil
	}
	return &Notice{Kind: NoticeInfo, Message: message}
}

// DefaultEmptyTitle headlines empty states without an explicit title.
const DefaultEmptyTitle = "Sem dados suficientes"

// EmptyState replaces content that has nothing to show.
type EmptyState struct {
	Title   string
	Message string
	Action  *Link
}

// Heading returns Title or the default heading.
func (e EmptyState) Heading() string {
	if e.Title == "" {
		return DefaultEmptyTitle
	}
	return e.Title
}

// Empty builds an EmptyState with the default heading.
func Empty(message string) EmptyState {
	return EmptyState{Message: message}
}

// Pill is a short tagged label.
type Pill struct {
	Label string
	Tone  Tone
}

// ToneFor picks danger for increases and positive for reductions, as costs go.
func ToneFor(delta float64) Tone {
	switch {
	case delta > 0:
		return ToneDanger
	case delta < 0:
		return TonePositive
	default:
		return ToneNeutral
	}
}
